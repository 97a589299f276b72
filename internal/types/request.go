package types

// ConvertRequest is the body of POST /api/convert. Model is left untyped
// so that a non-string value falls back to the default model instead of
// failing the request.
type ConvertRequest struct {
	Code  string `json:"code"`
	Model any    `json:"model,omitempty"`
}

// ModelID returns the requested model, or "" when it is absent or not a string.
func (r ConvertRequest) ModelID() string {
	id, _ := r.Model.(string)
	return id
}

// ConvertResponse is the success body of POST /api/convert.
type ConvertResponse struct {
	TSCode  string `json:"tsCode"`
	Summary string `json:"summary"`
}

// ModelsResponse is the body of GET /api/models.
type ModelsResponse struct {
	Models  []string `json:"models"`
	Default string   `json:"default"`
}
