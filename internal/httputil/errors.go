package httputil

import (
	"encoding/json"
	"net/http"
)

// APIError is the error body returned by every endpoint.
type APIError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, statusCode int, message, details string) {
	WriteJSON(w, statusCode, APIError{Error: message, Details: details})
}

func WriteBadRequestError(w http.ResponseWriter, message, details string) {
	WriteError(w, http.StatusBadRequest, message, details)
}

func WriteInternalError(w http.ResponseWriter, message, details string) {
	WriteError(w, http.StatusInternalServerError, message, details)
}

func WriteContentBlockedError(w http.ResponseWriter, message, details string) {
	WriteError(w, http.StatusUnprocessableEntity, message, details)
}
