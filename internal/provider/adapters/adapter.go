package adapters

import (
	"context"
	"fmt"
	"net/http"

	"github.com/af-corp/tsconvert/internal/types"
)

// ProviderAdapter transforms completion calls to and from a provider-specific API.
type ProviderAdapter interface {
	Name() string
	TransformRequest(ctx context.Context, req *types.CompletionRequest) (*http.Request, error)
	TransformResponse(ctx context.Context, resp *http.Response) (*types.CompletionResponse, error)
	// SendRequest sends an HTTP request using the provider's configured client.
	SendRequest(req *http.Request) (*http.Response, error)
}

// StatusError is returned by TransformResponse when the provider answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Unhealthy reports whether the status points at provider health rather than the request.
func (e *StatusError) Unhealthy() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// maxErrorBody bounds how much of an error body is carried into StatusError.
const maxErrorBody = 2048

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
