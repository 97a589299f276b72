package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/af-corp/tsconvert/internal/convert"
	"github.com/af-corp/tsconvert/internal/httputil"
	"github.com/af-corp/tsconvert/internal/provider"
	"github.com/af-corp/tsconvert/internal/types"
)

const msgInvalidBody = "Invalid request body."

// Handler holds dependencies for the HTTP handlers.
type Handler struct {
	service      *convert.Service
	providers    *provider.Registry
	maxBodyBytes int64
	version      string
}

// NewHandler wires a Handler. providers may be nil, in which case /health
// reports no provider states.
func NewHandler(service *convert.Service, providers *provider.Registry, maxBodyBytes int64, version string) *Handler {
	return &Handler{
		service:      service,
		providers:    providers,
		maxBodyBytes: maxBodyBytes,
		version:      version,
	}
}

// Convert handles POST /api/convert
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	reqID := httputil.RequestID(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteBadRequestError(w, msgInvalidBody, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		httputil.WriteBadRequestError(w, msgInvalidBody, "failed to read request body")
		return
	}

	if err := validateConvertRequest(body); err != nil {
		slog.Info("invalid convert request", "request_id", reqID, "error", err)
		httputil.WriteBadRequestError(w, msgInvalidBody, err.Error())
		return
	}

	var req types.ConvertRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httputil.WriteBadRequestError(w, msgInvalidBody, err.Error())
		return
	}

	result, err := h.service.Convert(r.Context(), req.Code, req.ModelID())
	if err != nil {
		writeConvertError(w, convert.AsError(err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, types.ConvertResponse{
		TSCode:  result.TypedCode,
		Summary: result.Summary,
	})
}

func writeConvertError(w http.ResponseWriter, ce *convert.Error) {
	switch ce.Kind {
	case convert.KindMissingInput:
		httputil.WriteBadRequestError(w, ce.Message, "")
	case convert.KindContentBlocked:
		httputil.WriteContentBlockedError(w, ce.Message, ce.Details)
	case convert.KindMalformedReply:
		httputil.WriteInternalError(w, ce.Message, "")
	default:
		httputil.WriteInternalError(w, ce.Message, ce.Details)
	}
}

// ListModels handles GET /api/models
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	models := h.service.Models()
	httputil.WriteJSON(w, http.StatusOK, types.ModelsResponse{
		Models:  models.IDs(),
		Default: models.Default(),
	})
}

type healthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Providers map[string]string `json:"providers,omitempty"`
}

// Health handles GET /health. The service is "degraded" while any provider
// circuit is open.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "healthy", Version: h.version}
	if h.providers != nil && h.providers.Health() != nil {
		resp.Providers = h.providers.Health().States(h.providers.Names())
		for _, state := range resp.Providers {
			if state == provider.StateOpen.String() {
				resp.Status = "degraded"
			}
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
