package convert

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/af-corp/tsconvert/internal/config"
	"github.com/af-corp/tsconvert/internal/filter"
	"github.com/af-corp/tsconvert/internal/httputil"
	"github.com/af-corp/tsconvert/internal/telemetry"
	"github.com/af-corp/tsconvert/internal/types"
)

// Completer sends one completion call to a named provider.
type Completer interface {
	Complete(ctx context.Context, provider string, req *types.CompletionRequest) (*types.CompletionResponse, error)
}

// Service turns JavaScript into TypeScript by way of a completion provider.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	models    *config.ModelSet
	completer Completer
	filters   *filter.Chain
	metrics   *telemetry.Metrics
}

// NewService wires a Service. filters and metrics may be nil.
func NewService(models *config.ModelSet, completer Completer, filters *filter.Chain, metrics *telemetry.Metrics) *Service {
	return &Service{
		models:    models,
		completer: completer,
		filters:   filters,
		metrics:   metrics,
	}
}

// Models returns the supported model set.
func (s *Service) Models() *config.ModelSet { return s.models }

// Convert runs one conversion. Every failure is a *Error; nothing is retried.
func (s *Service) Convert(ctx context.Context, source, modelID string) (*Result, error) {
	started := time.Now()
	reqID := httputil.RequestID(ctx)
	model := s.models.Resolve(modelID)
	providerName, _ := s.models.ProviderFor(model)

	var (
		usage      types.Usage
		providerMs float64
		err        error
	)
	defer func() {
		if s.metrics == nil {
			return
		}
		s.metrics.RecordConversion(telemetry.ConversionLabels{
			Model:            model,
			Provider:         providerName,
			Outcome:          outcome(err),
			DurationMs:       float64(time.Since(started).Milliseconds()),
			ProviderMs:       providerMs,
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
		})
	}()

	if source == "" {
		slog.Info("conversion rejected", "request_id", reqID, "reason", "no code provided")
		err = missingInput()
		return nil, err
	}

	if model != modelID {
		slog.Debug("model not supported, using default",
			"request_id", reqID,
			"requested", modelID,
			"model", model,
		)
		if s.metrics != nil {
			s.metrics.RecordModelFallback()
		}
	}

	if blocked := s.runFilters(ctx, reqID, model, source); blocked != nil {
		err = contentBlocked(blocked.Message)
		return nil, err
	}

	temperature := 0.0
	callStarted := time.Now()
	resp, callErr := s.completer.Complete(ctx, providerName, &types.CompletionRequest{
		Model:       model,
		Messages:    []types.Message{{Role: "user", Content: BuildPrompt(source)}},
		Temperature: &temperature,
	})
	providerMs = float64(time.Since(callStarted).Milliseconds())
	if callErr != nil {
		slog.Error("provider request failed",
			"request_id", reqID,
			"provider", providerName,
			"model", model,
			"error", callErr,
		)
		err = providerFailure(callErr)
		return nil, err
	}
	usage = resp.Usage

	result, parseErr := ParseReply(resp.Content)
	if parseErr != nil {
		slog.Error("failed to parse provider reply",
			"request_id", reqID,
			"provider", providerName,
			"model", model,
			"reason", parseErr.Error(),
			"reply_bytes", len(resp.Content),
			"finish_reason", resp.FinishReason,
		)
		err = malformedReply(parseErr)
		return nil, err
	}

	slog.Info("conversion completed",
		"request_id", reqID,
		"model_requested", modelID,
		"model", model,
		"provider", providerName,
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return result, nil
}

// runFilters returns the blocking result, or nil if the source may be sent.
func (s *Service) runFilters(ctx context.Context, reqID, model, source string) *filter.Result {
	if s.filters == nil {
		return nil
	}
	results, blocked := s.filters.Run(ctx, &filter.Request{RequestID: reqID, Model: model, Source: source})
	for _, fr := range results {
		if fr.Action == filter.ActionPass {
			continue
		}
		if s.metrics != nil {
			s.metrics.RecordFilterAction(fr.FilterName, string(fr.Action))
		}
		if fr.Action == filter.ActionFlag {
			slog.Warn("source flagged by filter",
				"request_id", reqID,
				"filter", fr.FilterName,
				"detections", fr.Detections,
				"score", fr.Score,
			)
		}
	}
	if blocked != nil {
		slog.Warn("conversion blocked by filter",
			"request_id", reqID,
			"filter", blocked.FilterName,
			"detections", blocked.Detections,
			"score", blocked.Score,
		)
	}
	return blocked
}

// AsError unwraps err into a *Error, classifying anything else as a provider failure.
func AsError(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return providerFailure(err)
}
