package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/af-corp/tsconvert/internal/config"
	"github.com/af-corp/tsconvert/internal/provider/adapters"
	"github.com/af-corp/tsconvert/internal/types"
)

// ErrUnavailable is returned by Complete when the provider's circuit is open.
var ErrUnavailable = errors.New("provider unavailable")

// Registry manages provider adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]adapters.ProviderAdapter
	health   *HealthTracker
}

func NewRegistry(health *HealthTracker) *Registry {
	return &Registry{
		adapters: make(map[string]adapters.ProviderAdapter),
		health:   health,
	}
}

func (r *Registry) Register(name string, adapter adapters.ProviderAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[name] = adapter
}

func (r *Registry) Get(name string) (adapters.ProviderAdapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[name]
	return a, ok
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for n := range r.adapters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Health returns the tracker backing this registry, which may be nil.
func (r *Registry) Health() *HealthTracker { return r.health }

// BuildFromConfig builds provider adapters from the providers config.
func BuildFromConfig(providers map[string]config.ProviderConfig, health *HealthTracker) *Registry {
	registry := NewRegistry(health)
	for name, cfg := range providers {
		timeout := cfg.Timeout
		if timeout < 0 {
			timeout = 0
		}
		client := &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        cfg.MaxConcurrent,
				MaxIdleConnsPerHost: cfg.MaxConcurrent,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		}

		var adapter adapters.ProviderAdapter
		switch cfg.Type {
		case "anthropic":
			adapter = adapters.NewAnthropicAdapter(name, cfg, client)
		default:
			adapter = adapters.NewOpenAIAdapter(name, cfg, client)
		}
		registry.Register(name, adapter)
	}
	return registry
}

// Complete sends a single completion call through the named provider.
// The call is made once; failures feed the provider's circuit breaker.
func (r *Registry) Complete(ctx context.Context, name string, req *types.CompletionRequest) (*types.CompletionResponse, error) {
	adapter, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	if r.health != nil && !r.health.IsAvailable(name) {
		return nil, fmt.Errorf("provider %s is unavailable: %w", name, ErrUnavailable)
	}

	httpReq, err := adapter.TransformRequest(ctx, req)
	if err != nil {
		r.release(name)
		return nil, fmt.Errorf("prepare %s request: %w", name, err)
	}

	httpResp, err := adapter.SendRequest(httpReq)
	if err != nil {
		// A caller that gave up says nothing about the provider.
		if ctx.Err() != nil {
			r.release(name)
		} else {
			r.recordFailure(name)
		}
		return nil, fmt.Errorf("%s request failed: %w", name, err)
	}

	resp, err := adapter.TransformResponse(ctx, httpResp)
	if err != nil {
		// A 4xx means the provider answered; only faults on its side count.
		var statusErr *adapters.StatusError
		switch {
		case errors.As(err, &statusErr) && !statusErr.Unhealthy():
			r.recordSuccess(name)
		case ctx.Err() != nil:
			r.release(name)
		default:
			r.recordFailure(name)
		}
		return nil, err
	}

	r.recordSuccess(name)
	return resp, nil
}

func (r *Registry) recordSuccess(name string) {
	if r.health != nil {
		r.health.RecordSuccess(name)
	}
}

func (r *Registry) recordFailure(name string) {
	if r.health != nil {
		r.health.RecordFailure(name)
	}
}

func (r *Registry) release(name string) {
	if r.health != nil {
		r.health.Release(name)
	}
}
