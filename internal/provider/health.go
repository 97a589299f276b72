package provider

import (
	"sync"
	"time"
)

// HealthTracker manages circuit breakers for all providers.
type HealthTracker struct {
	mu       sync.RWMutex
	breakers map[string]*CircuitBreaker

	failureThreshold      int
	recoveryProbeInterval time.Duration
}

// NewHealthTracker creates a health tracker with the given circuit breaker config.
func NewHealthTracker(failureThreshold int, recoveryProbeInterval time.Duration) *HealthTracker {
	return &HealthTracker{
		breakers:              make(map[string]*CircuitBreaker),
		failureThreshold:      failureThreshold,
		recoveryProbeInterval: recoveryProbeInterval,
	}
}

// GetBreaker returns (or lazily creates) the circuit breaker for a provider.
func (ht *HealthTracker) GetBreaker(provider string) *CircuitBreaker {
	ht.mu.RLock()
	cb, ok := ht.breakers[provider]
	ht.mu.RUnlock()
	if ok {
		return cb
	}

	ht.mu.Lock()
	defer ht.mu.Unlock()
	if cb, ok := ht.breakers[provider]; ok {
		return cb
	}
	cb = NewCircuitBreaker(ht.failureThreshold, ht.recoveryProbeInterval)
	ht.breakers[provider] = cb
	return cb
}

// IsAvailable returns true if the provider's circuit breaker allows a call.
func (ht *HealthTracker) IsAvailable(provider string) bool {
	return ht.GetBreaker(provider).Allow()
}

func (ht *HealthTracker) RecordSuccess(provider string) {
	ht.GetBreaker(provider).RecordSuccess()
}

func (ht *HealthTracker) RecordFailure(provider string) {
	ht.GetBreaker(provider).RecordFailure()
}

// Release frees the provider's half-open probe slot, if held.
func (ht *HealthTracker) Release(provider string) {
	ht.GetBreaker(provider).Release()
}

// States reports the circuit state of each named provider without consuming a probe.
func (ht *HealthTracker) States(providers []string) map[string]string {
	out := make(map[string]string, len(providers))
	for _, p := range providers {
		out[p] = ht.GetBreaker(p).State().String()
	}
	return out
}
