package provider

import (
	"testing"
	"time"
)

func TestHealthTracker_LazyCreation(t *testing.T) {
	ht := NewHealthTracker(3, 5*time.Second)
	if !ht.IsAvailable("openai") {
		t.Error("expected new provider to be available")
	}
}

func TestHealthTracker_RecordFailureOpensCircuit(t *testing.T) {
	ht := NewHealthTracker(2, 5*time.Second)

	ht.RecordFailure("openai")
	ht.RecordFailure("openai")

	if ht.IsAvailable("openai") {
		t.Error("expected openai to be unavailable after 2 failures")
	}
}

func TestHealthTracker_RecordSuccessCloses(t *testing.T) {
	ht := NewHealthTracker(1, 10*time.Millisecond)

	ht.RecordFailure("openai")
	if ht.IsAvailable("openai") {
		t.Error("expected openai to be unavailable")
	}

	time.Sleep(15 * time.Millisecond)

	if !ht.IsAvailable("openai") {
		t.Error("expected openai to be available (half-open probe)")
	}

	ht.RecordSuccess("openai")
	if !ht.IsAvailable("openai") {
		t.Error("expected openai to be available after success")
	}
}

func TestHealthTracker_IndependentProviders(t *testing.T) {
	ht := NewHealthTracker(1, 5*time.Second)

	ht.RecordFailure("openai")

	if ht.IsAvailable("openai") {
		t.Error("expected openai to be unavailable")
	}
	if !ht.IsAvailable("anthropic") {
		t.Error("expected anthropic to be available (independent)")
	}
}

func TestHealthTracker_States(t *testing.T) {
	ht := NewHealthTracker(1, 5*time.Second)
	ht.RecordFailure("openai")

	states := ht.States([]string{"openai", "anthropic"})
	if states["openai"] != "open" {
		t.Errorf("expected openai open, got %s", states["openai"])
	}
	if states["anthropic"] != "closed" {
		t.Errorf("expected anthropic closed, got %s", states["anthropic"])
	}
}
