package policy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/af-corp/tsconvert/internal/config"
	"github.com/af-corp/tsconvert/internal/filter"
	"github.com/open-policy-agent/opa/rego"
)

const query = "[data.tsconvert.policy.allow, data.tsconvert.policy.reason]"

// PolicyInput is the data sent to OPA for evaluation.
type PolicyInput struct {
	Request PolicyReq  `json:"request"`
	Time    PolicyTime `json:"time"`
}

type PolicyReq struct {
	Model       string `json:"model"`
	SourceBytes int    `json:"source_bytes"`
	SourceLines int    `json:"source_lines"`
}

type PolicyTime struct {
	Hour int    `json:"hour"`
	Day  string `json:"day"`
}

// Evaluator implements filter.Filter using OPA.
type Evaluator struct {
	mu       sync.RWMutex
	prepared *rego.PreparedEvalQuery
	cfg      func() config.PolicyFilterConfig
	now      func() time.Time
}

// NewEvaluator creates a policy evaluator. Call Load() to compile policies.
func NewEvaluator(cfg func() config.PolicyFilterConfig) *Evaluator {
	return &Evaluator{cfg: cfg, now: time.Now}
}

func (e *Evaluator) Name() string  { return "policy" }
func (e *Evaluator) Enabled() bool { return e.cfg().Enabled }

// Load compiles Rego modules from the bundle path.
func (e *Evaluator) Load() error {
	cfg := e.cfg()
	modules, err := LoadRegoFiles(cfg.BundlePath)
	if err != nil {
		return fmt.Errorf("load rego files: %w", err)
	}
	if len(modules) == 0 {
		slog.Warn("no rego files found", "path", cfg.BundlePath)
		return nil
	}
	if err := e.LoadFromModules(modules); err != nil {
		return err
	}
	slog.Info("opa policies loaded", "modules", len(modules), "path", cfg.BundlePath)
	return nil
}

// LoadFromModules compiles policies from provided module sources. The previous
// query stays active if compilation fails.
func (e *Evaluator) LoadFromModules(modules map[string]string) error {
	opts := []func(*rego.Rego){rego.Query(query)}
	for name, src := range modules {
		opts = append(opts, rego.Module(name, src))
	}

	prepared, err := rego.New(opts...).PrepareForEval(context.Background())
	if err != nil {
		return fmt.Errorf("prepare rego: %w", err)
	}

	e.mu.Lock()
	e.prepared = &prepared
	e.mu.Unlock()
	return nil
}

// Evaluate runs the policy against the given input.
func (e *Evaluator) Evaluate(ctx context.Context, input PolicyInput) (bool, string, error) {
	e.mu.RLock()
	prepared := e.prepared
	e.mu.RUnlock()

	if prepared == nil {
		// fail closed
		return false, "no policies loaded", nil
	}

	timeout := e.cfg().EvaluationTimeout
	if timeout == 0 {
		timeout = 100 * time.Millisecond
	}

	evalCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := prepared.Eval(evalCtx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Sprintf("policy evaluation error: %v", err), err
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, "no policy result", nil
	}

	// [allow, reason]
	arr, ok := results[0].Expressions[0].Value.([]interface{})
	if !ok || len(arr) < 2 {
		return false, "unexpected policy result format", nil
	}

	allowed, _ := arr[0].(bool)
	reason, _ := arr[1].(string)

	return allowed, reason, nil
}

// ScanRequest implements filter.Filter.
func (e *Evaluator) ScanRequest(ctx context.Context, req *filter.Request) filter.Result {
	now := e.now().UTC()
	input := PolicyInput{
		Request: PolicyReq{
			Model:       req.Model,
			SourceBytes: len(req.Source),
			SourceLines: strings.Count(req.Source, "\n") + 1,
		},
		Time: PolicyTime{
			Hour: now.Hour(),
			Day:  now.Weekday().String(),
		},
	}

	allowed, reason, err := e.Evaluate(ctx, input)
	if err != nil {
		slog.Error("policy evaluation failed", "request_id", req.RequestID, "error", err)
		return filter.Result{
			Action:     filter.ActionBlock,
			FilterName: "policy",
			Message:    "policy evaluation failed: " + err.Error(),
		}
	}

	if !allowed {
		return filter.Result{
			Action:     filter.ActionBlock,
			FilterName: "policy",
			Message:    "denied by policy: " + reason,
		}
	}

	return filter.Result{Action: filter.ActionPass, FilterName: "policy"}
}
