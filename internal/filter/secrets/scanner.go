package secrets

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/af-corp/tsconvert/internal/config"
	"github.com/af-corp/tsconvert/internal/filter"
)

// Detection represents a detected secret in text.
type Detection struct {
	PatternName string // e.g. "AWS Access Key"
	Start       int    // byte offset
	End         int    // byte offset
}

// Scanner scans submitted source for credentials before it leaves the process.
type Scanner struct {
	patterns []Pattern
	cfg      func() config.SecretsFilterConfig
}

// NewScanner creates a scanner with the default secret patterns.
func NewScanner(cfg func() config.SecretsFilterConfig) *Scanner {
	return &Scanner{patterns: DefaultPatterns(), cfg: cfg}
}

func (s *Scanner) Name() string  { return "secrets" }
func (s *Scanner) Enabled() bool { return s.cfg().Enabled }

// Scan checks a single text string for secrets and returns all detections.
func (s *Scanner) Scan(text string) []Detection {
	var detections []Detection
	for _, p := range s.patterns {
		locs := p.Regex.FindAllStringIndex(text, -1)
		for _, loc := range locs {
			detections = append(detections, Detection{
				PatternName: p.Name,
				Start:       loc[0],
				End:         loc[1],
			})
		}
	}
	return detections
}

// ScanRequest implements filter.Filter. Any detection blocks the conversion.
func (s *Scanner) ScanRequest(_ context.Context, req *filter.Request) filter.Result {
	detections := s.Scan(req.Source)
	if len(detections) == 0 {
		return filter.Result{Action: filter.ActionPass, FilterName: "secrets"}
	}

	return filter.Result{
		Action:     filter.ActionBlock,
		FilterName: "secrets",
		Message:    fmt.Sprintf("source contains credentials: %s", patternNames(detections)),
		Detections: len(detections),
		Score:      1,
	}
}

func patternNames(detections []Detection) string {
	seen := make(map[string]struct{})
	var names []string
	for _, d := range detections {
		if _, ok := seen[d.PatternName]; ok {
			continue
		}
		seen[d.PatternName] = struct{}{}
		names = append(names, d.PatternName)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
