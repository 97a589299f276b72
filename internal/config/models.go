package config

import (
	"errors"
	"fmt"
)

// ModelsConfig is the fixed set of model ids the service forwards to a provider.
type ModelsConfig struct {
	Default   string       `yaml:"default"`
	Supported []ModelRoute `yaml:"supported"`
}

type ModelRoute struct {
	ID       string `yaml:"id"`
	Provider string `yaml:"provider"`
}

func DefaultModels() ModelsConfig {
	ids := []string{"gpt-3.5-turbo", "gpt-4", "gpt-4-turbo", "gpt-4o", "gpt-4o-mini"}
	routes := make([]ModelRoute, 0, len(ids))
	for _, id := range ids {
		routes = append(routes, ModelRoute{ID: id, Provider: "openai"})
	}
	return ModelsConfig{Default: "gpt-3.5-turbo", Supported: routes}
}

// Validate requires a non-empty set of unique ids with the default among them.
func (m ModelsConfig) Validate() error {
	if len(m.Supported) == 0 {
		return errors.New("models: supported set must not be empty")
	}
	seen := make(map[string]struct{}, len(m.Supported))
	for _, r := range m.Supported {
		if r.ID == "" {
			return errors.New("models: model id must not be empty")
		}
		if r.Provider == "" {
			return fmt.Errorf("models: model %q has no provider", r.ID)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("models: duplicate model %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	if _, ok := seen[m.Default]; !ok {
		return fmt.Errorf("models: default %q is not in the supported set", m.Default)
	}
	return nil
}

// ModelSet is the read-only view of ModelsConfig used at request time.
type ModelSet struct {
	order     []string
	providers map[string]string
	def       string
}

// NewModelSet validates cfg and freezes it.
func NewModelSet(cfg ModelsConfig) (*ModelSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &ModelSet{
		order:     make([]string, 0, len(cfg.Supported)),
		providers: make(map[string]string, len(cfg.Supported)),
		def:       cfg.Default,
	}
	for _, r := range cfg.Supported {
		s.order = append(s.order, r.ID)
		s.providers[r.ID] = r.Provider
	}
	return s, nil
}

func (s *ModelSet) Contains(id string) bool {
	_, ok := s.providers[id]
	return ok
}

func (s *ModelSet) Default() string { return s.def }

// IDs returns the supported ids in configured order.
func (s *ModelSet) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Resolve returns id when supported and the default otherwise.
// An unknown or empty id is never an error.
func (s *ModelSet) Resolve(id string) string {
	if s.Contains(id) {
		return id
	}
	return s.def
}

// ProviderFor returns the provider name routed for a supported id.
func (s *ModelSet) ProviderFor(id string) (string, bool) {
	p, ok := s.providers[id]
	return p, ok
}
