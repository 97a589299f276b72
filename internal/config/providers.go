package config

import "time"

// Provider defaults applied by Load to fields a config file leaves unset.
const (
	DefaultProviderTimeout       = 60 * time.Second
	DefaultProviderMaxConcurrent = 32
)

// ProviderConfig describes one completion provider. A zero Timeout takes
// DefaultProviderTimeout; a negative Timeout disables the client timeout.
type ProviderConfig struct {
	Type          string            `yaml:"type"`
	BaseURL       string            `yaml:"base_url"`
	APIKey        string            `yaml:"api_key"`
	APIVersion    string            `yaml:"api_version,omitempty"`
	MaxConcurrent int               `yaml:"max_concurrent"`
	Timeout       time.Duration     `yaml:"timeout"`
	MaxTokens     int               `yaml:"max_tokens,omitempty"`
	Headers       map[string]string `yaml:"headers,omitempty"`
}
