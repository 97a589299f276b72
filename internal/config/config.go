package config

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	Server    ServerConfig              `yaml:"server"`
	Providers map[string]ProviderConfig `yaml:"providers"`
	Models    ModelsConfig              `yaml:"models"`
	Telemetry TelemetryConfig           `yaml:"telemetry"`
	Filter    FilterConfig              `yaml:"filter"`
	Routing   RoutingConfig             `yaml:"routing"`
}

type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	MaxBodyBytes     int64         `yaml:"max_body_bytes"`
}

type TelemetryConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type FilterConfig struct {
	Secrets   SecretsFilterConfig   `yaml:"secrets"`
	Injection InjectionFilterConfig `yaml:"injection"`
	Policy    PolicyFilterConfig    `yaml:"policy"`
}

type SecretsFilterConfig struct {
	Enabled bool `yaml:"enabled"`
}

type InjectionFilterConfig struct {
	Enabled        bool    `yaml:"enabled"`
	BlockThreshold float64 `yaml:"block_threshold"`
	FlagThreshold  float64 `yaml:"flag_threshold"`
}

type PolicyFilterConfig struct {
	Enabled           bool          `yaml:"enabled"`
	BundlePath        string        `yaml:"bundle_path"`
	EvaluationTimeout time.Duration `yaml:"evaluation_timeout"`
	Watch             bool          `yaml:"watch"`
}

type RoutingConfig struct {
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	FailureThreshold      int           `yaml:"failure_threshold"`
	RecoveryProbeInterval time.Duration `yaml:"recovery_probe_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     120 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 30 * time.Second,
			MaxBodyBytes:     1 << 20,
		},
		Providers: map[string]ProviderConfig{
			"openai": {
				Type:          "openai",
				BaseURL:       "https://api.openai.com/v1",
				APIKey:        "${OPENAI_API_KEY}",
				MaxConcurrent: DefaultProviderMaxConcurrent,
				Timeout:       DefaultProviderTimeout,
			},
		},
		Models: DefaultModels(),
		Telemetry: TelemetryConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
		Filter: FilterConfig{
			Injection: InjectionFilterConfig{
				BlockThreshold: 0.9,
				FlagThreshold:  0.7,
			},
			Policy: PolicyFilterConfig{
				BundlePath:        "configs/policies",
				EvaluationTimeout: 100 * time.Millisecond,
			},
		},
		Routing: RoutingConfig{
			CircuitBreaker: CircuitBreakerConfig{
				FailureThreshold:      5,
				RecoveryProbeInterval: 15 * time.Second,
			},
		},
	}
}

// Validate checks cross-field invariants that YAML decoding cannot express.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d must be a valid TCP port", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server max_body_bytes must be positive")
	}
	if len(c.Providers) == 0 {
		return errors.New("at least one provider must be configured")
	}
	for name, p := range c.Providers {
		if p.BaseURL == "" {
			return fmt.Errorf("provider %q: base_url must not be empty", name)
		}
		switch p.Type {
		case "", "openai", "anthropic":
		default:
			return fmt.Errorf("provider %q: unsupported type %q", name, p.Type)
		}
	}
	if err := c.Models.Validate(); err != nil {
		return err
	}
	for _, m := range c.Models.Supported {
		if _, ok := c.Providers[m.Provider]; !ok {
			return fmt.Errorf("model %q routes to unknown provider %q", m.ID, m.Provider)
		}
	}
	if c.Filter.Injection.FlagThreshold > c.Filter.Injection.BlockThreshold {
		return errors.New("injection flag_threshold must not exceed block_threshold")
	}
	return nil
}
