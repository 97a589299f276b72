package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:default} patterns in a string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		varName := submatch[1]
		defaultVal := ""
		if len(submatch) >= 3 {
			defaultVal = submatch[2]
		}
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return defaultVal
	})
}

// LoadFile reads a YAML file, expands env vars, and unmarshals into dest.
func LoadFile(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), dest); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Load builds the process configuration: defaults, then the YAML file at path
// (skipped with a warning when it does not exist), then env expansion of
// provider credentials. The result is validated and must not be mutated.
func Load(path string, logger *slog.Logger) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		err := LoadFile(path, cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Warn("config file not found, using defaults", "path", path)
		case err != nil:
			return nil, err
		default:
			logger.Info("configuration loaded", "path", path)
		}
	}

	for name, p := range cfg.Providers {
		if p.Type == "" {
			p.Type = "openai"
		}
		if p.MaxConcurrent <= 0 {
			p.MaxConcurrent = DefaultProviderMaxConcurrent
		}
		if p.Timeout == 0 {
			p.Timeout = DefaultProviderTimeout
		}
		p.BaseURL = expandEnvVars(p.BaseURL)
		p.APIKey = expandEnvVars(p.APIKey)
		for k, v := range p.Headers {
			p.Headers[k] = expandEnvVars(v)
		}
		cfg.Providers[name] = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
