package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Settings missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration file %q: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes, completes and validates a YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads the file at `path`, or starts from the defaults if `path` is empty.
// Environment variables use the format UEVAL_FIELD and take precedence over the file.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Values which cannot be parsed are ignored.
func ApplyEnvOverrides(cfg *Config) {
	if val := os.Getenv("UEVAL_LOOP_ITERATION_LIMIT"); val != "" {
		if limit, err := strconv.Atoi(val); err == nil {
			cfg.Evaluator.LoopIterationLimit = limit
		}
	}
	if val := os.Getenv("UEVAL_TRACK_RETURNS"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			cfg.Evaluator.TrackReturns = enabled
		}
	}
	if val := os.Getenv("UEVAL_COLOR"); val != "" {
		cfg.Output.Color = ColorMode(val)
	}
	if val := os.Getenv("UEVAL_TRACE"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			cfg.Output.Trace = enabled
		}
	}
	if val := os.Getenv("UEVAL_TRACE_LEVEL"); val != "" {
		cfg.Output.TraceLevel = val
	}
}
