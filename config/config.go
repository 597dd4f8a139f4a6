// Package config loads runtime configuration for workflow hosts from YAML.
// The branch keyword set lives here because it determines branch
// activation and must never be hardcoded into graph wiring.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBranchKeywords is the keyword set gating diagnosis-style branches
// when the configuration does not override it.
var DefaultBranchKeywords = []string{"critical", "warning", "high", "alert"}

// Duration wraps time.Duration with YAML support for strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// EngineConfig tunes the workflow runtime.
type EngineConfig struct {
	MaxConcurrentBranches int      `yaml:"maxConcurrentBranches"`
	InvokeTimeout         Duration `yaml:"invokeTimeout"`
}

// BranchConfig carries the condition keyword set.
type BranchConfig struct {
	Keywords []string `yaml:"keywords"`
}

// RemoteConfig describes one peer-hosted agent endpoint.
type RemoteConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// RedisConfig describes the optional Redis-backed entity store.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Config is the root configuration document.
type Config struct {
	Logging LoggingConfig  `yaml:"logging"`
	Engine  EngineConfig   `yaml:"engine"`
	Branch  BranchConfig   `yaml:"branch"`
	Remotes []RemoteConfig `yaml:"remotes"`
	Redis   *RedisConfig   `yaml:"redis"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Engine: EngineConfig{
			MaxConcurrentBranches: 8,
			InvokeTimeout:         Duration(60 * time.Second),
		},
		Branch: BranchConfig{Keywords: append([]string(nil), DefaultBranchKeywords...)},
	}
}

// Load reads a YAML file into a Config, filling unset sections with
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("config path must not be empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.Branch.Keywords) == 0 {
		cfg.Branch.Keywords = append([]string(nil), DefaultBranchKeywords...)
	}
	return cfg, nil
}
