// Package config loads scriptdom's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chrisuehlinger/scriptdom/js"
	"gopkg.in/yaml.v3"
)

// Config holds all scriptdom configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Network NetworkConfig `yaml:"network"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// RuntimeConfig configures script compartments.
type RuntimeConfig struct {
	// LeakPolicy decides what closing a compartment with live roots does:
	// "warn" logs them, "error" also fails the close.
	LeakPolicy string `yaml:"leak_policy"`
}

// NetworkConfig configures fetching remote pages.
type NetworkConfig struct {
	Timeout   string `yaml:"timeout"` // Go duration, e.g. "30s"
	UserAgent string `yaml:"user_agent"`
	MaxBytes  int64  `yaml:"max_bytes"`
}

// GetTimeout returns the fetch timeout, defaulting to 30 seconds.
func (n NetworkConfig) GetTimeout() time.Duration {
	if d, err := time.ParseDuration(n.Timeout); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Runtime: RuntimeConfig{
			LeakPolicy: string(js.LeakPolicyWarn),
		},
		Network: NetworkConfig{
			Timeout:   "30s",
			UserAgent: "scriptdom/0.1",
			MaxBytes:  16 << 20,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("SCRIPTDOM_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if policy := os.Getenv("SCRIPTDOM_LEAK_POLICY"); policy != "" {
		c.Runtime.LeakPolicy = policy
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := c.Runtime.Policy(); err != nil {
		return fmt.Errorf("invalid runtime config: %w", err)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	if c.Network.Timeout != "" {
		if _, err := time.ParseDuration(c.Network.Timeout); err != nil {
			return fmt.Errorf("invalid network config: %w", err)
		}
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid logging config: unknown format %q (valid: json, console)", c.Logging.Format)
	}
	return nil
}

// Policy returns the parsed leak policy.
func (r RuntimeConfig) Policy() (js.LeakPolicy, error) {
	return js.ParseLeakPolicy(r.LeakPolicy)
}

// RuntimeOptions returns the js options this configuration implies.
func (c *Config) RuntimeOptions() ([]js.Option, error) {
	policy, err := c.Runtime.Policy()
	if err != nil {
		return nil, err
	}
	return []js.Option{js.WithLeakPolicy(policy)}, nil
}
