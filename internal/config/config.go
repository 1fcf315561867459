// Package config loads the fibdapp client configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	// RPCURL is the node endpoint (http, ws or ipc path).
	RPCURL string `yaml:"rpc_url"`

	// Artifact is the path to the compiled contract JSON. Empty means the
	// built-in Fibonacci ABI with no known deployments.
	Artifact string `yaml:"artifact"`

	PollInterval string `yaml:"poll_interval"`
	CallTimeout  string `yaml:"call_timeout"`

	Logging LoggingConfig `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
	File        string `yaml:"file"` // required by the ui command, stderr otherwise
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RPCURL:       "http://127.0.0.1:8545",
		PollInterval: "1s",
		CallTimeout:  "0s",
		Logging: LoggingConfig{
			Level: "info",
			File:  "fibdapp.log",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FIBDAPP_RPC_URL"); v != "" {
		c.RPCURL = v
	}
	if v := os.Getenv("FIBDAPP_ARTIFACT"); v != "" {
		c.Artifact = v
	}
	if v := os.Getenv("FIBDAPP_POLL_INTERVAL"); v != "" {
		c.PollInterval = v
	}
	if v := os.Getenv("FIBDAPP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FIBDAPP_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
}

// GetPollInterval returns the account polling interval.
func (c *Config) GetPollInterval() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// GetCallTimeout returns the per-call timeout; zero means none.
func (c *Config) GetCallTimeout() time.Duration {
	d, err := time.ParseDuration(c.CallTimeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ValidLogLevels lists the accepted log levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RPCURL) == "" {
		return fmt.Errorf("rpc_url not configured (set FIBDAPP_RPC_URL or --rpc)")
	}

	if c.PollInterval != "" {
		d, err := time.ParseDuration(c.PollInterval)
		if err != nil {
			return fmt.Errorf("invalid poll_interval %q: %w", c.PollInterval, err)
		}
		if d <= 0 {
			return fmt.Errorf("poll_interval must be positive, got %s", d)
		}
	}
	if c.CallTimeout != "" {
		if _, err := time.ParseDuration(c.CallTimeout); err != nil {
			return fmt.Errorf("invalid call_timeout %q: %w", c.CallTimeout, err)
		}
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}
