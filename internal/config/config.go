// Package config provides configuration management for the feed client.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when no configuration file is given.
const (
	DefaultEndpoint      = "https://api.nasa.gov/neo/rest/v1/feed"
	DefaultAPIKey        = "DEMO_KEY"
	DefaultTimeoutSec    = 30
	DefaultMaxResponseKb = 4096
	DefaultUserAgent     = "neowatch/1.0"
	DefaultLimit         = 3
)

// Environment variables that override file values.
const (
	EnvAPIKey   = "NASA_API_KEY"
	EnvEndpoint = "NEOWATCH_ENDPOINT"
	EnvTimeout  = "NEOWATCH_TIMEOUT_SEC"
	EnvLogLevel = "NEOWATCH_LOG_LEVEL"
)

// Output formats.
const (
	FormatInline = "inline"
	FormatLines  = "lines"
	FormatTable  = "table"
)

// Configuration validation errors.
var (
	ErrMissingEndpoint     = errors.New("api.endpoint is required")
	ErrInvalidEndpoint     = errors.New("api.endpoint must be an absolute http(s) URL")
	ErrInvalidTimeout      = errors.New("http.timeout_sec must be at least 1")
	ErrInvalidMaxResponse  = errors.New("http.max_response_kb must be at least 1")
	ErrInvalidDefaultLimit = errors.New("query.default_limit must be at least 1")
	ErrInvalidOutputFormat = errors.New("output.format must be one of: inline, lines, table")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	HTTP    HTTPConfig    `yaml:"http"`
	Query   QueryConfig   `yaml:"query"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig identifies the feed endpoint and credential.
type APIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Key      string `yaml:"key"`
}

// HTTPConfig bounds the outbound request.
type HTTPConfig struct {
	UserAgent     string `yaml:"user_agent"`
	TimeoutSec    int    `yaml:"timeout_sec"`
	MaxResponseKb int    `yaml:"max_response_kb"`
}

// QueryConfig holds request defaults.
type QueryConfig struct {
	DefaultLimit int `yaml:"default_limit"`
}

// OutputConfig defines how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a configuration that talks to the public NeoWs feed.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Endpoint: DefaultEndpoint,
			Key:      DefaultAPIKey,
		},
		HTTP: HTTPConfig{
			UserAgent:     DefaultUserAgent,
			TimeoutSec:    DefaultTimeoutSec,
			MaxResponseKb: DefaultMaxResponseKb,
		},
		Query:   QueryConfig{DefaultLimit: DefaultLimit},
		Output:  OutputConfig{Format: FormatInline},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
// Keys absent from the file keep their default values.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides file values with any non-empty environment variables
// and re-validates the result.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvAPIKey); v != "" {
		c.API.Key = v
	}

	if v := getenv(EnvEndpoint); v != "" {
		c.API.Endpoint = v
	}

	if v := getenv(EnvTimeout); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidTimeout, EnvTimeout, v)
		}

		c.HTTP.TimeoutSec = sec
	}

	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}

	return c.Validate()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return ErrMissingEndpoint
	}

	u, err := url.Parse(c.API.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, c.API.Endpoint)
	}

	if c.HTTP.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.HTTP.MaxResponseKb < 1 {
		return ErrInvalidMaxResponse
	}

	if c.Query.DefaultLimit < 1 {
		return ErrInvalidDefaultLimit
	}

	switch c.Output.Format {
	case FormatInline, FormatLines, FormatTable:
	default:
		return ErrInvalidOutputFormat
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetTimeout returns the request timeout duration.
func (h *HTTPConfig) GetTimeout() time.Duration {
	return time.Duration(h.TimeoutSec) * time.Second
}

// GetMaxResponseBytes returns the response body cap in bytes.
func (h *HTTPConfig) GetMaxResponseBytes() int64 {
	return int64(h.MaxResponseKb) * 1024
}

// String returns a string representation of the config with the API key redacted.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Endpoint: %s, Key: %s, Timeout: %ds, Format: %s}",
		c.API.Endpoint,
		RedactKey(c.API.Key),
		c.HTTP.TimeoutSec,
		c.Output.Format,
	)
}

// RedactKey hides all but the first two characters of a credential.
func RedactKey(key string) string {
	if len(key) <= 2 {
		return "***"
	}

	return key[:2] + "***"
}
