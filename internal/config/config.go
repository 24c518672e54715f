// Package config loads CLI configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized by the CLI.
const (
	EnvBaseURL        = "LEETFETCH_BASE_URL"
	EnvUserAgent      = "LEETFETCH_USER_AGENT"
	EnvMaxConcurrency = "LEETFETCH_MAX_CONCURRENCY"
	EnvLogLevel       = "LEETFETCH_LOG_LEVEL"
)

// Config holds the CLI configuration.
type Config struct {
	// BaseURL of the Alfa LeetCode API instance.
	BaseURL string `yaml:"base_url"`

	// UserAgent sent with every request.
	UserAgent string `yaml:"user_agent"`

	// MaxConcurrency bounds parallel fetches.
	MaxConcurrency int `yaml:"max_concurrency"`

	// RequestTimeoutSeconds bounds each username fetch.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// BatchTimeoutSeconds bounds the whole batch (0 = unbounded).
	BatchTimeoutSeconds int `yaml:"batch_timeout_seconds"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:               "https://alfa-leetcode-api.onrender.com",
		UserAgent:             "leetfetch/0.1.0",
		MaxConcurrency:        5,
		RequestTimeoutSeconds: 10,
		BatchTimeoutSeconds:   0,
		LogLevel:              "info",
	}
}

// Load reads the configuration: defaults, then the YAML file at path if
// given, then environment overrides. A missing explicit file is an
// error; an empty path is not.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.BaseURL = getEnvOrDefault(EnvBaseURL, cfg.BaseURL)
	cfg.UserAgent = getEnvOrDefault(EnvUserAgent, cfg.UserAgent)
	cfg.LogLevel = getEnvOrDefault(EnvLogLevel, cfg.LogLevel)
	if v := os.Getenv(EnvMaxConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvMaxConcurrency, err)
		}
		cfg.MaxConcurrency = n
	}

	if cfg.MaxConcurrency <= 0 {
		return Config{}, fmt.Errorf("max_concurrency must be positive (got %d)", cfg.MaxConcurrency)
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return Config{}, fmt.Errorf("request_timeout_seconds must be positive (got %d)", cfg.RequestTimeoutSeconds)
	}

	return cfg, nil
}

// RequestTimeout returns the per-request timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// BatchTimeout returns the whole-batch timeout as a duration.
func (c Config) BatchTimeout() time.Duration {
	return time.Duration(c.BatchTimeoutSeconds) * time.Second
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
