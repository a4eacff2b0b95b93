// Package config loads tool configuration: built-in defaults, overridden by
// an optional YAML file, overridden by environment variables. A .env file in
// the working directory is honored for the environment step.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete tool configuration.
type Config struct {
	// OutputDir receives exported bundles.
	OutputDir string `yaml:"output_dir"`
	// CachePath is the SQLite chapter cache. Empty disables caching.
	CachePath string `yaml:"cache_path"`
	// MaxConcurrency bounds in-flight passage requests per operation.
	MaxConcurrency int `yaml:"max_concurrency"`
	// HTTPTimeoutSeconds bounds each passage request.
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`
	// UserAgent overrides the default fetch User-Agent when set.
	UserAgent string `yaml:"user_agent"`
	// ListenAddr is the HTTP API bind address for `bt serve`.
	ListenAddr string `yaml:"listen_addr"`

	Notify NotifyConfig `yaml:"notify"`
}

// NotifyConfig configures the optional Mailgun completion email.
type NotifyConfig struct {
	Domain    string `yaml:"domain"`
	APIKey    string `yaml:"api_key"`
	Sender    string `yaml:"sender"`
	Recipient string `yaml:"recipient"`
}

// Enabled reports whether notification is fully configured.
func (n NotifyConfig) Enabled() bool {
	return n.Domain != "" && n.APIKey != "" && n.Sender != "" && n.Recipient != ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir:          "exports",
		CachePath:          defaultCachePath(),
		MaxConcurrency:     8,
		HTTPTimeoutSeconds: 15,
		ListenAddr:         ":8080",
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".bt-cache.sqlite"
	}
	return filepath.Join(dir, "bible-translations", "cache.sqlite")
}

// HTTPTimeout returns the request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Load builds the configuration. path names a YAML file and may be empty.
func Load(path string) (*Config, error) {
	// Best effort: a missing .env file is fine.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BT_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("BT_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("BT_MAX_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxConcurrency = n
		}
	}
	if v := os.Getenv("BT_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTPTimeoutSeconds = n
		}
	}
	if v := os.Getenv("BT_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("BT_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("MAILGUN_DOMAIN"); v != "" {
		cfg.Notify.Domain = v
	}
	if v := os.Getenv("MAILGUN_API_KEY"); v != "" {
		cfg.Notify.APIKey = v
	}
	if v := os.Getenv("MAILGUN_SENDER"); v != "" {
		cfg.Notify.Sender = v
	}
	if v := os.Getenv("BT_NOTIFY_EMAIL"); v != "" {
		cfg.Notify.Recipient = v
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	if c.HTTPTimeoutSeconds < 1 {
		return fmt.Errorf("http_timeout_seconds must be at least 1, got %d", c.HTTPTimeoutSeconds)
	}
	return nil
}
