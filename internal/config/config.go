// Package config assembles CLI configuration from defaults, an optional
// YAML config file, and GTR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/gtr/internal/httputil"
	"github.com/pdiddy/gtr/pkg/gtr"
)

// Config holds the resolved CLI configuration.
type Config struct {
	BaseURL        string            `mapstructure:"base_url"`
	TimeoutSeconds int64             `mapstructure:"timeout_seconds"`
	Timeout        time.Duration     `mapstructure:"-"`
	UserAgent      string            `mapstructure:"user_agent"`
	Headers        map[string]string `mapstructure:"headers"`
	PageSize       int               `mapstructure:"page_size"`
	LogLevel       string            `mapstructure:"log_level"`
	LogFormat      string            `mapstructure:"log_format"`
	CatalogPath    string            `mapstructure:"catalog_path"`

	// RequestDelayMS spaces consecutive API requests, for bulk fetches
	// against the rate-limited public service. Zero disables spacing.
	RequestDelayMS int64         `mapstructure:"request_delay_ms"`
	RequestDelay   time.Duration `mapstructure:"-"`

	// FileUsed is the path of the config file that was read, if any.
	FileUsed string `mapstructure:"-"`
}

// Load reads configuration. cfgFile overrides the default search path
// (./gtr.yaml, then ~/.config/gtr/gtr.yaml). Environment variables use
// the GTR_ prefix, e.g. GTR_BASE_URL; a .env file in the working
// directory is honoured if present.
func Load(cfgFile string) (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetDefault("base_url", gtr.DefaultBaseURL)
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("user_agent", "gtr/0.1")
	v.SetDefault("headers", map[string]string{})
	v.SetDefault("page_size", gtr.DefaultPageSize)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("catalog_path", filepath.Join("data", "catalog.db"))
	v.SetDefault("request_delay_ms", 0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("gtr")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gtr"))
		}
	}

	v.SetEnvPrefix("GTR")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file on the default search path is fine; a missing
		// file the user named explicitly is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid timeout_seconds %d (must be positive)", cfg.TimeoutSeconds)
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if cfg.PageSize < gtr.MinPageSize || cfg.PageSize > gtr.MaxPageSize {
		return nil, fmt.Errorf("invalid page_size %d (must be %d to %d)",
			cfg.PageSize, gtr.MinPageSize, gtr.MaxPageSize)
	}

	if cfg.RequestDelayMS < 0 {
		return nil, fmt.Errorf("invalid request_delay_ms %d (must not be negative)", cfg.RequestDelayMS)
	}
	cfg.RequestDelay = time.Duration(cfg.RequestDelayMS) * time.Millisecond

	cfg.FileUsed = v.ConfigFileUsed()
	return &cfg, nil
}

// ClientConfig maps the CLI configuration onto the API client's.
func (c *Config) ClientConfig() gtr.Config {
	cc := gtr.Config{
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		UserAgent: c.UserAgent,
		Headers:   c.Headers,
	}
	if c.RequestDelay > 0 {
		cc.HTTPClient = &http.Client{
			Timeout:   c.Timeout,
			Transport: httputil.NewThrottle(nil, c.RequestDelay),
		}
	}
	return cc
}
