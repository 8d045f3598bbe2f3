// Package config loads the exporter configuration from the environment.
// Credentials are never read from ambient globals; the loaded Config value
// is passed explicitly into every component that needs it.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the exporter needs for one run.
type Config struct {
	// EnterpriseID is the numeric enterprise identifier used by the
	// per-team usage endpoint.
	EnterpriseID string `envconfig:"ENTERPRISE_ID" required:"true"`

	// EnterpriseSlug is the enterprise slug used by the collection endpoints.
	EnterpriseSlug string `envconfig:"ENTERPRISE_SLUG" required:"true"`

	// Token is the bearer token for the GitHub API.
	Token string `envconfig:"GITHUB_TOKEN" required:"true"`

	// BaseURL is the API root. Overridable for tests.
	BaseURL string `envconfig:"API_BASE_URL" default:"https://api.github.com"`

	// Workers bounds the detail-fetch worker pool.
	Workers int `envconfig:"WORKERS" default:"5"`

	// OutputDir is where CSV reports are written.
	OutputDir string `envconfig:"OUTPUT_DIR" default:"."`

	Log LogConfig `envconfig:"LOG"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	File   string `envconfig:"FILE" default:"copilot-export.log"`
	Pretty bool   `envconfig:"PRETTY" default:"true"`
}

// Load reads a .env file if present, then the process environment.
// A missing required variable is an error; the caller must treat it as
// fatal before any network call is made.
func Load() (*Config, error) {
	// Best effort - a missing .env file is fine, the variables may be
	// set in the real environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config from environment: %w", err)
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be >= 1 (got %d)", cfg.Workers)
	}

	return cfg, nil
}
