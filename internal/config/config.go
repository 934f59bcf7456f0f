// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"slack-archiver/internal/adapters/storage"
	"slack-archiver/pkg/log"
)

// Config holds every setting read at startup.
type Config struct {
	LogLevel log.Level `envconfig:"LOG_LEVEL" default:"info"`
	Port     int       `envconfig:"PORT" default:"3000"`

	SlackAPIBase string `envconfig:"SLACK_API_BASE" default:"https://slack.com/api"`
	// Fallback session used when a request carries no credentials.
	SlackToken  string `envconfig:"SLACK_TOKEN"`
	SlackCookie string `envconfig:"SLACK_COOKIE"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	CacheTTL       time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	FeaturesFile   string        `envconfig:"FEATURES_FILE" default:"config/features.yaml"`

	BrowserWSURL      string `envconfig:"BROWSER_WS_URL"`
	BrowserProfileDir string `envconfig:"BROWSER_PROFILE_DIR"`

	Storage storage.Config `envconfig:"STORAGE"`
}

// Load reads .env when present and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot check by itself.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	switch c.Storage.Type {
	case storage.TypeLocal, storage.TypeGCS:
	default:
		return fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", storage.TypeLocal, storage.TypeGCS, c.Storage.Type)
	}
	return nil
}
