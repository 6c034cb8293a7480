// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/alexanderramin/teletext/internal/fetch"
)

// Config holds all runtime configuration. Every knob has a default so
// the portal runs with zero environment.
type Config struct {
	DBPath   string `env:"TELETEXT_DB"`
	LogLevel string `env:"TELETEXT_LOG_LEVEL" envDefault:"warn"`

	// Fetch policy.
	HTTPTimeout    time.Duration `env:"TELETEXT_HTTP_TIMEOUT"    envDefault:"8s"`
	MaxRetries     int           `env:"TELETEXT_MAX_RETRIES"     envDefault:"3"`
	InitialBackoff time.Duration `env:"TELETEXT_INITIAL_BACKOFF" envDefault:"500ms"`
	MaxBackoff     time.Duration `env:"TELETEXT_MAX_BACKOFF"     envDefault:"5s"`
	LogFetches     bool          `env:"TELETEXT_LOG_FETCHES"`

	// Upstream services.
	WeatherBaseURL   string `env:"TELETEXT_WEATHER_URL"   envDefault:"https://api.open-meteo.com/v1"`
	CryptoBaseURL    string `env:"TELETEXT_CRYPTO_URL"    envDefault:"https://api.coingecko.com/api/v3"`
	OnThisDayBaseURL string `env:"TELETEXT_ONTHISDAY_URL" envDefault:"https://api.wikimedia.org/feed/v1/wikipedia/en"`
}

// Load reads configuration from the environment, falling back to
// defaults for unset values. The database defaults to
// ~/.teletext/teletext.db.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".teletext", "teletext.db")
	}

	return cfg, nil
}

// FetchConfig builds the fetch client policy from the loaded values.
func (c Config) FetchConfig() fetch.Config {
	fc := fetch.DefaultConfig()
	fc.Timeout = c.HTTPTimeout
	fc.MaxRetries = c.MaxRetries
	fc.InitialBackoff = c.InitialBackoff
	fc.MaxBackoff = c.MaxBackoff
	return fc
}
