// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverFile     = "file"
	DriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Addr   string `env:"ADDR" envDefault:":8080"`
	WebDir string `env:"WEB_DIR" envDefault:"web"`

	// Storage
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/waterbuddy.db"`
	DataDir     string `env:"DATA_DIR" envDefault:"data"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// HTTP
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
	DisableAuth bool     `env:"DISABLE_AUTH" envDefault:"false"`

	// Bootstrap account, created only when no users exist yet.
	InitialUser     string `env:"INITIAL_USER"`
	InitialPassword string `env:"INITIAL_PASSWORD"`

	// SSO (optional)
	OIDCIssuer       string `env:"OIDC_ISSUER"`
	OIDCClientID     string `env:"OIDC_CLIENT_ID"`
	OIDCClientSecret string `env:"OIDC_CLIENT_SECRET"`
	OIDCRedirectURL  string `env:"OIDC_REDIRECT_URL"`

	SessionCleanupSchedule string `env:"SESSION_CLEANUP_SCHEDULE" envDefault:"@hourly"`
}

// Load reads an optional .env file, then parses and validates the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORE_DRIVER=sqlite")
		}
	case DriverFile:
		if c.DataDir == "" {
			return errors.New("DATA_DIR is required when STORE_DRIVER=file")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if (c.InitialUser == "") != (c.InitialPassword == "") {
		return errors.New("INITIAL_USER and INITIAL_PASSWORD must be set together")
	}

	if c.OIDCIssuer != "" {
		if c.OIDCClientID == "" || c.OIDCRedirectURL == "" {
			return errors.New("OIDC_CLIENT_ID and OIDC_REDIRECT_URL are required when OIDC_ISSUER is set")
		}
	}
	return nil
}

// SSOEnabled reports whether OIDC login is configured.
func (c *Config) SSOEnabled() bool {
	return c.OIDCIssuer != ""
}
