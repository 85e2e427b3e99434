// Package config loads the server configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config is populated by caarlos0/env from the `env` tags below. Every
// field has a default, so an empty environment yields a runnable server.
type Config struct {
	// Port the HTTP server listens on.
	// Env: PORT
	Port int `env:"PORT" envDefault:"5000"`

	// EnableGlobalErrorLogging adds stack traces to the final error
	// handler's log line.
	// Env: ENABLE_GLOBAL_ERROR_LOGGING
	EnableGlobalErrorLogging bool `env:"ENABLE_GLOBAL_ERROR_LOGGING" envDefault:"false"`

	// DBPath is the SQLite database file, or ":memory:".
	// Env: DB_PATH
	DBPath string `env:"DB_PATH" envDefault:"data/fsjstd-restapi.db"`

	// BcryptCost is the bcrypt work factor for new password hashes.
	// Env: BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// LogLevel accepts DEBUG, INFO, WARN or ERROR (any case).
	// Env: LOG_LEVEL
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("error getting env configs: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value at once.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("config: BCRYPT_COST must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("config: DB_PATH must not be empty"))
	}
	return errors.Join(errs...)
}
