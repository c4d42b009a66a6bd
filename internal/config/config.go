// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration
type Config struct {
	Host string `env:"ADASTRA_HOST" envDefault:""`
	Port int    `env:"ADASTRA_PORT" envDefault:"8080"`

	// DBPath is the SQLite database file
	DBPath string `env:"ADASTRA_DB_PATH" envDefault:"game_server.db"`

	// SysopTokenFile holds the pre-shared operator token; created on first
	// start if missing
	SysopTokenFile string `env:"ADASTRA_SYSOP_TOKEN_FILE" envDefault:"sysop.token"`

	// AdminUsername and AdminPassword bootstrap the admin account on start.
	// The password only applies when the account does not exist yet.
	AdminUsername string `env:"ADASTRA_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADASTRA_ADMIN_PASSWORD" envDefault:"admin123"`

	Debug bool `env:"ADASTRA_DEBUG" envDefault:"false"`
}

// Load parses configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
