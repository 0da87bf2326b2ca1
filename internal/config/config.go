// Package config loads the registry configuration from the environment.
//
// Variables carry the PATIENTS_ prefix and a double underscore separates
// nesting levels, so PATIENTS_DATABASE__SSL_MODE maps to database.ssl_mode.
// A `.env` file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "PATIENTS_"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	BackendGorm = "gorm"
	BackendSQLX = "sqlx"

	MigrationVersioned = "versioned"
	MigrationAuto      = "auto"
	MigrationNone      = "none"

	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	Primary    Primary          `koanf:"primary" validate:"required"`
	Database   DatabaseConfig   `koanf:"database" validate:"required"`
	Repository RepositoryConfig `koanf:"repository" validate:"required"`
	Migration  MigrationConfig  `koanf:"migration" validate:"required"`
	Logging    LoggingConfig    `koanf:"logging" validate:"required"`
	Demo       DemoConfig       `koanf:"demo" validate:"required"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// DatabaseConfig selects the store. Host, user and name are only needed for
// Postgres; Path is the SQLite DSN (":memory:" by default).
type DatabaseConfig struct {
	Driver          string        `koanf:"driver" validate:"required,oneof=postgres sqlite"`
	Host            string        `koanf:"host" validate:"required_if=Driver postgres"`
	Port            int           `koanf:"port" validate:"required_if=Driver postgres"`
	User            string        `koanf:"user" validate:"required_if=Driver postgres"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode         string        `koanf:"ssl_mode"`
	Path            string        `koanf:"path" validate:"required_if=Driver sqlite"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	PingTimeout     time.Duration `koanf:"ping_timeout" validate:"min=1s"`
}

type RepositoryConfig struct {
	Backend string `koanf:"backend" validate:"required,oneof=gorm sqlx"`
}

type MigrationConfig struct {
	Mode string `koanf:"mode" validate:"required,oneof=versioned auto none"`
}

type LoggingConfig struct {
	Level              string        `koanf:"level" validate:"required,oneof=debug info warn error"`
	Format             string        `koanf:"format" validate:"required,oneof=console json"`
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold" validate:"min=0"`
}

type DemoConfig struct {
	Output string `koanf:"output" validate:"required,oneof=text json"`
}

// Default returns the configuration used when nothing is set: an in-memory
// SQLite store behind the GORM repository.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "local"},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Port:            5432,
			SSLMode:         "disable",
			Path:            ":memory:",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
			PingTimeout:     10 * time.Second,
		},
		Repository: RepositoryConfig{Backend: BackendGorm},
		Migration:  MigrationConfig{Mode: MigrationVersioned},
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "console",
			SlowQueryThreshold: 200 * time.Millisecond,
		},
		Demo: DemoConfig{Output: OutputText},
	}
}

// Load reads PATIENTS_* variables over the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// IsLocal reports whether the process runs in the local environment.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
