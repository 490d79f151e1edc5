// Package config loads the service settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Supported values of DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config carries the settings of the catalog process.
type Config struct {
	AppPort     string
	AppEnv      string
	LogLevel    zerolog.Level
	Database    DatabaseConfig
	RabbitMQURL string
	SeedData    bool
}

// DatabaseConfig selects and addresses the product store.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// IsDevelopment reports whether the process runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads .env when present, then the environment, applies defaults and validates the
// result.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "file:catalog.db?cache=shared")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SEED_DATA", true)
	v.AutomaticEnv()

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := Config{
		AppPort:  v.GetString("APP_PORT"),
		AppEnv:   strings.ToLower(v.GetString("APP_ENV")),
		LogLevel: level,
		Database: DatabaseConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
			DSN:    strings.TrimSpace(v.GetString("DATABASE_DSN")),
		},
		RabbitMQURL: strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		SeedData:    v.GetBool("SEED_DATA"),
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
		if cfg.Database.DSN == "" {
			return Config{}, fmt.Errorf("DATABASE_DSN is required for driver %q", cfg.Database.Driver)
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("DATABASE_DRIVER must be one of %s, %s or %s, got %q",
			DriverPostgres, DriverSQLite, DriverMemory, cfg.Database.Driver)
	}
	if !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}
	return cfg, nil
}
