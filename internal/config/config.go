package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"local-ads/internal/config/configs"
	"local-ads/internal/core/port"
)

// Config aggregates all configuration sections. Fields are populated from
// environment variables using the caarlos0/env library; nested structs are
// tagged with envPrefix so their fields parse with the given prefix. See the
// individual types in the configs package for defaults. Use Load to
// construct a Config.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev). Used only
	// for logging.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds the listener configuration. Variables prefixed with
	// HTTP_ populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger (LOG_ prefix).
	Log configs.Logger `envPrefix:"LOG_"`

	// DB configures the embedded SQLite database (DB_ prefix).
	DB configs.SQLite `envPrefix:"DB_"`

	// Catalog configures the remote catalog synchronizer (CATALOG_
	// prefix).
	Catalog configs.Catalog `envPrefix:"CATALOG_"`
}

// Load reads configuration from environment variables into a Config and
// validates it. Invalid settings are rejected here rather than at first
// use.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if cfg.DB.BatchSize <= 0 {
		return cfg, fmt.Errorf("DB_BATCH_SIZE %d: %w", cfg.DB.BatchSize, port.ErrInvalidBatchSize)
	}
	if cfg.Catalog.RefreshInterval <= 0 {
		return cfg, fmt.Errorf("CATALOG_REFRESH_INTERVAL must be positive")
	}
	return cfg, nil
}
