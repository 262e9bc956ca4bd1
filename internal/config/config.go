package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a parallax invocation.
// Values are populated from .parallax.yaml, PARALLAX_* env vars, and CLI flags.
type Config struct {
	Format          string `mapstructure:"format"`
	CatalogDB       string `mapstructure:"catalog_db"`
	TelemetryPath   string `mapstructure:"telemetry_path"`
	WatchDebounceMS int    `mapstructure:"watch_debounce_ms"`
	MaxListed       int    `mapstructure:"max_listed"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("format", "text")
	viper.SetDefault("catalog_db", ".parallax/catalog.db")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("watch_debounce_ms", 250)
	viper.SetDefault("max_listed", 20)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}
