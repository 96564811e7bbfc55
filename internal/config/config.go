// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy"`
	Import   ImportConfig   `mapstructure:"import"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// TaxonomyConfig locates the persisted taxonomy and its optional seed.
type TaxonomyConfig struct {
	// Path of the JSON taxonomy written by the tracker.
	Path string `mapstructure:"path"`
	// SeedPath of a TOML file used to bootstrap the taxonomy when the
	// JSON file does not exist yet.
	SeedPath string `mapstructure:"seed_path"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// AutoCreate adds each row's category and sub-category to the
	// taxonomy before resolving the row.
	AutoCreate bool `mapstructure:"auto_create"`
}

// LoggingConfig holds diagnostics settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// EXPENSES_; the config file defaults to ~/.config/expenses-tracking/config.toml
// and may be overridden with EXPENSES_CONFIG.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("taxonomy.path", filepath.Join(home, ".local", "share", "expenses-tracking", "taxonomy.json"))
	v.SetDefault("taxonomy.seed_path", filepath.Join(home, ".config", "expenses-tracking", "taxonomy.toml"))
	v.SetDefault("import.auto_create", true)
	v.SetDefault("logging.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("EXPENSES_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "expenses-tracking"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("EXPENSES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
