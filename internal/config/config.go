// Package config loads animset settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Output formats accepted by Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds settings shared by every animset command. CLI flags
// override these values.
type Config struct {
	DBPath      string `env:"ANIMSET_DB"       envDefault:"animset.db"`
	CatalogPath string `env:"ANIMSET_CATALOG"`
	Format      string `env:"ANIMSET_FORMAT"   envDefault:"text"`
	Compress    bool   `env:"ANIMSET_COMPRESS" envDefault:"false"`
}

// Default returns the configuration used when the environment sets nothing.
func Default() Config {
	return Config{DBPath: "animset.db", Format: FormatText}
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration, validated.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that env parsing cannot.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid format %q: must be %q or %q", c.Format, FormatText, FormatJSON)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}
