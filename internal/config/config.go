// Package config loads crossbuild settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// Prefix is prepended to every environment variable name
const Prefix = "CROSSBUILD"

// Config holds settings read from CROSSBUILD_* environment variables.
// Command-line flags override them.
type Config struct {
	ProjectDir        string        `split_words:"true" default:"."`
	Recipe            string        `split_words:"true"`
	SigningPassphrase string        `split_words:"true"`
	CommandTimeout    time.Duration `split_words:"true" default:"0s"` // Zero waits for each command indefinitely
	// LogLevel also honours the unprefixed LOG_LEVEL
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// FromEnv reads the configuration from the environment
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", entities.ErrConfiguration, err)
	}
	if cfg.CommandTimeout < 0 {
		return Config{}, fmt.Errorf("%w: %s_COMMAND_TIMEOUT must not be negative", entities.ErrConfiguration, Prefix)
	}
	return cfg, nil
}
