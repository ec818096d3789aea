package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads and decodes the config file. Failures here are fatal to
// startup, so errors carry the offending path and position detail.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, formatDecodeError(path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func formatDecodeError(path string, err error) error {
	var parseErr toml.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("parse config file %s: %s", path, parseErr.ErrorWithPosition())
	}
	return fmt.Errorf("parse config file %s: %w", path, err)
}

// EffectiveLogLevel resolves the log level, letting the environment
// override the file.
func (c Config) EffectiveLogLevel() string {
	if env := os.Getenv(EnvLogLevel); env != "" {
		return env
	}
	return c.LogLevel
}
