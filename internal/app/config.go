package app

import (
	"errors"
	"fmt"
	"log/slog"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	EntryPath string // entry manifest, absolute or relative to the working directory

	LogFormat string
	LogLevel  string
	// Level is LogLevel parsed by NewConfig.
	Level slog.Level

	// Environ is the base environment handed to entry modules, in
	// "KEY=value" form. Nil means the process environment.
	Environ []string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.EntryPath == "" {
		return nil, errors.New("EntryPath is a required configuration field and cannot be empty")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if err := cfg.Level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	return &cfg, nil
}
