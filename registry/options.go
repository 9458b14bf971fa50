package registry

import (
	"io"
	"log"
)

// Config holds Registry settings.
type Config struct {
	Logger *log.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a config that discards log output.
func DefaultConfig() Config {
	return Config{Logger: log.New(io.Discard, "", 0)}
}

// WithLogger routes fetch diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
