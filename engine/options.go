package engine

import (
	"io"
	"log"
)

// NumTopDyes is the default length of each dye ranking.
const NumTopDyes = 3

// Config holds Session settings.
type Config struct {
	Logger *log.Logger
	TopN   int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a silent config ranking the top NumTopDyes dyes.
func DefaultConfig() Config {
	return Config{
		Logger: log.New(io.Discard, "", 0),
		TopN:   NumTopDyes,
	}
}

// WithLogger routes diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithTopN sets how many dyes each ranking keeps.
func WithTopN(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.TopN = n
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
