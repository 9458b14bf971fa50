package source

import (
	"context"
	"errors"
	"fmt"
)

// Drivers accepted by [Open].
const (
	DriverDir    = "dir"
	DriverHTTP   = "http"
	DriverS3     = "s3"
	DriverSQLite = "sqlite"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("source: unknown driver")

// Config selects and configures a Source.
type Config struct {
	Driver string   `yaml:"driver" json:"driver"`
	Dir    string   `yaml:"dir" json:"dir"`
	URL    string   `yaml:"url" json:"url"`
	S3     S3Config `yaml:"s3" json:"s3"`
	SQLite string   `yaml:"sqlite" json:"sqlite"`
}

// Open builds the Source selected by cfg.Driver (default "dir").
func Open(ctx context.Context, cfg Config) (Source, error) {
	switch cfg.Driver {
	case "", DriverDir:
		return NewDir(cfg.Dir)
	case DriverHTTP:
		return NewHTTP(cfg.URL, nil)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverSQLite:
		return OpenSQLite(cfg.SQLite)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}
