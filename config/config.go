// Package config loads the spectrans command configuration from a YAML or
// JSON file and SPECTRANS_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/spectral-transmission/engine"
	"github.com/cwbudde/spectral-transmission/source"
)

// ErrUnknownDriver is returned by Validate for an unsupported source driver.
var ErrUnknownDriver = errors.New("config: unknown source driver")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SPECTRANS_"

// Config is the command configuration.
type Config struct {
	Source  SourceConfig `yaml:"source" json:"source"`
	TopDyes int          `yaml:"top_dyes" json:"top_dyes"`
	Watch   bool         `yaml:"watch" json:"watch"`
}

// SourceConfig selects where spectra are read from.
type SourceConfig struct {
	Driver string          `yaml:"driver" json:"driver"`
	Dir    string          `yaml:"dir" json:"dir"`
	URL    string          `yaml:"url" json:"url"`
	S3     source.S3Config `yaml:"s3" json:"s3"`
	SQLite SQLiteConfig    `yaml:"sqlite" json:"sqlite"`
}

// SQLiteConfig locates a SQLite spectra catalogue.
type SQLiteConfig struct {
	Path string `yaml:"path" json:"path"`
}

// Default returns the configuration used when no file is given: spectra
// from the current directory, top three dyes.
func Default() Config {
	return Config{
		Source:  SourceConfig{Driver: source.DriverDir, Dir: "."},
		TopDyes: engine.NumTopDyes,
	}
}

// Load reads path on top of the defaults. Files ending in .json are JSON;
// anything else is YAML.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing yaml: %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SPECTRANS_* variables looked up with
// lookup (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("SOURCE_DRIVER", &c.Source.Driver)
	str("DIR", &c.Source.Dir)
	str("URL", &c.Source.URL)
	str("S3_BUCKET", &c.Source.S3.Bucket)
	str("S3_REGION", &c.Source.S3.Region)
	str("S3_ENDPOINT", &c.Source.S3.Endpoint)
	str("S3_PREFIX", &c.Source.S3.Prefix)
	str("SQLITE_PATH", &c.Source.SQLite.Path)

	if v, ok := lookup(EnvPrefix + "S3_PATH_STYLE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sS3_PATH_STYLE: %w", EnvPrefix, err)
		}
		c.Source.S3.PathStyle = b
	}
	if v, ok := lookup(EnvPrefix + "TOP_DYES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sTOP_DYES: %w", EnvPrefix, err)
		}
		c.TopDyes = n
	}
	if v, ok := lookup(EnvPrefix + "WATCH"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sWATCH: %w", EnvPrefix, err)
		}
		c.Watch = b
	}
	return nil
}

// Validate checks the driver and the settings it needs.
func (c Config) Validate() error {
	switch c.Source.Driver {
	case "", source.DriverDir:
	case source.DriverHTTP:
		if c.Source.URL == "" {
			return errors.New("config: source.url required for http driver")
		}
	case source.DriverS3:
		if c.Source.S3.Bucket == "" {
			return errors.New("config: source.s3.bucket required for s3 driver")
		}
	case source.DriverSQLite:
		if c.Source.SQLite.Path == "" {
			return errors.New("config: source.sqlite.path required for sqlite driver")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Source.Driver)
	}
	if c.TopDyes < 0 {
		return fmt.Errorf("config: top_dyes must not be negative, got %d", c.TopDyes)
	}
	if c.Watch && c.Source.Driver != "" && c.Source.Driver != source.DriverDir {
		return fmt.Errorf("config: watch needs the dir driver, got %q", c.Source.Driver)
	}
	return nil
}

// SourceConfig converts the source section for [source.Open].
func (c Config) SourceConfig() source.Config {
	return source.Config{
		Driver: c.Source.Driver,
		Dir:    c.Source.Dir,
		URL:    c.Source.URL,
		S3:     c.Source.S3,
		SQLite: c.Source.SQLite.Path,
	}
}
