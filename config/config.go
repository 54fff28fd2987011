// SPDX-License-Identifier: MIT

// Package config loads decaychain settings from a TOML file with
// DECAYCHAIN_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/decaychain/numeric"
	"github.com/katalvlaran/decaychain/store"
)

// EnvConfigPath names the variable holding the config file path.
const EnvConfigPath = "DECAYCHAIN_CONFIG"

// Defaults.
const (
	DefaultFSRoot             = "./decaydata"
	DefaultSignificantFigures = 15
	DefaultAddr               = ":8089"
	DefaultReadTimeout        = 10 * time.Second
	DefaultWriteTimeout       = 60 * time.Second
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete decaychain configuration.
type Config struct {
	Store   StoreConfig   `toml:"store"`
	Dataset DatasetConfig `toml:"dataset"`
	Engine  EngineConfig  `toml:"engine"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// StoreConfig selects the dataset store backend.
type StoreConfig struct {
	Driver            string `toml:"driver" env:"DECAYCHAIN_STORE_DRIVER"`
	FSRoot            string `toml:"fs_root" env:"DECAYCHAIN_FS_ROOT"`
	S3Bucket          string `toml:"s3_bucket" env:"DECAYCHAIN_S3_BUCKET"`
	S3Region          string `toml:"s3_region" env:"DECAYCHAIN_S3_REGION"`
	S3Endpoint        string `toml:"s3_endpoint" env:"DECAYCHAIN_S3_ENDPOINT"`
	S3PathStyle       bool   `toml:"s3_path_style" env:"DECAYCHAIN_S3_PATH_STYLE"`
	S3AccessKeyID     string `toml:"s3_access_key_id" env:"DECAYCHAIN_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `toml:"s3_secret_access_key" env:"DECAYCHAIN_S3_SECRET_ACCESS_KEY"`
	SQLDriver         string `toml:"sql_driver" env:"DECAYCHAIN_SQL_DRIVER"`
	SQLDSN            string `toml:"sql_dsn" env:"DECAYCHAIN_SQL_DSN"`
}

// DatasetConfig names the dataset commands operate on.
type DatasetConfig struct {
	Name      string `toml:"name" env:"DECAYCHAIN_DATASET"`
	SkipExact bool   `toml:"skip_exact" env:"DECAYCHAIN_SKIP_EXACT"`
}

// EngineConfig tunes evolution.
type EngineConfig struct {
	Workers            int `toml:"workers" env:"DECAYCHAIN_WORKERS"`
	SignificantFigures int `toml:"significant_figures" env:"DECAYCHAIN_SIGNIFICANT_FIGURES"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr         string   `toml:"addr" env:"DECAYCHAIN_ADDR"`
	ReadTimeout  Duration `toml:"read_timeout" env:"DECAYCHAIN_READ_TIMEOUT"`
	WriteTimeout Duration `toml:"write_timeout" env:"DECAYCHAIN_WRITE_TIMEOUT"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Verbose bool `toml:"verbose" env:"DECAYCHAIN_VERBOSE"`
}

// Duration is a time.Duration read from text such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))

	return err
}

// MarshalText renders the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Store:  StoreConfig{Driver: string(store.DriverFilesystem), FSRoot: DefaultFSRoot, SQLDriver: store.SQLDriverSQLite},
		Engine: EngineConfig{Workers: 1, SignificantFigures: DefaultSignificantFigures},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  Duration{DefaultReadTimeout},
			WriteTimeout: Duration{DefaultWriteTimeout},
		},
	}
}

// Load builds the configuration in three layers: defaults, the TOML file at
// path (skipped when path is empty or the file does not exist), then
// DECAYCHAIN_* environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		path = os.ExpandEnv(path)
		if _, err := os.Stat(path); err == nil {
			if _, err = toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch store.Driver(c.Store.Driver) {
	case store.DriverFilesystem, store.DriverMemory:
	case store.DriverS3:
		if c.Store.S3Bucket == "" {
			return fmt.Errorf("%w: s3 driver needs s3_bucket", ErrInvalidConfig)
		}
	case store.DriverSQL:
		if c.Store.SQLDriver != store.SQLDriverSQLite && c.Store.SQLDriver != store.SQLDriverPostgres {
			return fmt.Errorf("%w: sql_driver %q", ErrInvalidConfig, c.Store.SQLDriver)
		}
		if c.Store.SQLDSN == "" {
			return fmt.Errorf("%w: sql driver needs sql_dsn", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	if c.Engine.Workers < 1 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Engine.Workers)
	}
	if err := numeric.ValidateSignificantFigures(c.Engine.SignificantFigures); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: empty server addr", ErrInvalidConfig)
	}

	return nil
}

// Backend maps the store section onto store.Config.
func (c *Config) Backend() store.Config {
	return store.Config{
		Driver: store.Driver(c.Store.Driver),
		FSRoot: c.Store.FSRoot,
		S3: store.S3Config{
			Bucket:          c.Store.S3Bucket,
			Region:          c.Store.S3Region,
			Endpoint:        c.Store.S3Endpoint,
			PathStyle:       c.Store.S3PathStyle,
			AccessKeyID:     c.Store.S3AccessKeyID,
			SecretAccessKey: c.Store.S3SecretAccessKey,
		},
		SQLDriver: c.Store.SQLDriver,
		SQLDSN:    c.Store.SQLDSN,
	}
}
