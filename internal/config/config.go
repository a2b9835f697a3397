// SPDX-License-Identifier: MIT

// Package config loads matcalc settings in three layers: built-in
// defaults, an optional TOML file, then MATCALC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment override, e.g.
// MATCALC_LIMITS_MAX_DIM=6.
const EnvPrefix = "MATCALC"

// Output formats understood by the CLI.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatPlain = "plain"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server" envconfig:"SERVER"`
	Log       LogConfig       `toml:"log" envconfig:"LOG"`
	Limits    LimitsConfig    `toml:"limits" envconfig:"LIMITS"`
	Output    OutputConfig    `toml:"output" envconfig:"OUTPUT"`
	RateLimit RateLimitConfig `toml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string   `toml:"host" envconfig:"HOST"`
	Port           int      `toml:"port" envconfig:"PORT"`
	ReadTimeout    Duration `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout   Duration `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	AllowedOrigins []string `toml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `toml:"level" envconfig:"LEVEL"`
	Development bool   `toml:"development" envconfig:"DEV"`
}

// LimitsConfig bounds the operands the calculator accepts.
type LimitsConfig struct {
	MaxDim int `toml:"max_dim" envconfig:"MAX_DIM"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	Format    string `toml:"format" envconfig:"FORMAT"`
	Precision int    `toml:"precision" envconfig:"PRECISION"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second" envconfig:"RPS"`
	Burst             int     `toml:"burst" envconfig:"BURST"`
	Enabled           bool    `toml:"enabled" envconfig:"ENABLED"`
}

// Duration wraps time.Duration so it reads from "30s"-style strings in
// both TOML and the environment.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ReadTimeout:    Duration{10 * time.Second},
			WriteTimeout:   Duration{10 * time.Second},
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level:       "info",
			Development: false,
		},
		Limits: LimitsConfig{
			MaxDim: 10,
		},
		Output: OutputConfig{
			Format:    FormatTable,
			Precision: 4,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
	}
}

// Load layers defaults, the TOML file and the environment. It does not
// validate: callers apply their own overrides, then call Validate.
//
// An empty path skips the file layer; a non-empty path must exist.
// Keys missing from the file keep their defaults, and environment
// variables win over both.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		path = os.ExpandEnv(path)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	return cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	if c.Limits.MaxDim < 1 {
		return fmt.Errorf("limits.max_dim=%d must be >= 1: %w", c.Limits.MaxDim, ErrInvalid)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 15 {
		return fmt.Errorf("output.precision=%d must be in [0,15]: %w", c.Output.Precision, ErrInvalid)
	}
	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatYAML, FormatPlain:
	default:
		return fmt.Errorf("output.format=%q unknown: %w", c.Output.Format, ErrInvalid)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port=%d out of range: %w", c.Server.Port, ErrInvalid)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate_limit needs rps > 0 and burst >= 1: %w", ErrInvalid)
	}

	return nil
}
