// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds server and CLI settings.
type Config struct {
	HTTPAddr         string        `env:"REVOPS_HTTP_ADDR" envDefault:":8080"`
	LogLevel         string        `env:"REVOPS_LOG_LEVEL" envDefault:"info"`
	CacheSize        int           `env:"REVOPS_CACHE_SIZE" envDefault:"256"`
	WorkingDays      float64       `env:"REVOPS_WORKING_DAYS" envDefault:"22"`
	BumpPct          float64       `env:"REVOPS_BUMP_PCT" envDefault:"10"`
	MetricsNamespace string        `env:"REVOPS_METRICS_NAMESPACE" envDefault:"revops"`
	CORSOrigins      []string      `env:"REVOPS_CORS_ORIGINS" envDefault:"*" envSeparator:","`
	ShutdownTimeout  time.Duration `env:"REVOPS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file from envFile (skipped when empty or
// missing), then parses the environment. Variables already set win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.CacheSize < 0 {
		return fmt.Errorf("REVOPS_CACHE_SIZE must be >= 0, got %d", c.CacheSize)
	}
	if c.WorkingDays <= 0 {
		return fmt.Errorf("REVOPS_WORKING_DAYS must be > 0, got %g", c.WorkingDays)
	}
	if c.BumpPct <= 0 {
		return fmt.Errorf("REVOPS_BUMP_PCT must be > 0, got %g", c.BumpPct)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c Config) Level() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLevel converts debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}
