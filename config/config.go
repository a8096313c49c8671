// Package config loads snooze settings. Values come from built-in defaults,
// then ~/.snooze/config.yaml, then a .env file and the process environment,
// each layer overriding the one before it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// SessionConfig selects where the login session is kept.
type SessionConfig struct {
	Type string `yaml:"type" env:"TYPE" validate:"oneof=sqlite file memory"`
	DSN  string `yaml:"dsn"  env:"DSN"`
}

// Config holds every setting the CLI and stub server use.
type Config struct {
	BaseURL  string        `yaml:"base_url"  env:"SNOOZE_BASE_URL"  validate:"required,url"`
	PageSize int           `yaml:"page_size" env:"SNOOZE_PAGE_SIZE" validate:"min=1,max=100"`
	Timeout  time.Duration `yaml:"timeout"   env:"SNOOZE_TIMEOUT"   validate:"min=0"`
	LogLevel string        `yaml:"log_level" env:"SNOOZE_LOG_LEVEL" validate:"oneof=debug info warn error"`
	StubAddr string        `yaml:"stub_addr" env:"SNOOZE_STUB_ADDR" validate:"hostname_port"`
	Session  SessionConfig `yaml:"session"   envPrefix:"SNOOZE_SESSION_"`
}

// Dir returns ~/.snooze, where the config file and session live.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".snooze"), nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BaseURL:  "https://hack-or-snooze-v3.herokuapp.com",
		PageSize: 25,
		Timeout:  10 * time.Second,
		LogLevel: "warn",
		StubAddr: "localhost:5000",
		Session: SessionConfig{
			Type: "sqlite",
			DSN:  "~/.snooze/session.db",
		},
	}
}

// Load builds the configuration from every source and validates it.
func Load() (*Config, error) {
	cfg := Default()

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	if err := LoadConfigFile(filepath.Join(dir, "config.yaml"), cfg); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Session.DSN, err = expandHome(cfg.Session.DSN)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any SNOOZE_* variables that are set. Unset
// variables leave the current values alone.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, rest), nil
}
