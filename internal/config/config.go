// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and saving for Zenith Note.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/praburajasekaran/zenith-note/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete Zenith configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	UI        UIConfig        `toml:"ui"`
	Log       LogConfig       `toml:"log"`
	DevServer DevServerConfig `toml:"devserver"`
}

// ServerConfig locates the assistant backend.
type ServerConfig struct {
	// URL is the origin serving /api/chat/{session}/...
	URL string `toml:"url"`
	// Model is sent with every chat request; empty lets the backend choose.
	Model string `toml:"model"`
	// TimeoutSecs bounds non-streaming requests. Streams are bounded by context only.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains display preferences.
type UIConfig struct {
	// Theme is "dark", "light" or "auto" (ask the terminal).
	Theme string `toml:"theme"`
	// MaxInputLines caps how far the input box grows.
	MaxInputLines int `toml:"max_input_lines"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Level   string `toml:"level"`
}

// DevServerConfig configures the local development backend.
type DevServerConfig struct {
	Addr         string  `toml:"addr"`
	DatabasePath string  `toml:"database_path"`
	RatePerSec   float64 `toml:"rate_per_sec"`
	Burst        int     `toml:"burst"`
	ChunkDelayMs int     `toml:"chunk_delay_ms"`
}

// Timeout returns the request timeout as a duration.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// ChunkDelay returns the delay between streamed words.
func (d DevServerConfig) ChunkDelay() time.Duration {
	return time.Duration(d.ChunkDelayMs) * time.Millisecond
}

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeAuto  = "auto"
)

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	dir, err := Dir()
	if err != nil {
		dir = os.TempDir()
	}
	return &Config{
		Server: ServerConfig{
			URL:         "http://127.0.0.1:8787",
			TimeoutSecs: 30,
		},
		UI: UIConfig{
			Theme:         ThemeAuto,
			MaxInputLines: 8,
		},
		Log: LogConfig{
			Enabled: true,
			Path:    filepath.Join(dir, "zenith.log"),
			Level:   "info",
		},
		DevServer: DevServerConfig{
			Addr:         "127.0.0.1:8787",
			DatabasePath: filepath.Join(dir, "devserver.sqlite"),
			RatePerSec:   2,
			Burst:        5,
			ChunkDelayMs: 40,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the configuration directory: $ZENITH_HOME or ~/.zenith.
func Dir() (string, error) {
	if home := os.Getenv("ZENITH_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".zenith"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the configuration at path (the default path when empty),
// applies .env and environment overrides and validates the result.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile reads only the file at path over the defaults. Neither .env nor
// the environment is consulted, so the result is what is on disk.
func LoadFile(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ThemeFromEnv reports whether ZENITH_THEME overrides the file's theme.
// Call it after Load, which brings .env values into the environment.
func ThemeFromEnv() bool {
	return os.Getenv("ZENITH_THEME") != ""
}

// decodeFile layers the file at path over the defaults.
func decodeFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	return cfg, nil
}

// Update applies fn to the file at path and saves it. Environment
// overrides are not applied, so they never end up persisted.
func Update(path string, fn func(*Config)) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := decodeFile(path)
	if err != nil {
		return err
	}
	fn(cfg)
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return Save(cfg, path)
}

// Save writes cfg to path (the default path when empty) atomically with
// owner-only permissions.
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# Zenith Note configuration file")
	fmt.Fprintln(&buf, "")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies ZENITH_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ZENITH_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("ZENITH_MODEL"); v != "" {
		c.Server.Model = v
	}
	if v := os.Getenv("ZENITH_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.TimeoutSecs = n
		}
	}
	if v := os.Getenv("ZENITH_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("ZENITH_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("ZENITH_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("ZENITH_LOG"); v != "" {
		c.Log.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("ZENITH_DEVSERVER_ADDR"); v != "" {
		c.DevServer.Addr = v
	}
}

// SetDefaults fills zero values that have no meaningful zero.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = d.Server.TimeoutSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.MaxInputLines <= 0 {
		c.UI.MaxInputLines = d.UI.MaxInputLines
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Path == "" {
		c.Log.Path = d.Log.Path
	}
	if c.DevServer.Addr == "" {
		c.DevServer.Addr = d.DevServer.Addr
	}
	if c.DevServer.DatabasePath == "" {
		c.DevServer.DatabasePath = d.DevServer.DatabasePath
	}
	if c.DevServer.RatePerSec <= 0 {
		c.DevServer.RatePerSec = d.DevServer.RatePerSec
	}
	if c.DevServer.Burst <= 0 {
		c.DevServer.Burst = d.DevServer.Burst
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "server.url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.Server.URL),
		})
	}

	switch c.UI.Theme {
	case ThemeDark, ThemeLight, ThemeAuto:
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if c.DevServer.ChunkDelayMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "devserver.chunk_delay_ms",
			Message: "must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
