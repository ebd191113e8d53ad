// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for replkit hosts.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File locations, in order of precedence:
//   - path passed to LoadFromPath
//   - ~/.replkit/config.toml
//   - built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/morganforge/replkit/command"
	"github.com/morganforge/replkit/repl"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config represents the complete replkit host configuration.
type Config struct {
	// Prompt is the prompt string shown before each input line.
	Prompt string `toml:"prompt"`

	// TextWidth is the display width used when wrapping help output.
	// 0 means detect from the terminal, falling back to 80.
	TextWidth int `toml:"text_width"`

	// Predict enables unambiguous-prefix command resolution.
	Predict bool `toml:"predict"`

	// Strictness is the registration strictness: "loose" or "pedantic".
	Strictness string `toml:"strictness"`

	// OnInterrupt selects the prompt interrupt policy: "reprompt" or "exit".
	OnInterrupt string `toml:"on_interrupt"`

	// History configures input line persistence.
	History HistoryConfig `toml:"history"`

	// Color enables ANSI styling in the frontend.
	Color bool `toml:"color"`
}

// HistoryConfig configures the SQLite history store.
type HistoryConfig struct {
	// Enabled turns line persistence on.
	Enabled bool `toml:"enabled"`

	// Path is the database location (empty = ~/.replkit/history.db).
	Path string `toml:"path"`

	// MaxAgeDays prunes entries older than this on startup (0 = keep all).
	MaxAgeDays int `toml:"max_age_days"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Prompt:      "> ",
		TextWidth:   0,
		Predict:     true,
		Strictness:  "loose",
		OnInterrupt: "reprompt",
		History: HistoryConfig{
			Enabled: true,
		},
		Color: true,
	}
}

// =============================================================================
// LOADING
// =============================================================================

// ConfigPath returns the default config file location.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".replkit", "config.toml"), nil
}

// Load reads the default config file if it exists, applies environment
// overrides and validates. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath reads configuration from an explicit file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies REPLKIT_* environment variables over the
// loaded values. Environment always wins over file contents.
func (c *Config) ApplyEnvOverrides() {
	if prompt := os.Getenv("REPLKIT_PROMPT"); prompt != "" {
		c.Prompt = prompt
	}
	if width := os.Getenv("REPLKIT_WIDTH"); width != "" {
		if n, err := strconv.Atoi(width); err == nil {
			c.TextWidth = n
		}
	}
	if predict := os.Getenv("REPLKIT_PREDICT"); predict != "" {
		c.Predict = isTruthy(predict)
	}
	if strict := os.Getenv("REPLKIT_STRICTNESS"); strict != "" {
		c.Strictness = strict
	}
	if onInt := os.Getenv("REPLKIT_ON_INTERRUPT"); onInt != "" {
		c.OnInterrupt = onInt
	}
	if path := os.Getenv("REPLKIT_HISTORY"); path != "" {
		c.History.Path = path
	}
	if os.Getenv("REPLKIT_NO_HISTORY") != "" {
		c.History.Enabled = false
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Color = false
	}
}

// Validate checks enumerated fields and clamps numeric ones.
func (c *Config) Validate() error {
	switch c.Strictness {
	case "loose", "pedantic":
	default:
		return fmt.Errorf("strictness must be 'loose' or 'pedantic', got %q", c.Strictness)
	}
	switch c.OnInterrupt {
	case "reprompt", "exit":
	default:
		return fmt.Errorf("on_interrupt must be 'reprompt' or 'exit', got %q", c.OnInterrupt)
	}
	if c.TextWidth < 0 {
		c.TextWidth = 0
	}
	if c.History.MaxAgeDays < 0 {
		c.History.MaxAgeDays = 0
	}
	return nil
}

// =============================================================================
// MAPPING HELPERS
// =============================================================================

// StrictnessLevel maps the string field to the registry's enum.
func (c *Config) StrictnessLevel() command.Strictness {
	if c.Strictness == "pedantic" {
		return command.StrictnessPedantic
	}
	return command.StrictnessLoose
}

// InterruptPolicy maps the string field to the loop's enum.
func (c *Config) InterruptPolicy() repl.InterruptPolicy {
	if c.OnInterrupt == "exit" {
		return repl.InterruptExit
	}
	return repl.InterruptReprompt
}

// HistoryPath returns the effective history database path.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".replkit", "history.db"), nil
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
