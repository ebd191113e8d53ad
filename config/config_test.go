// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for replkit hosts.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/morganforge/replkit/command"
	"github.com/morganforge/replkit/repl"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Prompt != "> " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if !cfg.Predict {
		t.Error("Predict should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
	if cfg.StrictnessLevel() != command.StrictnessLoose {
		t.Error("default strictness should be loose")
	}
	if cfg.InterruptPolicy() != repl.InterruptReprompt {
		t.Error("default interrupt policy should be reprompt")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
prompt = "repl> "
text_width = 100
predict = false
strictness = "pedantic"
on_interrupt = "exit"
color = false

[history]
enabled = false
path = "/tmp/replkit-test.db"
max_age_days = 30
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Prompt != "repl> " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.TextWidth != 100 {
		t.Errorf("TextWidth = %d", cfg.TextWidth)
	}
	if cfg.Predict {
		t.Error("Predict should be false")
	}
	if cfg.StrictnessLevel() != command.StrictnessPedantic {
		t.Error("strictness not mapped to pedantic")
	}
	if cfg.InterruptPolicy() != repl.InterruptExit {
		t.Error("on_interrupt not mapped to exit")
	}
	if cfg.History.Enabled || cfg.History.MaxAgeDays != 30 {
		t.Errorf("history = %+v", cfg.History)
	}
}

func TestLoadFromPathPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`prompt = ">> "`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Prompt != ">> " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if !cfg.Predict || cfg.Strictness != "loose" {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestValidateRejectsBadEnums(t *testing.T) {
	cfg := Default()
	cfg.Strictness = "strict"
	if err := cfg.Validate(); err == nil {
		t.Error("bad strictness accepted")
	}

	cfg = Default()
	cfg.OnInterrupt = "panic"
	if err := cfg.Validate(); err == nil {
		t.Error("bad on_interrupt accepted")
	}
}

func TestValidateClampsNegatives(t *testing.T) {
	cfg := Default()
	cfg.TextWidth = -5
	cfg.History.MaxAgeDays = -1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.TextWidth != 0 || cfg.History.MaxAgeDays != 0 {
		t.Errorf("negatives not clamped: %+v", cfg)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("REPLKIT_PROMPT", "env> ")
	t.Setenv("REPLKIT_PREDICT", "no")
	t.Setenv("REPLKIT_WIDTH", "120")
	t.Setenv("REPLKIT_ON_INTERRUPT", "exit")
	t.Setenv("REPLKIT_HISTORY", "/tmp/env-history.db")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Prompt != "env> " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.Predict {
		t.Error("REPLKIT_PREDICT=no not applied")
	}
	if cfg.TextWidth != 120 {
		t.Errorf("TextWidth = %d", cfg.TextWidth)
	}
	if cfg.OnInterrupt != "exit" {
		t.Errorf("OnInterrupt = %q", cfg.OnInterrupt)
	}
	if cfg.History.Path != "/tmp/env-history.db" {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
}

func TestNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Color {
		t.Error("NO_COLOR not honored")
	}
}

func TestHistoryPathExplicit(t *testing.T) {
	cfg := Default()
	cfg.History.Path = "/tmp/x.db"
	path, err := cfg.HistoryPath()
	if err != nil || path != "/tmp/x.db" {
		t.Errorf("HistoryPath() = %q, %v", path, err)
	}
}
