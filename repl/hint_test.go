// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
package repl

import (
	"context"
	"testing"

	"github.com/morganforge/replkit/command"
)

func hintRegistry(t *testing.T) *command.Registry {
	t.Helper()
	nop := command.HandlerFunc(func(ctx context.Context, args []string) (command.Result, error) {
		return command.Result{}, nil
	})

	reg := command.NewRegistry()
	reg.MustRegister(&command.Command{
		Name: "greet",
		Args: []command.ArgDef{
			{Name: "name", Required: true, Hint: "string"},
			{Name: "greeting", Required: false},
		},
		Handler: nop,
	})
	reg.MustRegister(&command.Command{Name: "move", Handler: nop})
	reg.MustRegister(&command.Command{Name: "make", Handler: nop})
	return reg
}

func TestHint(t *testing.T) {
	h := NewHinter(hintRegistry(t))

	tests := []struct {
		line string
		want string
	}{
		// Full name and unambiguous prefix both resolve.
		{"greet", "<name:string> [greeting]"},
		{"gr", "<name:string> [greeting]"},
		{"greet ", "<name:string> [greeting]"},
		// The argument being typed is omitted from the hint.
		{"greet bob", "[greeting]"},
		{"greet bob ", "[greeting]"},
		// Everything supplied.
		{"greet bob hi", ""},
		{"greet bob hi extra", ""},
		// Unknown or ambiguous first token gives no hint.
		{"zz", ""},
		{"m", ""},
		// Blank line.
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range tests {
		if got := h.Hint(tc.line); got != tc.want {
			t.Errorf("Hint(%q) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestHintCommandWithNoArgs(t *testing.T) {
	h := NewHinter(hintRegistry(t))
	if got := h.Hint("move"); got != "" {
		t.Errorf("Hint(move) = %q, want empty", got)
	}
}

func TestHintUnterminatedQuote(t *testing.T) {
	h := NewHinter(hintRegistry(t))
	if got := h.Hint(`greet "bo`); got != "" {
		t.Errorf("Hint = %q, want empty on malformed line", got)
	}
}
