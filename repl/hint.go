// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
package repl

import (
	"strings"

	"github.com/morganforge/replkit/command"
)

// =============================================================================
// HINT ENGINE
// =============================================================================

// Hinter produces the inline, non-editable suggestion a frontend renders
// past the cursor: the not-yet-supplied argument placeholders of the
// command the line resolves to. Pure and synchronous, like Completer.
type Hinter struct {
	reg *command.Registry
}

// NewHinter creates a hinter over the shared registry.
func NewHinter(reg *command.Registry) *Hinter {
	return &Hinter{reg: reg}
}

// Hint returns the remaining argument placeholders for the current line,
// joined for display, or "" when the first token does not resolve or all
// arguments are already supplied. Required arguments render as <name:hint>
// and optional ones as [name:hint]; arguments already typed (including the
// one under the cursor) are omitted.
func (h *Hinter) Hint(line string) string {
	toks, err := scan(line)
	if err != nil || len(toks) == 0 {
		return ""
	}

	cmd, rerr := h.reg.Resolve(toks[0].text)
	if rerr != nil {
		return ""
	}

	supplied := len(toks) - 1
	if supplied >= len(cmd.Args) {
		return ""
	}

	parts := make([]string, 0, len(cmd.Args)-supplied)
	for _, a := range cmd.Args[supplied:] {
		parts = append(parts, a.Placeholder())
	}
	return strings.Join(parts, " ")
}
