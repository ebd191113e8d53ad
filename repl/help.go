// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
package repl

import (
	"strings"

	"github.com/morganforge/replkit/command"
	"github.com/morganforge/replkit/internal/util"
)

// =============================================================================
// HELP RENDERING
// =============================================================================

// HelpText renders a two-column listing of every visible command in
// registration order: the signature left-aligned, the summary wrapped to
// the given display width with continuation lines indented under it.
// A width of 0 defaults to 80 columns.
func HelpText(reg *command.Registry, width int) string {
	if width <= 0 {
		width = 80
	}

	type entry struct {
		sig     string
		summary string
	}
	var entries []entry
	col := 0
	for _, cmd := range reg.List() {
		if cmd.Hidden {
			continue
		}
		sig := cmd.Signature()
		if len(cmd.Aliases) > 0 {
			sig += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		if w := util.Width(sig); w > col {
			col = w
		}
		entries = append(entries, entry{sig: sig, summary: cmd.Summary})
	}
	if len(entries) == 0 {
		return "no commands registered"
	}

	summaryWidth := width - col - 4
	if summaryWidth < 16 {
		summaryWidth = 16
	}

	var b strings.Builder
	b.WriteString("Available commands:\n")
	indent := strings.Repeat(" ", col+4)
	for _, e := range entries {
		wrapped := util.Wrap(e.summary, summaryWidth)
		b.WriteString("  " + util.PadRight(e.sig, col) + "  " + wrapped[0] + "\n")
		for _, cont := range wrapped[1:] {
			b.WriteString(indent + cont + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// UsageText renders the one-line usage string for a command.
func UsageText(cmd *command.Command) string {
	return "usage: " + cmd.Signature()
}
