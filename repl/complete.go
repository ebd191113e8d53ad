// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
package repl

import (
	"github.com/morganforge/replkit/command"
)

// =============================================================================
// COMPLETION ENGINE
// =============================================================================

// Candidate is one possible completion for the current partial token.
// Replacement substitutes the [Start, End) byte span of the line.
type Candidate struct {
	Replacement string
	Start       int
	End         int
}

// Completer answers completion queries from a line-editing frontend.
// Complete is pure and synchronous: it runs inline in the frontend's
// keystroke path and must return before the next keystroke.
type Completer struct {
	reg *command.Registry
}

// NewCompleter creates a completer over the shared registry.
func NewCompleter(reg *command.Registry) *Completer {
	return &Completer{reg: reg}
}

// Complete returns the candidates for the given line and cursor position.
// In the command-name position it offers every registered name and alias
// matching the partial token, sorted lexicographically. In an argument
// position it delegates to the command's ArgCompleter, if it has one.
func (c *Completer) Complete(line string, cursor int) []Candidate {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(line) {
		cursor = len(line)
	}
	prefix := line[:cursor]

	// A mid-quote scan error is fine here: the open token still completes.
	toks, _ := scan(prefix)

	if len(toks) == 0 {
		return c.commandCandidates("", cursor, cursor)
	}

	// inProgress is true when the cursor sits inside the last token rather
	// than in trailing whitespace after it.
	last := toks[len(toks)-1]
	inProgress := last.end == len(prefix)

	if len(toks) == 1 && inProgress {
		return c.commandCandidates(last.text, last.start, cursor)
	}

	cmd, err := c.reg.Resolve(toks[0].text)
	if err != nil {
		return nil
	}
	ac, ok := cmd.Handler.(command.ArgCompleter)
	if !ok {
		return nil
	}

	argIndex := len(toks) - 1
	partial := ""
	start := cursor
	if inProgress {
		argIndex = len(toks) - 2
		partial = last.text
		start = last.start
	}

	var out []Candidate
	for _, value := range ac.CompleteArg(argIndex, partial) {
		out = append(out, Candidate{Replacement: value, Start: start, End: cursor})
	}
	return out
}

func (c *Completer) commandCandidates(partial string, start, end int) []Candidate {
	var out []Candidate
	for _, name := range c.reg.PrefixMatches(partial) {
		out = append(out, Candidate{Replacement: name, Start: start, End: end})
	}
	return out
}
