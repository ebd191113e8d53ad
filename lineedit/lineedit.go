// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lineedit provides a terminal line-editing frontend for replkit.
//
// It wraps peterh/liner: arrow-key history navigation, Ctrl-C abort and
// Tab completion driven by the engine's completer. It implements
// repl.Frontend, so a host passes an Editor straight to repl.NewLoop.
package lineedit

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/morganforge/replkit/history"
	"github.com/morganforge/replkit/internal/util"
	"github.com/morganforge/replkit/repl"
)

// =============================================================================
// EDITOR
// =============================================================================

// Editor is a liner-backed Frontend. Not safe for concurrent ReadLine
// calls; the dispatch loop is its only reader.
type Editor struct {
	line   *liner.State
	prompt string
	store  *history.Store

	// errw receives warnings, kept off stdout so redirected session
	// output stays coherent.
	errw io.Writer
}

// New creates an Editor with the given prompt. Close must be called to
// restore the terminal.
func New(prompt string) *Editor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &Editor{line: line, prompt: prompt, errw: os.Stderr}
}

// SetPrompt changes the prompt for subsequent reads.
func (e *Editor) SetPrompt(prompt string) {
	e.prompt = prompt
}

// AttachCompleter wires Tab completion to the engine's completer.
func (e *Editor) AttachCompleter(c *repl.Completer) {
	e.line.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		return CompleteWord(c, line, pos)
	})
	e.line.SetTabCompletionStyle(liner.TabCircular)
}

// AttachHistory replays stored lines into the editor's recall buffer and
// records every subsequent non-blank read.
func (e *Editor) AttachHistory(ctx context.Context, store *history.Store, replay int) error {
	entries, err := store.Recent(ctx, replay)
	if err != nil {
		return err
	}
	// Recent is newest first; liner wants oldest first.
	for i := len(entries) - 1; i >= 0; i-- {
		e.line.AppendHistory(entries[i].Line)
	}
	e.store = store
	return nil
}

// ReadLine reads one line. Ctrl-C surfaces as repl.ErrInterrupted and
// Ctrl-D as io.EOF, which the loop maps to its interrupt policy and a
// clean shutdown respectively.
func (e *Editor) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	input, err := e.line.Prompt(e.prompt)
	if err != nil {
		switch err {
		case liner.ErrPromptAborted:
			return "", repl.ErrInterrupted
		case io.EOF:
			return "", io.EOF
		default:
			return "", err
		}
	}

	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
		e.recordHistory(ctx, input)
	}
	return input, nil
}

// recordHistory persists one line to the attached store. Failures warn
// on stderr and never break the session.
func (e *Editor) recordHistory(ctx context.Context, input string) {
	if e.store == nil {
		return
	}
	if err := e.store.Append(ctx, input); err != nil {
		fmt.Fprintln(e.errw, "warning: history not recorded:", err)
	}
}

// Write prints loop output to stdout.
func (e *Editor) Write(s string) {
	fmt.Print(s)
}

// Close restores the terminal state.
func (e *Editor) Close() error {
	return e.line.Close()
}

// =============================================================================
// COMPLETION BRIDGE
// =============================================================================

// CompleteWord adapts the engine's byte-offset candidates to liner's
// word completer contract. liner hands us a rune position and expects
// the line split around the word under the cursor.
func CompleteWord(c *repl.Completer, line string, pos int) (head string, completions []string, tail string) {
	cursor := util.ByteOffset(line, pos)
	cands := c.Complete(line, cursor)
	if len(cands) == 0 {
		return line[:cursor], nil, line[cursor:]
	}

	// Every candidate replaces the same span.
	start := cands[0].Start
	end := cands[0].End
	for _, cand := range cands {
		completions = append(completions, cand.Replacement)
	}
	return line[:start], completions, line[end:]
}
