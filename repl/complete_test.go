// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
package repl

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/morganforge/replkit/command"
)

// listHandler completes its first argument from a fixed value list.
type listHandler struct {
	values []string
}

func (h *listHandler) Invoke(ctx context.Context, args []string) (command.Result, error) {
	return command.Result{}, nil
}

func (h *listHandler) CompleteArg(index int, partial string) []string {
	if index != 0 {
		return nil
	}
	var out []string
	for _, v := range h.values {
		if strings.HasPrefix(v, partial) {
			out = append(out, v)
		}
	}
	return out
}

func completionRegistry(t *testing.T) *command.Registry {
	t.Helper()
	reg := command.NewRegistry()
	reg.MustRegister(&command.Command{
		Name:    "echo",
		Args:    []command.ArgDef{{Name: "word", Required: true}},
		Handler: &listHandler{values: []string{"alpha", "beta"}},
	})
	reg.MustRegister(&command.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Handler: command.HandlerFunc(func(ctx context.Context, args []string) (command.Result, error) {
			return command.Result{}, nil
		}),
	})
	reg.MustRegister(&command.Command{
		Name: "history",
		Args: []command.ArgDef{{Name: "n", Required: false, Hint: "int"}},
		Handler: command.HandlerFunc(func(ctx context.Context, args []string) (command.Result, error) {
			return command.Result{}, nil
		}),
	})
	return reg
}

func replacements(cands []Candidate) []string {
	var out []string
	for _, c := range cands {
		out = append(out, c.Replacement)
	}
	return out
}

// =============================================================================
// COMMAND-NAME COMPLETION
// =============================================================================

func TestCompleteCommandNames(t *testing.T) {
	c := NewCompleter(completionRegistry(t))

	tests := []struct {
		line   string
		cursor int
		want   []string
	}{
		{"he", 2, []string{"help", "history"}},
		{"h", 1, []string{"h", "help", "history"}},
		{"help", 4, []string{"help"}},
		{"e", 1, []string{"echo"}},
		{"zz", 2, nil},
	}

	for _, tc := range tests {
		got := replacements(c.Complete(tc.line, tc.cursor))
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Complete(%q, %d) = %v, want %v", tc.line, tc.cursor, got, tc.want)
		}
	}
}

func TestCompleteSpanCoversPartialToken(t *testing.T) {
	c := NewCompleter(completionRegistry(t))

	cands := c.Complete("he", 2)
	if len(cands) == 0 {
		t.Fatal("no candidates")
	}
	for _, cand := range cands {
		if cand.Start != 0 || cand.End != 2 {
			t.Errorf("span = (%d, %d), want (0, 2)", cand.Start, cand.End)
		}
	}
}

func TestCompleteEmptyLineOffersEverything(t *testing.T) {
	c := NewCompleter(completionRegistry(t))

	got := replacements(c.Complete("", 0))
	want := []string{"echo", "h", "help", "history"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Complete(\"\", 0) = %v, want %v", got, want)
	}
}

// =============================================================================
// ARGUMENT COMPLETION
// =============================================================================

func TestCompleteDelegatesToArgCompleter(t *testing.T) {
	c := NewCompleter(completionRegistry(t))

	// New argument position after the command name.
	got := replacements(c.Complete("echo ", 5))
	if !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("Complete(echo ) = %v", got)
	}

	// Partially typed argument narrows the delegate's results.
	cands := c.Complete("echo al", 7)
	if !reflect.DeepEqual(replacements(cands), []string{"alpha"}) {
		t.Errorf("Complete(echo al) = %v", replacements(cands))
	}
	if cands[0].Start != 5 || cands[0].End != 7 {
		t.Errorf("span = (%d, %d), want (5, 7)", cands[0].Start, cands[0].End)
	}
}

func TestCompleteArgViaPrefixResolvedCommand(t *testing.T) {
	// "ec" resolves to echo by prefix, so argument completion still works.
	c := NewCompleter(completionRegistry(t))

	got := replacements(c.Complete("ec be", 5))
	if !reflect.DeepEqual(got, []string{"beta"}) {
		t.Errorf("Complete(ec be) = %v", got)
	}
}

func TestCompleteNoCandidatesWithoutArgCompleter(t *testing.T) {
	c := NewCompleter(completionRegistry(t))

	if got := c.Complete("history ", 8); got != nil {
		t.Errorf("Complete(history ) = %v, want nil", got)
	}
}

func TestCompleteNoCandidatesForUnresolvedCommand(t *testing.T) {
	reg := command.NewRegistry()
	reg.MustRegister(&command.Command{Name: "move", Handler: &listHandler{}})
	reg.MustRegister(&command.Command{Name: "make", Handler: &listHandler{}})
	c := NewCompleter(reg)

	// Ambiguous first token: no argument candidates.
	if got := c.Complete("m x", 3); got != nil {
		t.Errorf("Complete(m x) = %v, want nil", got)
	}
	// Unknown first token.
	if got := c.Complete("zz x", 4); got != nil {
		t.Errorf("Complete(zz x) = %v, want nil", got)
	}
}

func TestCompleteUsesTextUpToCursorOnly(t *testing.T) {
	c := NewCompleter(completionRegistry(t))

	// Cursor in the middle of "echo alpha": complete "al" and replace it.
	cands := c.Complete("echo alpha", 7)
	if !reflect.DeepEqual(replacements(cands), []string{"alpha"}) {
		t.Errorf("Complete = %v", replacements(cands))
	}
	if cands[0].Start != 5 || cands[0].End != 7 {
		t.Errorf("span = (%d, %d), want (5, 7)", cands[0].Start, cands[0].End)
	}
}
