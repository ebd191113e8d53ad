// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command defines the command model for the replkit engine.
package command

import (
	"context"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a named operation a user can invoke.
// Commands are immutable once registered.
type Command struct {
	// Name is the primary command name (e.g., "echo")
	Name string

	// Aliases are alternative names (e.g., "e")
	Aliases []string

	// Summary is shown in help and completion
	Summary string

	// Args defines the expected positional arguments.
	// Optional arguments must follow all required ones.
	Args []ArgDef

	// Handler executes the command
	Handler Handler

	// Hidden commands don't appear in help
	Hidden bool
}

// ArgDef defines a positional argument for a command.
type ArgDef struct {
	// Name of the argument
	Name string

	// Required indicates if the argument must be provided
	Required bool

	// Hint is a human-readable type or shape hint (e.g., "int", "path")
	Hint string
}

// Placeholder renders the argument for usage and hint display.
// Required arguments are angle-bracketed, optional ones square-bracketed.
func (a ArgDef) Placeholder() string {
	body := a.Name
	if a.Hint != "" {
		body += ":" + a.Hint
	}
	if a.Required {
		return "<" + body + ">"
	}
	return "[" + body + "]"
}

// MinArgs returns the number of required arguments.
func (c *Command) MinArgs() int {
	n := 0
	for _, a := range c.Args {
		if a.Required {
			n++
		}
	}
	return n
}

// MaxArgs returns the total number of accepted arguments.
func (c *Command) MaxArgs() int {
	return len(c.Args)
}

// Signature returns the command name followed by argument placeholders,
// e.g. "add <a:int> <b:int>".
func (c *Command) Signature() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		parts = append(parts, a.Placeholder())
	}
	return strings.Join(parts, " ")
}

// =============================================================================
// HANDLER CONTRACT
// =============================================================================

// Status tells the dispatch loop what to do after a command completes.
type Status int

const (
	// StatusDone indicates the loop should continue with the next line.
	StatusDone Status = iota

	// StatusQuit indicates the loop should terminate cleanly.
	StatusQuit
)

// Result is a successful handler outcome.
type Result struct {
	// Output is written to the frontend as-is. Empty output writes nothing.
	Output string

	// Status is StatusDone for normal commands, StatusQuit to exit the loop.
	Status Status
}

// Handler is the capability every command implements. Invoke may block on
// I/O or other work; it must honor ctx cancellation at its own suspension
// points so the loop can abandon it cleanly.
type Handler interface {
	Invoke(ctx context.Context, args []string) (Result, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, args []string) (Result, error)

// Invoke calls f.
func (f HandlerFunc) Invoke(ctx context.Context, args []string) (Result, error) {
	return f(ctx, args)
}

// ArgCompleter is an optional extension point on Handler. Implementations
// return candidate values for the argument at the given zero-based index.
// CompleteArg runs inline in the frontend's keystroke path and must not block.
type ArgCompleter interface {
	CompleteArg(index int, partial string) []string
}

// Done wraps output in a successful Result.
func Done(output string) (Result, error) {
	return Result{Output: output, Status: StatusDone}, nil
}

// Quit returns a Result that terminates the dispatch loop.
func Quit() (Result, error) {
	return Result{Status: StatusQuit}, nil
}
