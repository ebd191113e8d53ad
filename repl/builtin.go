// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
package repl

import (
	"context"

	"github.com/morganforge/replkit/command"
)

// =============================================================================
// OPTIONAL BUILT-IN COMMANDS
// =============================================================================

// The registry is host-owned, so nothing is reserved: hosts that want the
// conventional help/exit pair register these constructors alongside their
// own commands.

// HelpCommand returns a "help" command that lists every visible command,
// wrapped to the given display width (0 = 80 columns).
func HelpCommand(reg *command.Registry, width int) *command.Command {
	return &command.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Summary: "Show this help message",
		Handler: command.HandlerFunc(func(ctx context.Context, args []string) (command.Result, error) {
			return command.Done(HelpText(reg, width))
		}),
	}
}

// ExitCommand returns an "exit" command that terminates the loop.
func ExitCommand() *command.Command {
	return &command.Command{
		Name:    "exit",
		Aliases: []string{"quit"},
		Summary: "Exit the session",
		Handler: command.HandlerFunc(func(ctx context.Context, args []string) (command.Result, error) {
			return command.Quit()
		}),
	}
}
