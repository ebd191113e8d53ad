// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
//
// The Loop repeatedly obtains a line from a Frontend, tokenizes it,
// resolves the command against a shared command.Registry, invokes the
// handler as a single cancellable task, and reports the outcome. The
// Completer and Hinter answer synchronous mid-keystroke queries from
// line-editing frontends; they never block and never touch loop state.
//
// # Key Types
//
//   - Loop: the dispatch state machine
//   - Frontend: the line-editor collaborator contract
//   - Completer: candidate completions for a line and cursor position
//   - Hinter: inline remaining-argument hints
//   - Outcome: the per-invocation result sum type
//
// # Concurrency
//
// The loop runs as one goroutine and processes one invocation at a time.
// Its only suspension points are reading the next line and awaiting the
// in-flight handler; Interrupt cancels the handler without terminating
// the loop. The registry is read-only for the lifetime of the loop, so
// completion and hint queries need no locking.
package repl
