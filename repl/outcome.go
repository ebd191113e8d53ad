// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
package repl

// =============================================================================
// DISPATCH OUTCOME
// =============================================================================

// OutcomeKind discriminates the per-invocation result.
type OutcomeKind int

const (
	// OutcomeNone means the line was blank; nothing is reported.
	OutcomeNone OutcomeKind = iota

	// OutcomeSuccess carries handler output to write as-is.
	OutcomeSuccess

	// OutcomeUserError covers parse, resolve and arity failures: the
	// handler was never invoked.
	OutcomeUserError

	// OutcomeHandlerError is a domain failure raised by the handler.
	OutcomeHandlerError

	// OutcomeCancelled means the in-flight handler task was aborted.
	OutcomeCancelled

	// OutcomeExit means the command asked the loop to terminate.
	OutcomeExit
)

// Outcome is produced once per invocation and consumed immediately by the
// reporting step. It is not persisted.
type Outcome struct {
	Kind   OutcomeKind
	Output string
	Err    error
}
