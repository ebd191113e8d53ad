// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
package repl

import (
	"context"
	"errors"
)

// =============================================================================
// FRONTEND CONTRACT
// =============================================================================

// ErrInterrupted is returned by Frontend.ReadLine when the user aborts the
// pending prompt (typically Ctrl-C). The loop applies its InterruptPolicy.
var ErrInterrupted = errors.New("interrupted")

// Frontend is the line-editor collaborator. It owns raw terminal handling,
// key decoding, cursor rendering and history; the loop only ever asks it
// for the next line and hands it text to display.
//
// ReadLine blocks until a full line is available. It returns io.EOF at end
// of input and ErrInterrupted when the user aborts the prompt. Frontends
// that support completion or hints query a Completer/Hinter synchronously
// from their own keystroke handling; the loop is not involved.
type Frontend interface {
	ReadLine(ctx context.Context) (string, error)
	Write(s string)
}
