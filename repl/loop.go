// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
package repl

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/morganforge/replkit/command"
)

// =============================================================================
// LOOP CONFIGURATION
// =============================================================================

// InterruptPolicy selects what an interrupt means while the loop is
// waiting for input (no command active).
type InterruptPolicy int

const (
	// InterruptReprompt abandons the current line and re-prompts.
	InterruptReprompt InterruptPolicy = iota

	// InterruptExit terminates the loop cleanly.
	InterruptExit
)

// Options configures a Loop. The zero value gives sensible defaults.
type Options struct {
	// Policy governs interrupts delivered while reading. Default: reprompt.
	Policy InterruptPolicy

	// ErrorPrefix marks every recoverable error line. Default "error: ".
	ErrorPrefix string

	// CancelNotice is printed when an in-flight handler is cancelled.
	// Default "cancelled".
	CancelNotice string

	// InterruptNotice is printed on an abandoned prompt under
	// InterruptReprompt. Default "^C".
	InterruptNotice string
}

// LoopStatus tells Run whether the loop should take another turn.
type LoopStatus int

const (
	// LoopContinue means the loop should read the next line.
	LoopContinue LoopStatus = iota

	// LoopBreak means the loop is done (exit command or end of input).
	LoopBreak
)

// State is the dispatch state machine position, exposed for tests and
// host diagnostics. Only the loop goroutine mutates it.
type State int

const (
	StateIdle State = iota
	StateReading
	StateParsing
	StateResolving
	StateInvoking
	StateReporting
	StateExited
)

// =============================================================================
// DISPATCH LOOP
// =============================================================================

// Loop is the central driver: read, tokenize, resolve, invoke, report.
// It processes exactly one invocation at a time; the suspension while a
// handler runs does not block the host's other goroutines.
type Loop struct {
	reg   *command.Registry
	front Frontend
	opts  Options
	state State

	// cancel aborts the single in-flight handler task, if any.
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewLoop creates a loop with default options.
func NewLoop(reg *command.Registry, front Frontend) *Loop {
	return NewLoopWithOptions(reg, front, Options{})
}

// NewLoopWithOptions creates a loop with explicit options.
func NewLoopWithOptions(reg *command.Registry, front Frontend, opts Options) *Loop {
	if opts.ErrorPrefix == "" {
		opts.ErrorPrefix = "error: "
	}
	if opts.CancelNotice == "" {
		opts.CancelNotice = "cancelled"
	}
	if opts.InterruptNotice == "" {
		opts.InterruptNotice = "^C"
	}
	return &Loop{reg: reg, front: front, opts: opts, state: StateIdle}
}

// State returns the loop's current state machine position.
func (l *Loop) State() State {
	return l.state
}

// Interrupt cancels the in-flight handler task, if one is running. It
// never terminates the loop itself; interrupts at the prompt are the
// frontend's to deliver via ErrInterrupted.
func (l *Loop) Interrupt() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Run executes the evaluation loop until an exit command, end of input,
// or parent context cancellation. A clean exit returns nil.
func (l *Loop) Run(ctx context.Context) error {
	for {
		status, err := l.Next(ctx)
		if err != nil || status == LoopBreak {
			l.state = StateExited
			return err
		}
	}
}

// Next runs a single loop iteration: one line read and, if it holds an
// invocation, one dispatch. Hosts that need control between iterations
// can call Next directly instead of Run.
func (l *Loop) Next(ctx context.Context) (LoopStatus, error) {
	if err := ctx.Err(); err != nil {
		return LoopBreak, err
	}

	l.state = StateReading
	line, err := l.front.ReadLine(ctx)
	if err != nil {
		l.state = StateIdle
		switch {
		case errors.Is(err, io.EOF):
			return LoopBreak, nil
		case errors.Is(err, ErrInterrupted):
			if l.opts.Policy == InterruptExit {
				return LoopBreak, nil
			}
			l.front.Write(l.opts.InterruptNotice + "\n")
			return LoopContinue, nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return LoopBreak, ctx.Err()
		default:
			l.front.Write(l.opts.ErrorPrefix + err.Error() + "\n")
			return LoopContinue, nil
		}
	}

	out := l.dispatch(ctx, line)
	l.state = StateIdle
	if out.Kind == OutcomeExit {
		return LoopBreak, nil
	}
	return LoopContinue, nil
}

// =============================================================================
// DISPATCH
// =============================================================================

// dispatch takes one raw line through parse, resolve, arity check, invoke
// and report. Every recoverable failure produces exactly one error line.
func (l *Loop) dispatch(ctx context.Context, line string) Outcome {
	l.state = StateParsing
	inv, err := Tokenize(line)
	if err != nil {
		return l.report(Outcome{Kind: OutcomeUserError, Err: err})
	}
	if inv.Empty() {
		return Outcome{Kind: OutcomeNone}
	}

	l.state = StateResolving
	cmd, err := l.reg.Resolve(inv.Name)
	if err != nil {
		return l.report(Outcome{Kind: OutcomeUserError, Err: err})
	}

	if got := len(inv.Args); got < cmd.MinArgs() || got > cmd.MaxArgs() {
		arityErr := &command.ArityError{
			Command: cmd.Name,
			Got:     got,
			Min:     cmd.MinArgs(),
			Max:     cmd.MaxArgs(),
		}
		out := Outcome{Kind: OutcomeUserError, Err: arityErr}
		l.state = StateReporting
		l.front.Write(l.opts.ErrorPrefix + arityErr.Error() +
			" (usage: " + cmd.Signature() + ")\n")
		return out
	}

	l.state = StateInvoking
	out := l.invoke(ctx, cmd, inv.Args)
	return l.report(out)
}

type invokeResult struct {
	res command.Result
	err error
}

// invoke runs the handler as the loop's single cancellable task and waits
// for completion or cancellation. Cancellation is cooperative: the handler
// observes ctx at its own suspension points and unwinds cleanly.
func (l *Loop) invoke(ctx context.Context, cmd *command.Command, args []string) Outcome {
	hctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	l.cancel = cancel
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.cancel = nil
		l.mu.Unlock()
		cancel()
	}()

	ch := make(chan invokeResult, 1)
	go func() {
		res, err := cmd.Handler.Invoke(hctx, args)
		ch <- invokeResult{res: res, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			if errors.Is(r.err, context.Canceled) {
				return Outcome{Kind: OutcomeCancelled}
			}
			return Outcome{Kind: OutcomeHandlerError, Err: r.err}
		}
		if r.res.Status == command.StatusQuit {
			return Outcome{Kind: OutcomeExit, Output: r.res.Output}
		}
		return Outcome{Kind: OutcomeSuccess, Output: r.res.Output}
	case <-hctx.Done():
		return Outcome{Kind: OutcomeCancelled}
	}
}

// =============================================================================
// REPORTING
// =============================================================================

func (l *Loop) report(out Outcome) Outcome {
	l.state = StateReporting
	switch out.Kind {
	case OutcomeNone:
	case OutcomeSuccess, OutcomeExit:
		if out.Output != "" {
			s := out.Output
			if !strings.HasSuffix(s, "\n") {
				s += "\n"
			}
			l.front.Write(s)
		}
	case OutcomeCancelled:
		l.front.Write(l.opts.CancelNotice + "\n")
	default:
		l.front.Write(l.opts.ErrorPrefix + out.Err.Error() + "\n")
	}
	return out
}
