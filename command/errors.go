// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command defines the command model for the replkit engine.
package command

import (
	"strconv"
	"strings"
)

// =============================================================================
// REGISTRATION ERRORS
// =============================================================================

// RegistrationReason classifies why Register rejected a command.
type RegistrationReason int

const (
	// DuplicateName means the name or an alias collides with an existing one.
	DuplicateName RegistrationReason = iota

	// InvalidName means the name or an alias is empty or contains whitespace.
	InvalidName

	// InvalidArgSpec means a required argument follows an optional one.
	InvalidArgSpec

	// PrefixCollision means a name or alias is a proper prefix of another
	// registered name. Only reported under StrictnessPedantic.
	PrefixCollision
)

// RegistrationError is returned by Registry.Register. It is fatal at setup
// time: a misconfigured command set must never reach the dispatch loop.
type RegistrationError struct {
	Name   string
	Reason RegistrationReason
	Detail string
}

func (e *RegistrationError) Error() string {
	msg := "register '" + e.Name + "': "
	switch e.Reason {
	case DuplicateName:
		msg += "name already registered"
	case InvalidName:
		msg += "name is empty or contains whitespace"
	case InvalidArgSpec:
		msg += "required argument follows an optional one"
	case PrefixCollision:
		msg += "name is a prefix of another command"
	default:
		msg += "invalid command"
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// =============================================================================
// RESOLUTION ERRORS
// =============================================================================

// UnknownCommandError is returned by Resolve when no registered name or
// alias matches. Candidates holds near-miss prefix matches, if any.
type UnknownCommandError struct {
	Name       string
	Candidates []string
}

func (e *UnknownCommandError) Error() string {
	msg := "unknown command '" + e.Name + "'"
	if len(e.Candidates) > 0 {
		msg += " (did you mean: " + strings.Join(e.Candidates, ", ") + "?)"
	}
	return msg
}

// AmbiguousCommandError is returned by Resolve when a prefix matches more
// than one command. Candidates lists every match; the loop surfaces the
// list to the user rather than guessing.
type AmbiguousCommandError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousCommandError) Error() string {
	return "ambiguous command '" + e.Name + "': " + strings.Join(e.Candidates, ", ")
}

// =============================================================================
// ARITY ERROR
// =============================================================================

// ArityError reports an argument count mismatch, detected before the
// handler is invoked.
type ArityError struct {
	Command string
	Got     int
	Min     int
	Max     int
}

func (e *ArityError) Error() string {
	if e.Got < e.Min {
		return "wrong number of arguments for '" + e.Command + "': got " +
			strconv.Itoa(e.Got) + ", expected at least " + strconv.Itoa(e.Min)
	}
	return "wrong number of arguments for '" + e.Command + "': got " +
		strconv.Itoa(e.Got) + ", expected at most " + strconv.Itoa(e.Max)
}
