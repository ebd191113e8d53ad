// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command defines the command model for the replkit engine.
package command

import (
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// STRICTNESS
// =============================================================================

// Strictness controls how aggressively Register flags overlapping names.
type Strictness int

const (
	// StrictnessLoose accepts names that are prefixes of other names;
	// overlaps are surfaced at resolution time as ambiguity.
	StrictnessLoose Strictness = iota

	// StrictnessPedantic rejects at registration time any name or alias
	// that is a proper prefix of another registered name or alias.
	StrictnessPedantic
)

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands and resolves user input to them.
// It is mutated only during setup; once the dispatch loop starts it is
// read-only and safe for concurrent reads from the loop, the completion
// engine and the hint engine.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string // alias -> canonical name
	order    []string          // registration order, for List and help
	strict   Strictness
	predict  bool
}

// NewRegistry creates an empty registry with prefix resolution enabled
// and loose strictness.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
		predict:  true,
	}
}

// SetStrictness selects the registration strictness level.
// Call during setup, before the dispatch loop starts.
func (r *Registry) SetStrictness(s Strictness) {
	r.strict = s
}

// SetPredict enables or disables prefix resolution. With predict off,
// Resolve only accepts exact names and aliases; completion still works.
func (r *Registry) SetPredict(on bool) {
	r.predict = on
}

// Predict reports whether prefix resolution is enabled.
func (r *Registry) Predict() bool {
	return r.predict
}

// =============================================================================
// REGISTRATION
// =============================================================================

// Register adds a command. It fails with a RegistrationError if the name
// or an alias is invalid or collides, or if the argument spec places a
// required argument after an optional one.
func (r *Registry) Register(cmd *Command) error {
	if !validName(cmd.Name) {
		return &RegistrationError{Name: cmd.Name, Reason: InvalidName}
	}
	if r.taken(cmd.Name) {
		return &RegistrationError{Name: cmd.Name, Reason: DuplicateName}
	}
	for _, alias := range cmd.Aliases {
		if !validName(alias) {
			return &RegistrationError{Name: cmd.Name, Reason: InvalidName, Detail: "alias '" + alias + "'"}
		}
		if alias == cmd.Name || r.taken(alias) {
			return &RegistrationError{Name: cmd.Name, Reason: DuplicateName, Detail: "alias '" + alias + "'"}
		}
	}
	if !validArgSpec(cmd.Args) {
		return &RegistrationError{Name: cmd.Name, Reason: InvalidArgSpec}
	}
	if r.strict == StrictnessPedantic {
		if hit := r.prefixCollision(cmd); hit != "" {
			return &RegistrationError{Name: cmd.Name, Reason: PrefixCollision, Detail: "collides with '" + hit + "'"}
		}
	}

	r.commands[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd.Name
	}
	return nil
}

// MustRegister is Register for static setup code; it panics on error.
func (r *Registry) MustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

func validName(name string) bool {
	return name != "" && strings.IndexFunc(name, unicode.IsSpace) < 0
}

func validArgSpec(args []ArgDef) bool {
	seenOptional := false
	for _, a := range args {
		if !a.Required {
			seenOptional = true
		} else if seenOptional {
			return false
		}
	}
	return true
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.commands[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

// prefixCollision returns an existing name that overlaps with one of the
// new command's names, or "" when there is no overlap.
func (r *Registry) prefixCollision(cmd *Command) string {
	candidates := append([]string{cmd.Name}, cmd.Aliases...)
	for _, name := range candidates {
		for _, existing := range r.allNames() {
			if name == existing {
				continue
			}
			if strings.HasPrefix(existing, name) || strings.HasPrefix(name, existing) {
				return existing
			}
		}
	}
	return ""
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolve finds the command for a typed name. Exact names and aliases win;
// otherwise an unambiguous prefix of a single command resolves to it.
// A prefix matching several commands yields an AmbiguousCommandError
// listing every match, and no match yields an UnknownCommandError.
func (r *Registry) Resolve(name string) (*Command, error) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, nil
	}
	if canonical, ok := r.aliases[name]; ok {
		return r.commands[canonical], nil
	}

	matches := r.PrefixMatches(name)
	if !r.predict || len(matches) == 0 {
		return nil, &UnknownCommandError{Name: name, Candidates: matches}
	}

	// Distinct commands behind the matched strings. A name and its own
	// alias sharing a prefix is not ambiguous.
	distinct := make(map[string]bool)
	for _, m := range matches {
		distinct[r.canonical(m)] = true
	}
	if len(distinct) == 1 {
		return r.commands[r.canonical(matches[0])], nil
	}
	return nil, &AmbiguousCommandError{Name: name, Candidates: matches}
}

// Lookup returns the command registered under an exact name or alias,
// or nil. No prefix resolution.
func (r *Registry) Lookup(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if canonical, ok := r.aliases[name]; ok {
		return r.commands[canonical]
	}
	return nil
}

// PrefixMatches returns every registered name and alias having the given
// prefix, sorted lexicographically. An empty prefix matches everything.
func (r *Registry) PrefixMatches(prefix string) []string {
	var matches []string
	for _, name := range r.allNames() {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches
}

// List returns all commands in registration order.
func (r *Registry) List() []*Command {
	cmds := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		cmds = append(cmds, r.commands[name])
	}
	return cmds
}

// Len returns the number of registered commands (aliases not counted).
func (r *Registry) Len() int {
	return len(r.commands)
}

func (r *Registry) canonical(name string) string {
	if target, ok := r.aliases[name]; ok {
		return target
	}
	return name
}

func (r *Registry) allNames() []string {
	names := make([]string, 0, len(r.commands)+len(r.aliases))
	for name := range r.commands {
		names = append(names, name)
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	return names
}
