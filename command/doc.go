// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command defines the command model for the replkit engine.
//
// A host application describes each user-invocable operation as a Command
// (name, aliases, argument spec, handler) and collects them in a Registry.
// The registry resolves user input to a command by exact name, alias, or
// unambiguous prefix, and is read-only once the dispatch loop starts.
//
// # Key Types
//
//   - Command: immutable command descriptor
//   - ArgDef: one positional argument (name, hint, required flag)
//   - Handler: the capability implementing a command's behavior
//   - Registry: name/alias index with prefix resolution
//
// # Usage
//
// Register commands during setup, then share the registry:
//
//	reg := command.NewRegistry()
//	err := reg.Register(&command.Command{
//	    Name:    "echo",
//	    Summary: "Print the argument back",
//	    Args:    []command.ArgDef{{Name: "text", Required: true}},
//	    Handler: command.HandlerFunc(echo),
//	})
//
// Resolution accepts abbreviations as long as they are unambiguous:
//
//	cmd, err := reg.Resolve("ec") // finds "echo" if nothing else matches
package command
