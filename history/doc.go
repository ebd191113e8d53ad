// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists REPL input lines to a local SQLite database.
//
// Each process gets a fresh session id, so recalled lines can be scoped
// either to the current session or across all of them. The store is safe
// for use from the loop goroutine and a frontend goroutine concurrently.
//
// # Key Types
//
//   - Store: append-only line store backed by SQLite
//   - Entry: one recorded input line with its session and timestamp
//
// # Usage
//
//	st, err := history.Open(path)
//	if err != nil { ... }
//	defer st.Close()
//	st.Append(ctx, "echo hi")
//	recent, _ := st.Recent(ctx, 50)
package history
