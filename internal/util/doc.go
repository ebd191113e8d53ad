// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides shared string helpers for replkit.
//
// Everything here is display-oriented: rune-safe truncation, display-width
// measurement and padding (double-width CJK aware via go-runewidth), and
// greedy word wrapping used by the help renderer.
package util
