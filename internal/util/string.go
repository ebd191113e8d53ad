// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides shared string helpers for replkit.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// RUNE-SAFE TRUNCATION
// =============================================================================

// TruncateRunes truncates a string to a maximum number of runes, appending
// "..." when anything was cut. Safe for UTF-8: it counts characters, not
// bytes, so multi-byte runes are never split.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// =============================================================================
// DISPLAY WIDTH
// =============================================================================

// Width returns the terminal display width of s, counting double-width
// CJK characters as two columns.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces to the given display width. Strings already
// at or past the width are returned unchanged.
func PadRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// ByteOffset converts a rune index into a byte offset within s, clamping
// past-end positions to len(s). Line editors report cursor positions in
// runes while the completion engine spans are byte offsets.
func ByteOffset(s string, runePos int) int {
	if runePos <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == runePos {
			return i
		}
		n++
	}
	return len(s)
}

// =============================================================================
// WORD WRAPPING
// =============================================================================

// Wrap greedily wraps s into lines of at most width display columns,
// breaking at spaces. A single word wider than the limit gets a line of
// its own rather than being split.
func Wrap(s string, width int) []string {
	if width <= 0 || s == "" {
		return []string{s}
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		switch {
		case lineWidth == 0:
			line.WriteString(word)
			lineWidth = w
		case lineWidth+1+w <= width:
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += 1 + w
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			lineWidth = w
		}
	}
	if line.Len() > 0 || len(lines) == 0 {
		lines = append(lines, line.String())
	}
	return lines
}
