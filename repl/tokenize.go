// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl drives the interactive read-eval-print loop for replkit.
package repl

import (
	"strconv"
	"strings"
	"unicode"
)

// =============================================================================
// INVOCATION
// =============================================================================

// Invocation is one parsed user request: a command name plus the raw
// argument tokens. It is transient and owned by the dispatch loop.
type Invocation struct {
	// Name is the first token of the line, before resolution
	Name string

	// Args are the remaining tokens, uninterpreted
	Args []string
}

// Empty reports whether the line held no tokens at all. The loop treats
// an empty invocation as a no-op and simply re-prompts.
func (inv Invocation) Empty() bool {
	return inv.Name == ""
}

// =============================================================================
// PARSE ERROR
// =============================================================================

// ParseError reports a malformed input line.
type ParseError struct {
	// Offset is the byte offset of the opening quote
	Offset int
}

func (e *ParseError) Error() string {
	return "unterminated quote at column " + strconv.Itoa(e.Offset+1)
}

// =============================================================================
// TOKENIZER
// =============================================================================

// Tokenize splits one raw input line into a command name and raw argument
// tokens. Tokens are separated by whitespace; a double-quoted span becomes
// part of one token, embedded whitespace included. No type coercion is
// performed. A blank line yields the empty no-op invocation.
func Tokenize(line string) (Invocation, error) {
	toks, err := scan(line)
	if err != nil {
		return Invocation{}, err
	}
	if len(toks) == 0 {
		return Invocation{}, nil
	}
	inv := Invocation{Name: toks[0].text}
	for _, t := range toks[1:] {
		inv.Args = append(inv.Args, t.text)
	}
	return inv, nil
}

// token is one scanned span with its byte offsets in the original line.
// The completion engine needs the offsets to compute replacement spans.
type token struct {
	text  string
	start int
	end   int
}

// scan tokenizes the line, tracking byte positions. On an unterminated
// quote it still returns the tokens scanned so far (the final one still
// open) alongside the error, so completion can work mid-quote.
func scan(line string) ([]token, error) {
	var toks []token
	var b strings.Builder
	start := -1
	inQuote := false
	quoteStart := 0

	for i, r := range line {
		switch {
		case r == '"':
			if inQuote {
				inQuote = false
			} else {
				inQuote = true
				quoteStart = i
			}
			if start < 0 {
				start = i
			}
		case unicode.IsSpace(r) && !inQuote:
			if start >= 0 {
				toks = append(toks, token{text: b.String(), start: start, end: i})
				b.Reset()
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
			b.WriteRune(r)
		}
	}
	if start >= 0 {
		toks = append(toks, token{text: b.String(), start: start, end: len(line)})
	}
	if inQuote {
		return toks, &ParseError{Offset: quoteStart}
	}
	return toks, nil
}
