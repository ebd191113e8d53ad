// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package teaedit provides a Bubble Tea frontend for replkit.
package teaedit

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/replkit/command"
	"github.com/morganforge/replkit/repl"
)

func promptRegistry(t *testing.T) *command.Registry {
	t.Helper()
	nop := command.HandlerFunc(func(ctx context.Context, args []string) (command.Result, error) {
		return command.Result{}, nil
	})
	reg := command.NewRegistry()
	reg.MustRegister(&command.Command{Name: "help", Handler: nop})
	reg.MustRegister(&command.Command{Name: "history", Handler: nop})
	reg.MustRegister(&command.Command{
		Name: "greet",
		Args: []command.ArgDef{
			{Name: "name", Required: true, Hint: "string"},
		},
		Handler: nop,
	})
	return reg
}

func typeString(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, key tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(Model), cmd
}

func TestTabCyclesCandidates(t *testing.T) {
	reg := promptRegistry(t)
	m := NewModel("> ", repl.NewCompleter(reg), nil)

	m = typeString(m, "h")
	m, _ = press(m, tea.KeyTab)
	if m.Value() != "help" {
		t.Fatalf("after first Tab, Value() = %q", m.Value())
	}
	m, _ = press(m, tea.KeyTab)
	if m.Value() != "history" {
		t.Fatalf("after second Tab, Value() = %q", m.Value())
	}
	// Wraps back to the first candidate.
	m, _ = press(m, tea.KeyTab)
	if m.Value() != "help" {
		t.Fatalf("after third Tab, Value() = %q", m.Value())
	}
}

func TestShiftTabCyclesBackwards(t *testing.T) {
	reg := promptRegistry(t)
	m := NewModel("> ", repl.NewCompleter(reg), nil)

	m = typeString(m, "h")
	m, _ = press(m, tea.KeyShiftTab)
	if m.Value() != "history" {
		t.Fatalf("after Shift-Tab, Value() = %q", m.Value())
	}
}

func TestTypingClearsCandidateSet(t *testing.T) {
	reg := promptRegistry(t)
	m := NewModel("> ", repl.NewCompleter(reg), nil)

	m = typeString(m, "h")
	m, _ = press(m, tea.KeyTab)
	m = typeString(m, "x")

	// A fresh Tab works from the new line, and "helpx" matches nothing.
	m, _ = press(m, tea.KeyTab)
	if m.Value() != "helpx" {
		t.Errorf("Value() = %q, want unchanged %q", m.Value(), "helpx")
	}
}

func TestTabWithNoCandidatesLeavesLine(t *testing.T) {
	reg := promptRegistry(t)
	m := NewModel("> ", repl.NewCompleter(reg), nil)

	m = typeString(m, "zz")
	m, _ = press(m, tea.KeyTab)
	if m.Value() != "zz" {
		t.Errorf("Value() = %q, want %q", m.Value(), "zz")
	}
}

func TestEnterSubmitsAndResets(t *testing.T) {
	var got []lineMsg
	m := NewModel("> ", nil, nil)
	m.submit = func(msg lineMsg) { got = append(got, msg) }

	m = typeString(m, "echo hi")
	m, _ = press(m, tea.KeyEnter)

	if len(got) != 1 || got[0].line != "echo hi" || got[0].err != nil {
		t.Fatalf("submitted = %+v", got)
	}
	if m.Value() != "" {
		t.Errorf("input not reset: %q", m.Value())
	}
}

func TestCtrlCAtPromptSubmitsInterrupt(t *testing.T) {
	var got []lineMsg
	interrupted := 0
	m := NewModel("> ", nil, nil)
	m.submit = func(msg lineMsg) { got = append(got, msg) }
	m.readPending = func() bool { return true }
	m.interrupt = func() { interrupted++ }

	_, _ = press(m, tea.KeyCtrlC)
	if len(got) != 1 || !errors.Is(got[0].err, repl.ErrInterrupted) {
		t.Fatalf("submitted = %+v, want ErrInterrupted", got)
	}
	if interrupted != 0 {
		t.Errorf("interrupt fired %d times at the prompt, want 0", interrupted)
	}
}

func TestCtrlCDuringCommandFiresInterrupt(t *testing.T) {
	// With no read pending the loop is invoking a handler; Ctrl-C must
	// cancel that handler, not queue an abort for the next prompt.
	var got []lineMsg
	interrupted := 0
	m := NewModel("> ", nil, nil)
	m.submit = func(msg lineMsg) { got = append(got, msg) }
	m.readPending = func() bool { return false }
	m.interrupt = func() { interrupted++ }

	m, _ = press(m, tea.KeyCtrlC)
	if interrupted != 1 {
		t.Fatalf("interrupt fired %d times, want 1", interrupted)
	}
	if len(got) != 0 {
		t.Fatalf("submitted = %+v, want nothing queued", got)
	}

	// Back at the prompt, Ctrl-C abandons the read again.
	m.readPending = func() bool { return true }
	_, _ = press(m, tea.KeyCtrlC)
	if len(got) != 1 || !errors.Is(got[0].err, repl.ErrInterrupted) {
		t.Fatalf("submitted = %+v, want ErrInterrupted", got)
	}
	if interrupted != 1 {
		t.Errorf("interrupt fired %d times, want still 1", interrupted)
	}
}

func TestCtrlDOnEmptySubmitsEOF(t *testing.T) {
	var got []lineMsg
	m := NewModel("> ", nil, nil)
	m.submit = func(msg lineMsg) { got = append(got, msg) }

	_, cmd := press(m, tea.KeyCtrlD)
	if len(got) != 1 || !errors.Is(got[0].err, io.EOF) {
		t.Fatalf("submitted = %+v, want io.EOF", got)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestCtrlDWithTextIsIgnored(t *testing.T) {
	var got []lineMsg
	m := NewModel("> ", nil, nil)
	m.submit = func(msg lineMsg) { got = append(got, msg) }

	m = typeString(m, "echo")
	m, _ = press(m, tea.KeyCtrlD)
	if len(got) != 0 {
		t.Fatalf("submitted = %+v, want nothing", got)
	}
	if m.Value() != "echo" {
		t.Errorf("Value() = %q", m.Value())
	}
}

func TestViewShowsHint(t *testing.T) {
	reg := promptRegistry(t)
	m := NewModel("> ", nil, repl.NewHinter(reg))

	m = typeString(m, "greet ")
	if view := m.View(); !strings.Contains(view, "<name:string>") {
		t.Errorf("view missing hint:\n%s", view)
	}
}

func TestViewShowsCandidatePicker(t *testing.T) {
	reg := promptRegistry(t)
	m := NewModel("> ", repl.NewCompleter(reg), nil)

	m = typeString(m, "h")
	m, _ = press(m, tea.KeyTab)
	view := m.View()
	if !strings.Contains(view, "[help]") || !strings.Contains(view, "history") {
		t.Errorf("view missing candidate picker:\n%s", view)
	}
}
