// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package teaedit provides a Bubble Tea frontend for replkit.
//
// It renders a styled prompt with inline grey hints and Tab-cycled
// completion, backed by the engine's completer and hinter. The Frontend
// implements repl.Frontend: reads arrive over a channel from the Bubble
// Tea event loop, and loop output is printed above the prompt.
//
// # Key Types
//
//   - Frontend: repl.Frontend backed by a running tea.Program
//   - Model: the Bubble Tea model, exported for host customization
package teaedit

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/replkit/internal/util"
	"github.com/morganforge/replkit/repl"
)

// =============================================================================
// STYLES
// =============================================================================

// Styles controls the prompt's visual treatment.
type Styles struct {
	Prompt lipgloss.Style
	Hint   lipgloss.Style
	Picker lipgloss.Style
}

// DefaultStyles returns the standard styling.
func DefaultStyles() Styles {
	return Styles{
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Picker: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// =============================================================================
// COMPLETION CYCLING
// =============================================================================

// cycleState tracks Tab navigation through the current candidate set.
// The first Tab applies the first candidate; repeated Tabs cycle.
type cycleState struct {
	original string
	cands    []repl.Candidate
	selected int
	active   bool
}

func (cs *cycleState) clear() {
	cs.original = ""
	cs.cands = nil
	cs.selected = -1
	cs.active = false
}

func (cs *cycleState) next() {
	if len(cs.cands) == 0 {
		return
	}
	cs.selected = (cs.selected + 1) % len(cs.cands)
}

func (cs *cycleState) prev() {
	if len(cs.cands) == 0 {
		return
	}
	cs.selected--
	if cs.selected < 0 {
		cs.selected = len(cs.cands) - 1
	}
}

// apply returns the original line with the selected candidate spliced in,
// plus the rune position just past the replacement.
func (cs *cycleState) apply() (string, int) {
	c := cs.cands[cs.selected]
	line := cs.original[:c.Start] + c.Replacement + cs.original[c.End:]
	pos := utf8.RuneCountInString(cs.original[:c.Start]) +
		utf8.RuneCountInString(c.Replacement)
	return line, pos
}

// =============================================================================
// MODEL
// =============================================================================

// lineMsg carries one submitted line (or read error) out of the model.
type lineMsg struct {
	line string
	err  error
}

// Model is the Bubble Tea model for the prompt line.
type Model struct {
	input     textinput.Model
	completer *repl.Completer
	hinter    *repl.Hinter
	cycle     cycleState
	styles    Styles

	// submit receives every completed read. The Frontend points it at
	// its channel; tests capture it directly.
	submit func(lineMsg)

	// readPending reports whether the loop is blocked in ReadLine.
	// Ctrl-C only abandons the prompt when a read is actually pending;
	// otherwise a command is in flight and interrupt fires instead.
	readPending func() bool

	// interrupt cancels the in-flight command (loop.Interrupt).
	interrupt func()
}

// NewModel creates a prompt model wired to the engine's completer and
// hinter. Either may be nil to disable the feature.
func NewModel(prompt string, completer *repl.Completer, hinter *repl.Hinter) Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Focus()

	styles := DefaultStyles()
	ti.PromptStyle = styles.Prompt

	return Model{
		input:       ti,
		completer:   completer,
		hinter:      hinter,
		styles:      styles,
		submit:      func(lineMsg) {},
		readPending: func() bool { return true },
		interrupt:   func() {},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyEnter:
		line := m.input.Value()
		m.input.Reset()
		m.cycle.clear()
		m.submit(lineMsg{line: line})
		return m, nil

	case tea.KeyCtrlC:
		m.cycle.clear()
		if m.readPending() {
			m.submit(lineMsg{err: repl.ErrInterrupted})
		} else {
			m.interrupt()
		}
		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.submit(lineMsg{err: io.EOF})
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		m.completeStep(keyMsg.Type == tea.KeyShiftTab)
		return m, nil

	default:
		// Any other key invalidates the candidate set.
		m.cycle.clear()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// completeStep advances Tab completion by one candidate.
func (m *Model) completeStep(backwards bool) {
	if m.completer == nil {
		return
	}
	if !m.cycle.active {
		line := m.input.Value()
		cursor := util.ByteOffset(line, m.input.Position())
		cands := m.completer.Complete(line, cursor)
		if len(cands) == 0 {
			return
		}
		m.cycle = cycleState{original: line, cands: cands, selected: -1, active: true}
	}
	if backwards {
		m.cycle.prev()
	} else {
		m.cycle.next()
	}
	line, pos := m.cycle.apply()
	m.input.SetValue(line)
	m.input.SetCursor(pos)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())

	if m.hinter != nil {
		if hint := m.hinter.Hint(m.input.Value()); hint != "" {
			b.WriteString("  ")
			b.WriteString(m.styles.Hint.Render(hint))
		}
	}

	if m.cycle.active && len(m.cycle.cands) > 1 {
		var names []string
		for i, c := range m.cycle.cands {
			name := c.Replacement
			if i == m.cycle.selected {
				name = "[" + name + "]"
			}
			names = append(names, name)
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Picker.Render(strings.Join(names, "  ")))
	}
	return b.String()
}

// Value exposes the current input text for tests and host status lines.
func (m Model) Value() string {
	return m.input.Value()
}

// =============================================================================
// FRONTEND
// =============================================================================

// Frontend runs the prompt model in a tea.Program and adapts it to the
// dispatch loop's Frontend contract.
type Frontend struct {
	prog  *tea.Program
	reads chan lineMsg

	// pending is true while the loop is blocked in ReadLine. The model
	// consults it from the tea goroutine to route Ctrl-C.
	pending atomic.Bool

	mu        sync.Mutex
	interrupt func()
}

// New starts the Bubble Tea program and returns the frontend. The
// program runs until the loop shuts it down via Close.
func New(prompt string, completer *repl.Completer, hinter *repl.Hinter) *Frontend {
	f := &Frontend{reads: make(chan lineMsg, 1)}

	model := NewModel(prompt, completer, hinter)
	model.submit = func(msg lineMsg) { f.reads <- msg }
	model.readPending = f.pending.Load
	model.interrupt = f.fireInterrupt

	f.prog = tea.NewProgram(model)
	go func() {
		if _, err := f.prog.Run(); err != nil {
			f.reads <- lineMsg{err: err}
		}
	}()
	return f
}

// OnInterrupt registers the handler for Ctrl-C pressed while a command
// is in flight. Hosts wire it to Loop.Interrupt so the keystroke cancels
// the running handler instead of the next prompt.
func (f *Frontend) OnInterrupt(fn func()) {
	f.mu.Lock()
	f.interrupt = fn
	f.mu.Unlock()
}

func (f *Frontend) fireInterrupt() {
	f.mu.Lock()
	fn := f.interrupt
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// ReadLine blocks until the user submits a line or the context ends.
func (f *Frontend) ReadLine(ctx context.Context) (string, error) {
	f.pending.Store(true)
	defer f.pending.Store(false)

	select {
	case msg := <-f.reads:
		return msg.line, msg.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Write prints loop output above the prompt.
func (f *Frontend) Write(s string) {
	f.prog.Println(strings.TrimRight(s, "\n"))
}

// Close stops the underlying program.
func (f *Frontend) Close() error {
	f.prog.Quit()
	return nil
}
