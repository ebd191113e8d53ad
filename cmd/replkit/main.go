// replkit demo host - an interactive shell built on the replkit engine.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/morganforge/replkit/command"
	"github.com/morganforge/replkit/config"
	"github.com/morganforge/replkit/history"
	"github.com/morganforge/replkit/lineedit"
	"github.com/morganforge/replkit/repl"
	"github.com/morganforge/replkit/teaedit"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	welcomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// =============================================================================
// ENTRY POINT
// =============================================================================

func main() {
	var (
		configPath = flag.String("config", "", "path to config file")
		useTUI     = flag.Bool("tui", false, "use the Bubble Tea frontend")
		prompt     = flag.String("prompt", "", "override the prompt string")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("replkit %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if *prompt != "" {
		cfg.Prompt = *prompt
	}

	if !cfg.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if err := run(cfg, *useTUI); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func run(cfg *config.Config, useTUI bool) error {
	ctx := context.Background()

	store, err := openHistory(ctx, cfg)
	if err != nil {
		// A broken history store degrades the session, it does not end it.
		fmt.Fprintln(os.Stderr, "warning: history disabled:", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width := cfg.TextWidth
	if width == 0 {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		} else {
			width = 80
		}
	}

	reg := buildRegistry(cfg, store, width)

	var front repl.Frontend
	var tui *teaedit.Frontend
	completer := repl.NewCompleter(reg)
	hinter := repl.NewHinter(reg)
	if useTUI {
		tui = teaedit.New(cfg.Prompt, completer, hinter)
		defer tui.Close()
		front = tui
	} else {
		ed := lineedit.New(cfg.Prompt)
		ed.AttachCompleter(completer)
		if store != nil {
			if err := ed.AttachHistory(ctx, store, 500); err != nil {
				fmt.Fprintln(os.Stderr, "warning: history replay failed:", err)
			}
		}
		defer ed.Close()
		front = ed

		fmt.Println(welcomeStyle.Render("replkit " + Version))
		fmt.Println(infoStyle.Render("Type 'help' for commands, Tab to complete, Ctrl-D to exit."))
	}

	loop := repl.NewLoopWithOptions(reg, front, repl.Options{
		Policy: cfg.InterruptPolicy(),
	})

	// The tea program owns the terminal in raw mode, so Ctrl-C arrives as
	// a keystroke there, never as SIGINT. Route it to the loop directly.
	if tui != nil {
		tui.OnInterrupt(loop.Interrupt)
	}

	// Ctrl-C while a command runs cancels that command, not the shell.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			loop.Interrupt()
		}
	}()

	return loop.Run(ctx)
}

func openHistory(ctx context.Context, cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	if days := cfg.History.MaxAgeDays; days > 0 {
		cutoff := time.Now().AddDate(0, 0, -days)
		if _, err := store.Prune(ctx, cutoff); err != nil {
			fmt.Fprintln(os.Stderr, "warning: history prune failed:", err)
		}
	}
	return store, nil
}

// =============================================================================
// DEMO COMMANDS
// =============================================================================

func buildRegistry(cfg *config.Config, store *history.Store, width int) *command.Registry {
	reg := command.NewRegistry()
	reg.SetStrictness(cfg.StrictnessLevel())
	reg.SetPredict(cfg.Predict)

	reg.MustRegister(&command.Command{
		Name:    "echo",
		Summary: "Print the arguments back",
		Args: []command.ArgDef{
			{Name: "text", Required: true},
			{Name: "more", Required: false},
		},
		Handler: command.HandlerFunc(func(ctx context.Context, args []string) (command.Result, error) {
			return command.Done(strings.Join(args, " "))
		}),
	})

	reg.MustRegister(&command.Command{
		Name:    "add",
		Summary: "Add two integers",
		Args: []command.ArgDef{
			{Name: "a", Required: true, Hint: "int"},
			{Name: "b", Required: true, Hint: "int"},
		},
		Handler: command.HandlerFunc(func(ctx context.Context, args []string) (command.Result, error) {
			a, err := strconv.Atoi(args[0])
			if err != nil {
				return command.Result{}, fmt.Errorf("'%s' is not an integer", args[0])
			}
			b, err := strconv.Atoi(args[1])
			if err != nil {
				return command.Result{}, fmt.Errorf("'%s' is not an integer", args[1])
			}
			return command.Done(strconv.Itoa(a + b))
		}),
	})

	reg.MustRegister(&command.Command{
		Name:    "sleep",
		Summary: "Wait for a number of seconds (Ctrl-C cancels)",
		Args:    []command.ArgDef{{Name: "secs", Required: true, Hint: "int"}},
		Handler: command.HandlerFunc(func(ctx context.Context, args []string) (command.Result, error) {
			secs, err := strconv.Atoi(args[0])
			if err != nil || secs < 0 {
				return command.Result{}, fmt.Errorf("'%s' is not a duration in seconds", args[0])
			}
			select {
			case <-time.After(time.Duration(secs) * time.Second):
				return command.Done("done")
			case <-ctx.Done():
				return command.Result{}, ctx.Err()
			}
		}),
	})

	reg.MustRegister(&command.Command{
		Name:    "greet",
		Summary: "Greet someone by name",
		Args: []command.ArgDef{
			{Name: "name", Required: true},
			{Name: "greeting", Required: false},
		},
		Handler: &greetHandler{names: []string{"alice", "bob", "carol"}},
	})

	if store != nil {
		reg.MustRegister(&command.Command{
			Name:    "history",
			Summary: "Show recent input lines",
			Args:    []command.ArgDef{{Name: "n", Required: false, Hint: "int"}},
			Handler: command.HandlerFunc(func(ctx context.Context, args []string) (command.Result, error) {
				n := 10
				if len(args) == 1 {
					v, err := strconv.Atoi(args[0])
					if err != nil || v <= 0 {
						return command.Result{}, fmt.Errorf("'%s' is not a positive integer", args[0])
					}
					n = v
				}
				entries, err := store.Recent(ctx, n)
				if err != nil {
					return command.Result{}, err
				}
				var b strings.Builder
				for i := len(entries) - 1; i >= 0; i-- {
					b.WriteString(entries[i].At.Format("15:04:05"))
					b.WriteString("  ")
					b.WriteString(entries[i].Line)
					if i > 0 {
						b.WriteString("\n")
					}
				}
				return command.Done(b.String())
			}),
		})
	}

	reg.MustRegister(repl.HelpCommand(reg, width))
	reg.MustRegister(repl.ExitCommand())
	return reg
}

// greetHandler demonstrates argument completion via the optional
// ArgCompleter interface.
type greetHandler struct {
	names []string
}

func (g *greetHandler) Invoke(ctx context.Context, args []string) (command.Result, error) {
	greeting := "hello"
	if len(args) == 2 {
		greeting = args[1]
	}
	return command.Done(greeting + ", " + args[0] + "!")
}

func (g *greetHandler) CompleteArg(index int, partial string) []string {
	if index != 0 {
		return nil
	}
	var out []string
	for _, name := range g.names {
		if strings.HasPrefix(name, partial) {
			out = append(out, name)
		}
	}
	return out
}
