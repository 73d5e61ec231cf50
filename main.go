// ripple TUI - a terminal chat client with a virtualized message list.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/ripple-tui/internal/config"
	"github.com/jeranaias/ripple-tui/internal/store"
	"github.com/jeranaias/ripple-tui/internal/ui/app"
	"github.com/jeranaias/ripple-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		conversation = flag.String("room", "general", "conversation to open")
		userID       = flag.String("user", "me", "user id for sent messages")
		userName     = flag.String("name", "me", "display name for sent messages")
		memoryOnly   = flag.Bool("memory", false, "skip the history database")
		showVersion  = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("ripple %s (%s, %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "ripple needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ripple: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	var st *store.HistoryStore
	if !*memoryOnly {
		st, err = openStore(cfg)
		if err != nil {
			// History is an enhancement; the session still works
			// without it.
			fmt.Fprintf(os.Stderr, "ripple: history unavailable: %v\n", err)
		} else {
			defer st.Close()
		}
	}

	theme := styles.NewTheme()
	root := app.New(theme, cfg, st, *conversation, *userID, *userName)

	if path, err := config.Path(); err == nil {
		if w, err := config.NewWatcher(path, root.PushConfig); err == nil {
			if err := w.Watch(); err == nil {
				defer w.Close()
			}
		}
	}

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ripple: %v\n", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (*store.HistoryStore, error) {
	path := cfg.History.DatabasePath
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "history.db")
	}
	return store.Open(path)
}
