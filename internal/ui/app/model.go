// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app composes the full-screen chat UI: the virtualized
// message list, the compose bar, the search bar, and the status line.
package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ripple-tui/internal/config"
	"github.com/jeranaias/ripple-tui/internal/model"
	"github.com/jeranaias/ripple-tui/internal/msglist"
	"github.com/jeranaias/ripple-tui/internal/search"
	"github.com/jeranaias/ripple-tui/internal/store"
	"github.com/jeranaias/ripple-tui/internal/ui/styles"
)

// inputMode says which surface owns the keyboard.
type inputMode int

const (
	modeList inputMode = iota
	modeCompose
	modeSearch
)

// Model is the root bubbletea model.
type Model struct {
	theme *styles.Theme
	cfg   *config.Config

	// store is nil for an in-memory session; history then neither
	// loads nor persists.
	store        *store.HistoryStore
	conversation string

	userID   string
	userName string

	list      *msglist.Model
	compose   textinput.Model
	searchBar textinput.Model
	mode      inputMode

	engine    *search.Engine
	results   []search.Result
	resultPos int

	// loaded mirrors the raw snapshot handed to the list, oldest
	// first; its head is the paging cursor.
	loaded       []*model.Message
	loadingOlder bool
	haveMore     bool

	width  int
	height int

	statusNote string
	err        error

	configCh chan *config.Config
	quitting bool
}

// New builds the root model. st may be nil.
func New(theme *styles.Theme, cfg *config.Config, st *store.HistoryStore, conversation, userID, userName string) *Model {
	m := &Model{
		theme:        theme,
		cfg:          cfg,
		store:        st,
		conversation: conversation,
		userID:       userID,
		userName:     userName,
		engine:       search.NewEngine(),
		configCh:     make(chan *config.Config, 1),
	}

	m.list = msglist.New(theme, userID, msglist.Hooks{
		OnSelect: func(id string, on bool) {},
		OnPin: func(id string, on bool) {
			if on {
				m.statusNote = "pinned"
			} else {
				m.statusNote = "unpinned"
			}
		},
		OnReact: func(id, emoji string, added bool) {
			if added {
				m.statusNote = "reacted " + emoji
			} else {
				m.statusNote = "removed " + emoji
			}
		},
		OnEditStart:  func(id string) { m.statusNote = "editing" },
		OnEditCancel: func(id string) { m.statusNote = "" },
	})
	m.applyConfig(cfg)

	m.compose = textinput.New()
	m.compose.Placeholder = "message"
	m.compose.Prompt = "› "
	m.compose.CharLimit = 4000

	m.searchBar = textinput.New()
	m.searchBar.Placeholder = "search"
	m.searchBar.Prompt = "/ "

	return m
}

// PushConfig hands a reloaded config to the UI. Safe to call from the
// watcher goroutine; the update loop picks it up via the config wait
// command.
func (m *Model) PushConfig(cfg *config.Config) {
	select {
	case m.configCh <- cfg:
	default:
	}
}

// applyConfig forwards the tunables to the list component.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.list.SetGroupingWindow(cfg.GroupingWindow())
	m.list.SetOverscan(cfg.List.Overscan)
	m.list.SetNearBottomRows(cfg.List.NearBottomRows)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadHistory(),
		m.waitForConfig(),
		textinput.Blink,
	)
}

// setLoaded replaces the mirror snapshot and reindexes search.
func (m *Model) setLoaded(msgs []*model.Message) {
	m.loaded = msgs
	m.engine.Index(msgs)
}
