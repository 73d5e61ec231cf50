// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"time"

	"github.com/jeranaias/ripple-tui/internal/model"
	"github.com/jeranaias/ripple-tui/internal/ui/styles"
)

// =============================================================================
// LIST MODEL
// =============================================================================

// Model is the bubbletea component tying the pipeline together. The
// raw snapshot is the single source of truth; entries, heights, and
// the window are derived from it on every recompute, and renders read
// only derived state.
type Model struct {
	theme *styles.Theme

	controller *Controller
	estimator  *Estimator
	window     *WindowManager
	coalescer  *FrameCoalescer
	renderer   *ItemRenderer

	raw     []*model.Message
	entries []ProcessedEntry
	index   map[string]int

	query          string
	groupingWindow time.Duration
	currentUserID  string

	width  int
	height int
	cursor int

	// pendingNearBottom accumulates the stick decision across
	// coalesced triggers until the deferred recompute runs.
	pendingNearBottom bool
}

// New builds a list model for the given user. hooks receive
// interaction notifications; zero-value hooks are fine.
func New(theme *styles.Theme, currentUserID string, hooks Hooks) *Model {
	m := &Model{
		theme:          theme,
		controller:     NewController(hooks),
		estimator:      NewEstimator(ViewComfortable),
		window:         NewWindowManager(),
		coalescer:      NewFrameCoalescer(),
		groupingWindow: DefaultGroupingWindow,
		currentUserID:  currentUserID,
		index:          map[string]int{},
	}
	m.renderer = NewItemRenderer(theme, m.messageByID)
	return m
}

// SetGroupingWindow overrides the grouping gap, for config wiring.
func (m *Model) SetGroupingWindow(d time.Duration) {
	if d > 0 {
		m.groupingWindow = d
	}
}

// SetOverscan and SetNearBottomRows forward config to the window
// manager.
func (m *Model) SetOverscan(n int)       { m.window.SetOverscan(n) }
func (m *Model) SetNearBottomRows(n int) { m.window.SetNearBottomRows(n) }

// Controller exposes interaction state to the embedding application.
func (m *Model) Controller() *Controller { return m.controller }

// Entries returns the current processed sequence, for tests and the
// status bar.
func (m *Model) Entries() []ProcessedEntry { return m.entries }

// Query returns the active search query.
func (m *Model) Query() string { return m.query }

// ViewMode reports the current density.
func (m *Model) ViewMode() ViewMode { return m.estimator.ViewMode() }

// CursorID returns the id under the keyboard cursor, empty when the
// list is empty.
func (m *Model) CursorID() string {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return ""
	}
	return m.entries[m.cursor].ID
}

// AtTop reports whether the viewport shows the first row, which is the
// trigger for loading an older history page.
func (m *Model) AtTop() bool {
	return m.window.ScrollOffset() == 0 && len(m.entries) > 0
}

func (m *Model) messageByID(id string) (*model.Message, bool) {
	i, ok := m.index[id]
	if !ok || i >= len(m.entries) {
		return nil, false
	}
	return m.entries[i].Message, true
}

// =============================================================================
// RECOMPUTE
// =============================================================================

// recompute rebuilds the derived pipeline from the raw snapshot:
// process, reindex, re-estimate, and hand the new geometry to the
// window manager. wasNearBottom is sampled by the caller before the
// raw snapshot changed.
func (m *Model) recompute(wasNearBottom bool) {
	m.entries = Process(m.raw, Options{
		SearchQuery:    m.query,
		GroupingWindow: m.groupingWindow,
		Selected:       m.controller.Selected(),
		Pinned:         m.controller.Pinned(),
		EditingID:      m.controller.EditingID(),
		Reactions: func(msg *model.Message) model.Reactions {
			return m.controller.ApplyOverlay(msg, m.currentUserID)
		},
	})
	m.index = IndexByID(m.entries)
	m.estimator.SetEntries(m.entries)
	m.window.SetContent(len(m.entries), m.estimator.HeightOf, wasNearBottom, func(id string) (int, bool) {
		i, ok := m.index[id]
		return i, ok
	})
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor > len(m.entries)-1 {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
