// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ripple-tui/internal/model"
)

// pickerEmojis are the quick-reaction choices bound to digit keys
// while the picker is open.
var pickerEmojis = []string{"👍", "❤️", "😂", "🎉", "👀"}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// SetSize tells the list how many columns and rows it owns. The parent
// model calls this from its own WindowSizeMsg handling after carving
// out the chrome.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.renderer.SetWidth(width)
	m.window.SetViewport(height)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model for the list component.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case SetMessagesMsg:
		near := m.window.IsNearBottom()
		m.raw = msg.Messages
		return m, m.scheduleRecompute(near)

	case AppendMsg:
		if msg.Message == nil {
			return m, nil
		}
		// The stick decision uses the position before the append: a
		// reader near the bottom follows new messages, a reader deep
		// in history is never yanked down.
		near := m.window.IsNearBottom()
		m.raw = append(m.raw, msg.Message)
		return m, m.scheduleRecompute(near)

	case PrependMsg:
		return m, m.handlePrepend(msg.Messages)

	case UpdateMsg:
		if msg.Message == nil {
			return m, nil
		}
		near := m.window.IsNearBottom()
		m.replaceMessage(msg.Message)
		m.controller.ConfirmReactions(msg.Message.ID)
		return m, m.scheduleRecompute(near)

	case SearchMsg:
		m.query = msg.Query
		return m, m.scheduleRecompute(m.window.IsNearBottom())

	case ScrollToMessageMsg:
		return m, m.handleScrollTo(msg)

	case SetViewModeMsg:
		near := m.window.IsNearBottom()
		m.estimator.SetViewMode(msg.Mode)
		m.renderer.SetViewMode(msg.Mode)
		m.window.SetContent(len(m.entries), m.estimator.HeightOf, near, m.indexOf)
		return m, nil

	case frameTickMsg:
		if m.coalescer.Drain() {
			near := m.pendingNearBottom
			m.pendingNearBottom = false
			return m, m.recomputeNow(near)
		}
		return m, nil

	case flashExpireMsg:
		m.window.ClearFlash(msg.id)
		return m, nil
	}

	return m, nil
}

func (m *Model) indexOf(id string) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// =============================================================================
// KEYS
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.controller.Focus().Kind == FocusReactionPicker {
		return m.handlePickerKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup", "b":
		m.window.ScrollBy(-m.height)
	case "pgdown", "f":
		m.window.ScrollBy(m.height)
	case "home", "g":
		m.cursor = 0
		m.window.ScrollTo(0)
	case "end", "G":
		m.cursor = len(m.entries) - 1
		m.clampCursor()
		m.window.ScrollToBottom()

	case " ":
		m.controller.Select(m.CursorID(), false)
		return m.scheduleRecompute(m.window.IsNearBottom())
	case "x":
		m.controller.Select(m.CursorID(), true)
		return m.scheduleRecompute(m.window.IsNearBottom())
	case "p":
		if id := m.CursorID(); id != "" {
			m.controller.TogglePin(id)
			return m.scheduleRecompute(m.window.IsNearBottom())
		}
	case "r":
		if id := m.CursorID(); id != "" {
			m.controller.OpenReactionPicker(id)
		}
	case "e":
		if id := m.CursorID(); id != "" && !m.isSystemID(id) {
			m.controller.StartEditing(id)
			return m.scheduleRecompute(m.window.IsNearBottom())
		}
	case "t":
		if id := m.CursorID(); id != "" {
			m.controller.ToggleThread(id)
		}

	case "esc":
		if m.controller.Focus().Kind != FocusNone {
			m.controller.CloseFocus()
		} else {
			m.controller.ClearSelection()
		}
		return m.scheduleRecompute(m.window.IsNearBottom())
	}
	return nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	target := m.controller.Focus().TargetID

	switch s := msg.String(); s {
	case "esc", "q":
		m.controller.CloseFocus()
		return nil
	case "1", "2", "3", "4", "5":
		i := int(s[0] - '1')
		m.controller.ToggleReaction(target, pickerEmojis[i])
		m.controller.CloseFocus()
		// Reaction rows change entry heights, so a recompute is due.
		return m.scheduleRecompute(m.window.IsNearBottom())
	}
	return nil
}

func (m *Model) isSystemID(id string) bool {
	msg, ok := m.messageByID(id)
	return ok && msg.IsSystem()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls just enough to bring the cursor entry
// fully into view.
func (m *Model) ensureCursorVisible() {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return
	}
	top := m.window.OffsetOf(m.cursor)
	bottom := top + m.estimator.HeightOf(m.cursor)

	switch {
	case top < m.window.ScrollOffset():
		m.window.ScrollToIndex(m.cursor, AlignTop)
	case bottom > m.window.ScrollOffset()+m.height:
		m.window.ScrollToIndex(m.cursor, AlignBottom)
	}
}

// =============================================================================
// SNAPSHOT CHANGES
// =============================================================================

// handlePrepend inserts an older history page and re-anchors the
// scroll so the entry the reader was looking at stays put.
func (m *Model) handlePrepend(older []*model.Message) tea.Cmd {
	if len(older) == 0 {
		return nil
	}

	anchorID := ""
	anchorDelta := 0
	if start, end := m.window.Window(); end >= start && start < len(m.entries) {
		anchorID = m.entries[start].ID
		anchorDelta = m.window.ScrollOffset() - m.window.OffsetOf(start)
	}

	m.raw = append(append([]*model.Message{}, older...), m.raw...)
	m.recompute(false)

	if i, ok := m.index[anchorID]; ok {
		m.window.ScrollTo(m.window.OffsetOf(i) + anchorDelta)
	}
	return nil
}

func (m *Model) replaceMessage(updated *model.Message) {
	for i, raw := range m.raw {
		if raw.ID == updated.ID {
			m.raw[i] = updated
			return
		}
	}
	m.raw = append(m.raw, updated)
}

func (m *Model) handleScrollTo(msg ScrollToMessageMsg) tea.Cmd {
	if msg.ID == "" {
		return nil
	}
	if i, ok := m.index[msg.ID]; ok {
		m.window.ScrollToIndex(i, msg.Align)
		m.window.StartFlash(msg.ID, time.Now())
		m.cursor = i
		return flashExpiry(msg.ID)
	}
	// Not loaded yet; the jump fires once a snapshot contains the id.
	m.window.RequestScrollToID(msg.ID, msg.Align)
	return nil
}

// =============================================================================
// RECOMPUTE SCHEDULING
// =============================================================================

// scheduleRecompute runs the pipeline now if the frame budget allows,
// otherwise collapses the trigger into the coalescer's single pending
// slot and arms a frame tick to drain it.
func (m *Model) scheduleRecompute(wasNearBottom bool) tea.Cmd {
	if m.coalescer.Request() {
		return m.recomputeNow(wasNearBottom)
	}
	m.pendingNearBottom = m.pendingNearBottom || wasNearBottom
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg { return frameTickMsg{} })
}

// recomputeNow runs the pipeline and, if it resolved a deferred jump,
// arms the flash expiry.
func (m *Model) recomputeNow(wasNearBottom bool) tea.Cmd {
	pendingBefore := m.window.PendingTargetID()
	m.recompute(wasNearBottom)
	if pendingBefore != "" && m.window.PendingTargetID() == "" {
		if i, ok := m.index[pendingBefore]; ok {
			m.cursor = i
		}
		return flashExpiry(pendingBefore)
	}
	return nil
}

func flashExpiry(id string) tea.Cmd {
	return tea.Tick(FlashDuration+50*time.Millisecond, func(time.Time) tea.Msg {
		return flashExpireMsg{id: id}
	})
}
