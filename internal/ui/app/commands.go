// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ripple-tui/internal/config"
	"github.com/jeranaias/ripple-tui/internal/model"
)

const storeTimeout = 5 * time.Second

// =============================================================================
// APP MESSAGES
// =============================================================================

type historyLoadedMsg struct {
	msgs []*model.Message
	err  error
}

type olderLoadedMsg struct {
	msgs []*model.Message
	err  error
}

type savedMsg struct {
	id  string
	err error
}

// ConfigReloadedMsg carries a config picked up from the file watcher.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) loadHistory() tea.Cmd {
	if m.store == nil {
		return nil
	}
	st, conv, page := m.store, m.conversation, m.pageSize()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		msgs, err := st.LoadLatest(ctx, conv, page)
		return historyLoadedMsg{msgs: msgs, err: err}
	}
}

func (m *Model) loadOlder(before time.Time, beforeID string) tea.Cmd {
	if m.store == nil {
		return nil
	}
	st, conv, page := m.store, m.conversation, m.pageSize()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		msgs, err := st.LoadBefore(ctx, conv, before, beforeID, page)
		return olderLoadedMsg{msgs: msgs, err: err}
	}
}

func (m *Model) persist(msg *model.Message) tea.Cmd {
	if m.store == nil {
		return nil
	}
	st, conv := m.store, m.conversation
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		err := st.Append(ctx, conv, msg)
		return savedMsg{id: msg.ID, err: err}
	}
}

// waitForConfig blocks on the watcher channel; each delivery re-arms
// itself from Update.
func (m *Model) waitForConfig() tea.Cmd {
	ch := m.configCh
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Cfg: cfg}
	}
}

func (m *Model) pageSize() int {
	if m.cfg != nil && m.cfg.History.PageSize > 0 {
		return m.cfg.History.PageSize
	}
	return 200
}
