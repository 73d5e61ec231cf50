// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ripple-tui/internal/model"
	"github.com/jeranaias/ripple-tui/internal/msglist"
)

// chromeRows is the vertical space the title, status, and input bars
// take away from the list.
const chromeRows = 3

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-chromeRows, 0))
		m.compose.Width = msg.Width - 4
		m.searchBar.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setLoaded(msg.msgs)
		m.haveMore = len(msg.msgs) == m.pageSize()
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msglist.SetMessagesMsg{Messages: msg.msgs})
		return m, cmd

	case olderLoadedMsg:
		m.loadingOlder = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if len(msg.msgs) == 0 {
			m.haveMore = false
			return m, nil
		}
		m.haveMore = len(msg.msgs) == m.pageSize()
		m.setLoaded(append(append([]*model.Message{}, msg.msgs...), m.loaded...))
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msglist.PrependMsg{Messages: msg.msgs})
		return m, cmd

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.statusNote = "save failed"
		}
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg.Cfg)
		m.statusNote = "config reloaded"
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msglist.SetViewModeMsg{
			Mode: msglist.ParseViewMode(msg.Cfg.UI.ViewMode),
		})
		return m, tea.Batch(cmd, m.waitForConfig())
	}

	// Everything else (ticks, internal list messages) flows to the list.
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY DISPATCH
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeCompose:
		return m.handleComposeKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if m.list.Controller().Focus().Kind == msglist.FocusNone {
			m.quitting = true
			return m, tea.Quit
		}

	case "i", "c":
		if m.list.Controller().Focus().Kind == msglist.FocusNone {
			m.mode = modeCompose
			m.compose.Focus()
			return m, textinput.Blink
		}

	case "/":
		m.mode = modeSearch
		m.searchBar.Focus()
		return m, textinput.Blink

	case "n":
		return m, m.jumpToResult(1)
	case "N":
		return m, m.jumpToResult(-1)

	case "pgup", "b", "up", "k":
		// Hitting the top of the loaded window pulls the next history
		// page in behind the current view.
		if m.list.AtTop() && m.haveMore && !m.loadingOlder && len(m.loaded) > 0 {
			m.loadingOlder = true
			first := m.loaded[0]
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, tea.Batch(cmd, m.loadOlder(first.Timestamp, first.ID))
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.compose.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.compose.Value())
		if text == "" {
			return m, nil
		}
		m.compose.SetValue("")

		out := model.NewMessage(model.Sender{ID: m.userID, Name: m.userName}, text)
		m.setLoaded(append(m.loaded, out))

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msglist.AppendMsg{Message: out})
		return m, tea.Batch(cmd, m.persist(out))
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.searchBar.Blur()
		m.searchBar.SetValue("")
		m.results = nil
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msglist.SearchMsg{Query: ""})
		return m, cmd

	case "enter":
		m.mode = modeList
		m.searchBar.Blur()
		m.results = m.engine.MultiField(m.searchBar.Value())
		m.resultPos = -1
		return m, m.jumpToResult(1)
	}

	var inputCmd tea.Cmd
	m.searchBar, inputCmd = m.searchBar.Update(msg)

	// Live highlighting tracks every keystroke.
	var listCmd tea.Cmd
	m.list, listCmd = m.list.Update(msglist.SearchMsg{Query: m.searchBar.Value()})
	return m, tea.Batch(inputCmd, listCmd)
}

// jumpToResult cycles through the ranked hits, wrapping at both ends.
func (m *Model) jumpToResult(dir int) tea.Cmd {
	if len(m.results) == 0 {
		return nil
	}
	m.resultPos = (m.resultPos + dir + len(m.results)) % len(m.results)
	target := m.results[m.resultPos]

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msglist.ScrollToMessageMsg{
		ID:    target.ID,
		Align: msglist.AlignCenter,
	})
	return cmd
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
