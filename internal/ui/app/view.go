// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"
)

// View implements tea.Model: title bar, list, status bar, input row.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.titleBar())
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	b.WriteString("\n")
	b.WriteString(m.inputRow())
	return b.String()
}

func (m *Model) titleBar() string {
	title := "ripple · " + m.conversation
	if m.loadingOlder {
		title += " · loading history…"
	}
	return m.theme.StatusBar.Width(m.width).Render(title)
}

func (m *Model) statusBar() string {
	left := m.list.StatusLine()

	if len(m.results) > 0 {
		left += fmt.Sprintf(" · hit %d/%d", m.resultPos+1, len(m.results))
	}
	if m.statusNote != "" {
		left += " · " + m.statusNote
	}
	if m.err != nil {
		left += " · " + m.theme.FailedGlyph.Render("error: "+m.err.Error())
	}

	return m.theme.StatusBar.Width(m.width).Render(left)
}

func (m *Model) inputRow() string {
	switch m.mode {
	case modeCompose:
		return m.theme.InputPrompt.Render("") + m.compose.View()
	case modeSearch:
		return m.theme.SearchPrompt.Render("") + m.searchBar.View()
	default:
		hint := "i compose · / search · space select · p pin · r react · q quit"
		return m.theme.JumpHint.Render(hint)
	}
}
