// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// VIEW
// =============================================================================

// View paints exactly m.height rows. Only the windowed entries are
// rendered; their joined rows are then sliced to the viewport so
// partially visible entries clip instead of jumping.
func (m *Model) View() string {
	if m.height <= 0 {
		return ""
	}
	if len(m.entries) == 0 {
		return m.emptyView()
	}

	start, end := m.window.Window()
	if end < start {
		return m.emptyView()
	}

	now := time.Now()
	var rows []string
	for i := start; i <= end; i++ {
		e := m.entries[i]
		rendered := m.renderer.Render(
			e,
			m.estimator.HeightOf(i),
			i == m.cursor,
			m.window.IsFlashing(e.ID, now),
			e.DisplayReactions,
		)
		rows = append(rows, strings.Split(rendered, "\n")...)
	}

	// Slice the materialized rows to the viewport. The window starts
	// at entry start, so the viewport top sits at scrollOffset minus
	// that entry's document offset.
	top := m.window.ScrollOffset() - m.window.OffsetOf(start)
	if top < 0 {
		top = 0
	}
	if top > len(rows) {
		top = len(rows)
	}
	bottom := top + m.height
	if bottom > len(rows) {
		bottom = len(rows)
	}
	visible := rows[top:bottom]

	out := make([]string, m.height)
	copy(out, visible)

	if !m.window.IsNearBottom() && m.height > 0 {
		out[m.height-1] = m.theme.ScrollHint.Render(m.scrollHint())
	}

	return strings.Join(out, "\n")
}

func (m *Model) emptyView() string {
	blank := make([]string, m.height)
	if m.height > 0 {
		blank[m.height/2] = m.theme.ScrollHint.Render("no messages yet")
	}
	return strings.Join(blank, "\n")
}

// scrollHint summarizes where the reader is while scrolled away from
// the live edge.
func (m *Model) scrollHint() string {
	below := m.window.TotalHeight() - (m.window.ScrollOffset() + m.height)
	if below < 0 {
		below = 0
	}
	return fmt.Sprintf("↓ %d rows below · G for latest", below)
}

// StatusLine summarizes list state for the parent's status bar.
func (m *Model) StatusLine() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d messages", len(m.entries)))
	if n := len(m.controller.Selected()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if m.query != "" {
		hits := 0
		for _, e := range m.entries {
			if e.IsHighlighted {
				hits++
			}
		}
		parts = append(parts, fmt.Sprintf("%d hits for %q", hits, m.query))
	}
	parts = append(parts, m.ViewMode().String())
	return strings.Join(parts, " · ")
}
