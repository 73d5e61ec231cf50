// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"github.com/jeranaias/ripple-tui/internal/model"
)

// =============================================================================
// BUBBLETEA MESSAGES
// =============================================================================

// SetMessagesMsg replaces the full raw snapshot, typically after the
// initial history load or a conversation switch.
type SetMessagesMsg struct {
	Messages []*model.Message
}

// AppendMsg delivers one newly arrived message.
type AppendMsg struct {
	Message *model.Message
}

// PrependMsg delivers an older history page loaded on demand.
type PrependMsg struct {
	Messages []*model.Message
}

// UpdateMsg replaces one message in place (an edit or a server-side
// reaction confirmation).
type UpdateMsg struct {
	Message *model.Message
}

// SearchMsg sets the live search query; empty clears highlighting.
type SearchMsg struct {
	Query string
}

// ScrollToMessageMsg jumps to a message by id. If the id is not in the
// current sequence the jump is deferred until it appears.
type ScrollToMessageMsg struct {
	ID    string
	Align Alignment
}

// SetViewModeMsg switches the list density.
type SetViewModeMsg struct {
	Mode ViewMode
}

// frameTickMsg drains the frame coalescer's pending slot.
type frameTickMsg struct{}

// flashExpireMsg clears an expired jump mark so the row repaints.
type flashExpireMsg struct {
	id string
}
