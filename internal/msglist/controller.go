// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"github.com/jeranaias/ripple-tui/internal/model"
)

// =============================================================================
// FOCUS
// =============================================================================

// FocusKind enumerates the exclusive UI surfaces that can be open over
// the list.
type FocusKind int

const (
	FocusNone FocusKind = iota
	FocusReactionPicker
	FocusEditing
)

// Focus is a value, not a bundle of booleans: at most one surface is
// open at a time, and opening one closes whatever else was open.
type Focus struct {
	Kind     FocusKind
	TargetID string
}

// =============================================================================
// HOOKS
// =============================================================================

// Hooks are fire-and-forget callbacks into the embedding application.
// The controller updates its own state first and never blocks on, or
// reads results from, a hook. Nil hooks are skipped.
type Hooks struct {
	OnSelect     func(id string, selected bool)
	OnPin        func(id string, pinned bool)
	OnReact      func(id, emoji string, added bool)
	OnEditStart  func(id string)
	OnEditCancel func(id string)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns all ephemeral interaction state: selection, pins,
// expanded threads, the focus surface, and the optimistic reaction
// overlay. It holds ids only; message content lives upstream. The
// processor joins these sets into entries by id on each recompute.
//
// Not safe for concurrent use; the update loop is the only caller.
type Controller struct {
	selected map[string]struct{}
	pinned   map[string]struct{}
	expanded map[string]struct{}

	focus Focus

	// overlay holds reaction toggles not yet confirmed by the server,
	// keyed by message id then emoji. A second toggle of the same pair
	// removes the key again, so reapplying is idempotent.
	overlay map[string]map[string]bool

	hooks Hooks
}

// NewController returns an empty controller.
func NewController(hooks Hooks) *Controller {
	return &Controller{
		selected: make(map[string]struct{}),
		pinned:   make(map[string]struct{}),
		expanded: make(map[string]struct{}),
		overlay:  make(map[string]map[string]bool),
		hooks:    hooks,
	}
}

// =============================================================================
// SELECTION
// =============================================================================

// Select marks a message. Additive mode toggles membership in the
// selection set; plain mode collapses the selection to just this id.
func (c *Controller) Select(id string, additive bool) {
	if id == "" {
		return
	}
	if !additive {
		c.selected = map[string]struct{}{id: {}}
		c.fireSelect(id, true)
		return
	}
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
		c.fireSelect(id, false)
	} else {
		c.selected[id] = struct{}{}
		c.fireSelect(id, true)
	}
}

// ClearSelection empties the selection set.
func (c *Controller) ClearSelection() {
	c.selected = make(map[string]struct{})
}

// Selected returns the live selection set for the processor join.
// Callers must treat it as read-only.
func (c *Controller) Selected() map[string]struct{} { return c.selected }

// IsSelected reports membership.
func (c *Controller) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

func (c *Controller) fireSelect(id string, on bool) {
	if c.hooks.OnSelect != nil {
		c.hooks.OnSelect(id, on)
	}
}

// =============================================================================
// PINS
// =============================================================================

// TogglePin flips a message's pinned state.
func (c *Controller) TogglePin(id string) {
	if id == "" {
		return
	}
	if _, ok := c.pinned[id]; ok {
		delete(c.pinned, id)
		if c.hooks.OnPin != nil {
			c.hooks.OnPin(id, false)
		}
	} else {
		c.pinned[id] = struct{}{}
		if c.hooks.OnPin != nil {
			c.hooks.OnPin(id, true)
		}
	}
}

// Pinned returns the live pin set for the processor join. Read-only to
// callers.
func (c *Controller) Pinned() map[string]struct{} { return c.pinned }

// IsPinned reports membership.
func (c *Controller) IsPinned(id string) bool {
	_, ok := c.pinned[id]
	return ok
}

// =============================================================================
// THREADS
// =============================================================================

// ToggleThread expands or collapses the reply thread rooted at id.
func (c *Controller) ToggleThread(id string) {
	if id == "" {
		return
	}
	if _, ok := c.expanded[id]; ok {
		delete(c.expanded, id)
	} else {
		c.expanded[id] = struct{}{}
	}
}

// IsThreadExpanded reports whether the thread rooted at id is open.
func (c *Controller) IsThreadExpanded(id string) bool {
	_, ok := c.expanded[id]
	return ok
}

// =============================================================================
// FOCUS SURFACES
// =============================================================================

// Focus reports the currently open surface.
func (c *Controller) Focus() Focus { return c.focus }

// OpenReactionPicker opens the picker for a message, closing any other
// surface first.
func (c *Controller) OpenReactionPicker(id string) {
	c.closeFocus()
	c.focus = Focus{Kind: FocusReactionPicker, TargetID: id}
}

// StartEditing enters edit mode for a message, closing any other
// surface first.
func (c *Controller) StartEditing(id string) {
	c.closeFocus()
	c.focus = Focus{Kind: FocusEditing, TargetID: id}
	if c.hooks.OnEditStart != nil {
		c.hooks.OnEditStart(id)
	}
}

// CloseFocus dismisses whatever surface is open.
func (c *Controller) CloseFocus() {
	c.closeFocus()
	c.focus = Focus{}
}

func (c *Controller) closeFocus() {
	if c.focus.Kind == FocusEditing && c.hooks.OnEditCancel != nil {
		c.hooks.OnEditCancel(c.focus.TargetID)
	}
}

// EditingID returns the id being edited, empty when not editing.
func (c *Controller) EditingID() string {
	if c.focus.Kind == FocusEditing {
		return c.focus.TargetID
	}
	return ""
}

// =============================================================================
// OPTIMISTIC REACTIONS
// =============================================================================

// ToggleReaction records an optimistic reaction flip for the current
// user and fires the hook. Toggling the same (id, emoji) twice returns
// the overlay to empty, so the operation is its own inverse.
func (c *Controller) ToggleReaction(id, emoji string) {
	if id == "" || emoji == "" {
		return
	}
	byEmoji := c.overlay[id]
	if byEmoji == nil {
		byEmoji = make(map[string]bool)
		c.overlay[id] = byEmoji
	}
	if _, ok := byEmoji[emoji]; ok {
		delete(byEmoji, emoji)
		if len(byEmoji) == 0 {
			delete(c.overlay, id)
		}
	} else {
		byEmoji[emoji] = true
	}
	if c.hooks.OnReact != nil {
		_, stillToggled := byEmoji[emoji]
		c.hooks.OnReact(id, emoji, stillToggled)
	}
}

// ConfirmReactions drops the overlay for a message once the canonical
// state caught up.
func (c *Controller) ConfirmReactions(id string) {
	delete(c.overlay, id)
}

// ApplyOverlay merges a message's canonical reactions with the
// optimistic overlay for the given user. Without an overlay entry the
// canonical map is returned as-is; otherwise a copy is built and each
// toggled emoji flips the user's membership.
func (c *Controller) ApplyOverlay(m *model.Message, userID string) model.Reactions {
	byEmoji := c.overlay[m.ID]
	if len(byEmoji) == 0 {
		return m.Reactions
	}

	merged := make(model.Reactions, len(m.Reactions))
	for actor, emojis := range m.Reactions {
		merged[actor] = append([]string(nil), emojis...)
	}

	for emoji := range byEmoji {
		if containsString(merged[userID], emoji) {
			merged[userID] = removeString(merged[userID], emoji)
			if len(merged[userID]) == 0 {
				delete(merged, userID)
			}
		} else {
			merged[userID] = append(merged[userID], emoji)
		}
	}
	return merged
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(ss []string, s string) []string {
	out := ss[:0]
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
