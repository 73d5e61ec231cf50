// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/ripple-tui/internal/model"
)

func TestSelectSingleCollapses(t *testing.T) {
	c := NewController(Hooks{})

	c.Select("a", false)
	c.Select("b", false)

	assert.False(t, c.IsSelected("a"))
	assert.True(t, c.IsSelected("b"))
	assert.Len(t, c.Selected(), 1)
}

func TestSelectAdditiveToggles(t *testing.T) {
	c := NewController(Hooks{})

	c.Select("a", true)
	c.Select("b", true)
	assert.Len(t, c.Selected(), 2)

	c.Select("a", true)
	assert.False(t, c.IsSelected("a"))
	assert.True(t, c.IsSelected("b"))

	c.ClearSelection()
	assert.Empty(t, c.Selected())
}

func TestTogglePin(t *testing.T) {
	c := NewController(Hooks{})

	c.TogglePin("a")
	assert.True(t, c.IsPinned("a"))
	c.TogglePin("a")
	assert.False(t, c.IsPinned("a"))
}

func TestFocusSurfacesAreExclusive(t *testing.T) {
	c := NewController(Hooks{})

	c.OpenReactionPicker("a")
	assert.Equal(t, Focus{Kind: FocusReactionPicker, TargetID: "a"}, c.Focus())

	// Opening another surface closes the first.
	c.StartEditing("b")
	assert.Equal(t, Focus{Kind: FocusEditing, TargetID: "b"}, c.Focus())
	assert.Equal(t, "b", c.EditingID())

	c.OpenReactionPicker("c")
	assert.Equal(t, FocusReactionPicker, c.Focus().Kind)
	assert.Empty(t, c.EditingID())

	c.CloseFocus()
	assert.Equal(t, Focus{}, c.Focus())
}

func TestEditHooksFire(t *testing.T) {
	var started, cancelled []string
	c := NewController(Hooks{
		OnEditStart:  func(id string) { started = append(started, id) },
		OnEditCancel: func(id string) { cancelled = append(cancelled, id) },
	})

	c.StartEditing("a")
	c.StartEditing("b") // implicitly cancels a
	c.CloseFocus()

	assert.Equal(t, []string{"a", "b"}, started)
	assert.Equal(t, []string{"a", "b"}, cancelled)
}

func TestToggleReactionIsItsOwnInverse(t *testing.T) {
	c := NewController(Hooks{})
	m := &model.Message{ID: "m1", Reactions: model.Reactions{"bob": {"👍"}}}

	c.ToggleReaction("m1", "❤️")
	once := c.ApplyOverlay(m, "alice")
	assert.Contains(t, once["alice"], "❤️")

	c.ToggleReaction("m1", "❤️")
	twice := c.ApplyOverlay(m, "alice")
	assert.Equal(t, m.Reactions, twice, "double toggle restores canonical state")
}

func TestApplyOverlayRemovesExistingReaction(t *testing.T) {
	c := NewController(Hooks{})
	m := &model.Message{ID: "m1", Reactions: model.Reactions{
		"alice": {"👍", "❤️"},
		"bob":   {"👍"},
	}}

	// Alice already has 👍 canonically; the optimistic toggle removes it.
	c.ToggleReaction("m1", "👍")
	merged := c.ApplyOverlay(m, "alice")

	assert.NotContains(t, merged["alice"], "👍")
	assert.Contains(t, merged["alice"], "❤️")
	assert.Contains(t, merged["bob"], "👍", "other actors untouched")

	// Canonical map itself never mutates.
	assert.Equal(t, []string{"👍", "❤️"}, m.Reactions["alice"])
}

func TestApplyOverlayWithoutOverlayReturnsCanonical(t *testing.T) {
	c := NewController(Hooks{})
	m := &model.Message{ID: "m1", Reactions: model.Reactions{"bob": {"🎉"}}}

	merged := c.ApplyOverlay(m, "alice")
	assert.Equal(t, m.Reactions, merged)
}

func TestConfirmReactionsDropsOverlay(t *testing.T) {
	c := NewController(Hooks{})
	m := &model.Message{ID: "m1"}

	c.ToggleReaction("m1", "👍")
	c.ConfirmReactions("m1")

	assert.Equal(t, m.Reactions, c.ApplyOverlay(m, "alice"))
}

func TestReactionHookReportsDirection(t *testing.T) {
	type call struct {
		id, emoji string
		added     bool
	}
	var calls []call
	c := NewController(Hooks{
		OnReact: func(id, emoji string, added bool) {
			calls = append(calls, call{id, emoji, added})
		},
	})

	c.ToggleReaction("m1", "👍")
	c.ToggleReaction("m1", "👍")

	assert.Equal(t, []call{
		{"m1", "👍", true},
		{"m1", "👍", false},
	}, calls)
}

func TestToggleThread(t *testing.T) {
	c := NewController(Hooks{})

	c.ToggleThread("root")
	assert.True(t, c.IsThreadExpanded("root"))
	c.ToggleThread("root")
	assert.False(t, c.IsThreadExpanded("root"))
}

func TestControllerIgnoresEmptyIDs(t *testing.T) {
	c := NewController(Hooks{})

	c.Select("", false)
	c.TogglePin("")
	c.ToggleReaction("", "👍")
	c.ToggleReaction("m1", "")

	assert.Empty(t, c.Selected())
	assert.Empty(t, c.Pinned())
	m := &model.Message{ID: "m1"}
	assert.Equal(t, m.Reactions, c.ApplyOverlay(m, "alice"))
}
