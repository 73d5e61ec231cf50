// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the message view. It detects
// the terminal's color capability once at startup.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// Message list
	SenderName    lipgloss.Style
	Timestamp     lipgloss.Style
	Body          lipgloss.Style
	SystemNotice  lipgloss.Style
	ReplyPreview  lipgloss.Style
	Attachment    lipgloss.Style
	ReactionRow   lipgloss.Style
	StatusGlyph   lipgloss.Style
	FailedGlyph   lipgloss.Style
	PinMarker     lipgloss.Style
	SelectedRow   lipgloss.Style
	HighlightRow  lipgloss.Style
	FlashRow      lipgloss.Style
	EditingMarker lipgloss.Style

	// Chrome
	StatusBar    lipgloss.Style
	SearchPrompt lipgloss.Style
	InputPrompt  lipgloss.Style
	JumpHint     lipgloss.Style
	ScrollHint   lipgloss.Style
}

// NewTheme builds the default theme.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()

	return &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: profile,

		SenderName:    lipgloss.NewStyle().Bold(true),
		Timestamp:     lipgloss.NewStyle().Foreground(TextMuted),
		Body:          lipgloss.NewStyle().Foreground(TextPrimary),
		SystemNotice:  lipgloss.NewStyle().Foreground(TextMuted).Italic(true),
		ReplyPreview:  lipgloss.NewStyle().Foreground(TextSecondary).Italic(true),
		Attachment:    lipgloss.NewStyle().Foreground(TextSecondary),
		ReactionRow:   lipgloss.NewStyle().Foreground(TextSecondary),
		StatusGlyph:   lipgloss.NewStyle().Foreground(TextMuted),
		FailedGlyph:   lipgloss.NewStyle().Foreground(Rose).Bold(true),
		PinMarker:     lipgloss.NewStyle().Foreground(Amber),
		SelectedRow:   lipgloss.NewStyle().Background(SurfaceBright),
		HighlightRow:  lipgloss.NewStyle().Background(SearchHighlightBg),
		FlashRow:      lipgloss.NewStyle().Background(FlashBg),
		EditingMarker: lipgloss.NewStyle().Foreground(Purple).Bold(true),

		StatusBar:    lipgloss.NewStyle().Foreground(TextSecondary).Background(Surface),
		SearchPrompt: lipgloss.NewStyle().Foreground(Cyan).Bold(true),
		InputPrompt:  lipgloss.NewStyle().Foreground(Purple).Bold(true),
		JumpHint:     lipgloss.NewStyle().Foreground(Cyan).Bold(true),
		ScrollHint:   lipgloss.NewStyle().Foreground(TextMuted).Italic(true),
	}
}

// SenderColor returns a stable color for a sender id. The same id
// always maps to the same palette slot.
func (t *Theme) SenderColor(senderID string) lipgloss.AdaptiveColor {
	h := fnv.New32a()
	h.Write([]byte(senderID))
	return SenderPalette[int(h.Sum32())%len(SenderPalette)]
}
