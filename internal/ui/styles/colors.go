// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for ripple TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Purple - Primary accent, selections, scroll indicators
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, sender names, links
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Delivered/read status, success
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Failed sends, errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Queued/pending states, pins
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceBright - Selected rows, open overlays
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#313244"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Message body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, attachment names
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Timestamps, status glyphs, hints
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// MESSAGE LIST COLORS
// =============================================================================

// SearchHighlightBg - Rows matching the active search query
var SearchHighlightBg = lipgloss.AdaptiveColor{Light: "#FEF3C7", Dark: "#45403D"}

// FlashBg - Transient highlight after a scroll-to-message jump
var FlashBg = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A5F"}

// SenderPalette colors sender names; a sender id hashes to a stable slot.
var SenderPalette = []lipgloss.AdaptiveColor{
	{Light: "#0891B2", Dark: "#22D3EE"},
	{Light: "#7C3AED", Dark: "#A78BFA"},
	{Light: "#059669", Dark: "#34D399"},
	{Light: "#D97706", Dark: "#FBBF24"},
	{Light: "#E11D48", Dark: "#FB7185"},
	{Light: "#2563EB", Dark: "#60A5FA"},
}
