// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/ripple-tui/internal/model"
	"github.com/jeranaias/ripple-tui/internal/ui/components"
	"github.com/jeranaias/ripple-tui/internal/ui/styles"
	"github.com/jeranaias/ripple-tui/internal/util"
)

// =============================================================================
// ITEM RENDERER
// =============================================================================

// ItemRenderer turns one processed entry into exactly as many terminal
// rows as the estimator promised for it. Padding or clipping to the
// estimated height keeps the painted list in agreement with the window
// manager's prefix sums.
type ItemRenderer struct {
	theme *styles.Theme
	mode  ViewMode
	width int

	// lookup resolves a reply target in the current sequence. The
	// target may be gone; the preview degrades instead of failing.
	lookup func(id string) (*model.Message, bool)
}

// NewItemRenderer builds a renderer for the given theme.
func NewItemRenderer(theme *styles.Theme, lookup func(id string) (*model.Message, bool)) *ItemRenderer {
	return &ItemRenderer{
		theme:  theme,
		mode:   ViewComfortable,
		width:  80,
		lookup: lookup,
	}
}

// SetWidth updates the render width in columns.
func (r *ItemRenderer) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	r.width = w
}

// SetViewMode updates the density.
func (r *ItemRenderer) SetViewMode(mode ViewMode) { r.mode = mode }

// Render draws one entry at exactly height rows. reactions is the
// overlay-merged map to display; cursor marks the keyboard position
// and flashing marks a just-jumped-to entry.
func (r *ItemRenderer) Render(e ProcessedEntry, height int, cursor, flashing bool, reactions model.Reactions) string {
	var lines []string

	if r.mode == ViewSpacious && !e.ShouldGroup {
		lines = append(lines, "")
	}
	if !e.ShouldGroup {
		lines = append(lines, r.headerLine(e))
	}
	if e.ReplyTo != "" {
		lines = append(lines, r.replyLine(e.ReplyTo))
	}

	lines = append(lines, r.bodyLines(e)...)
	lines = append(lines, r.attachmentLines(e)...)

	if reactions.Total() > 0 {
		lines = append(lines, r.reactionLine(reactions))
	}

	lines = fitToHeight(lines, height)

	if style, ok := r.rowStyle(e, cursor, flashing); ok {
		for i, line := range lines {
			lines[i] = style.Width(r.width).Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// rowStyle picks the background treatment for the whole entry. Flash
// wins over selection, selection over the cursor, the cursor over the
// search highlight.
func (r *ItemRenderer) rowStyle(e ProcessedEntry, cursor, flashing bool) (lipgloss.Style, bool) {
	switch {
	case flashing:
		return r.theme.FlashRow, true
	case e.IsSelected, cursor:
		return r.theme.SelectedRow, true
	case e.IsHighlighted:
		return r.theme.HighlightRow, true
	default:
		return lipgloss.Style{}, false
	}
}

// =============================================================================
// SEGMENTS
// =============================================================================

func (r *ItemRenderer) headerLine(e ProcessedEntry) string {
	if e.IsSystem() {
		return r.theme.SystemNotice.Render("· " + e.Sender.Name + " ·")
	}

	name := e.Sender.Name
	if name == "" {
		name = e.Sender.ID
	}
	if name == "" {
		name = "unknown"
	}

	parts := []string{
		r.theme.SenderName.Foreground(r.theme.SenderColor(e.Sender.ID)).Render(name),
	}

	if !e.Timestamp.IsZero() {
		parts = append(parts, r.theme.Timestamp.Render(e.Timestamp.Format("15:04")))
	} else {
		parts = append(parts, r.theme.FailedGlyph.Render("no timestamp"))
	}

	if e.Status == model.StatusFailed {
		parts = append(parts, r.theme.FailedGlyph.Render(e.Status.Indicator()+" failed"))
	} else if e.Status != "" {
		parts = append(parts, r.theme.StatusGlyph.Render(e.Status.Indicator()))
	}

	if e.IsPinned {
		parts = append(parts, r.theme.PinMarker.Render("⚑"))
	}
	if e.IsEditing {
		parts = append(parts, r.theme.EditingMarker.Render("(editing)"))
	}

	return strings.Join(parts, " ")
}

func (r *ItemRenderer) replyLine(targetID string) string {
	if r.lookup != nil {
		if target, ok := r.lookup(targetID); ok {
			excerpt := util.TruncateRunes(target.Content, 40)
			name := target.Sender.Name
			if name == "" {
				name = target.Sender.ID
			}
			return r.theme.ReplyPreview.Render("↪ " + name + ": " + excerpt)
		}
	}
	return r.theme.ReplyPreview.Render("↪ replied to a deleted message")
}

func (r *ItemRenderer) bodyLines(e ProcessedEntry) []string {
	content := e.Content
	if content == "" {
		return nil
	}

	if r.mode != ViewCompact && strings.Contains(content, "```") {
		content = components.RenderCodeBlocks(content, r.width-2)
	}

	var out []string
	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrapLine(line, r.width-2) {
			style := r.theme.Body
			if e.IsSystem() {
				style = r.theme.SystemNotice
			}
			out = append(out, style.Render(wrapped))
		}
	}
	return out
}

// attachmentLines renders the first attachment only; extra attachments
// collapse into a count suffix. The switch over kinds is exhaustive so
// a new kind fails loudly here rather than rendering nothing.
func (r *ItemRenderer) attachmentLines(e ProcessedEntry) []string {
	if len(e.Attachments) == 0 {
		return nil
	}
	a := e.Attachments[0]

	label := a.Name
	if label == "" {
		label = "attachment"
	}
	if extra := len(e.Attachments) - 1; extra > 0 {
		label = fmt.Sprintf("%s (+%d more)", label, extra)
	}

	var glyph string
	switch a.Kind {
	case model.AttachmentImage:
		glyph = "🖼"
	case model.AttachmentVideo:
		glyph = "🎞"
	case model.AttachmentAudio:
		glyph = "🎵"
	case model.AttachmentFile, model.AttachmentNone:
		glyph = "📎"
	default:
		glyph = "📎"
	}

	summary := r.theme.Attachment.Render(
		fmt.Sprintf("%s %s · %s", glyph, label, humanSize(a.Size)))

	if a.Kind.IsMedia() {
		// Preview placeholder box at the media block height.
		box := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Overlay).
			Width(min(r.width-4, 40)).
			Height(mediaBlockRows - 2).
			Align(lipgloss.Center, lipgloss.Center).
			Render(summary)
		return strings.Split(box, "\n")
	}

	row := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(false).BorderBottom(false).BorderRight(false).
		BorderForeground(styles.Overlay).
		PaddingLeft(1).
		Render(summary)
	return strings.Split(row, "\n")
}

func (r *ItemRenderer) reactionLine(reactions model.Reactions) string {
	counts := reactions.Counts()
	parts := make([]string, 0, len(counts))
	for _, rc := range counts {
		parts = append(parts, fmt.Sprintf("%s %d", rc.Emoji, rc.Count))
	}
	return r.theme.ReactionRow.Render(strings.Join(parts, "  "))
}

// =============================================================================
// HELPERS
// =============================================================================

// wrapLine breaks one logical line into width-bounded rows, splitting
// on cell width rather than bytes so wide runes never straddle a row.
func wrapLine(line string, width int) []string {
	if width < 1 {
		width = 1
	}
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var out []string
	var b strings.Builder
	w := 0
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if w+rw > width {
			out = append(out, b.String())
			b.Reset()
			w = 0
		}
		b.WriteRune(r)
		w += rw
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

// fitToHeight pads with blank rows or clips so the painted entry
// occupies exactly the estimated height.
func fitToHeight(lines []string, h int) []string {
	if h < 1 {
		h = 1
	}
	if len(lines) > h {
		return lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return lines
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
