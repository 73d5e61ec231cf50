// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"fmt"
	"unicode/utf8"

	"github.com/jeranaias/ripple-tui/internal/model"
)

// =============================================================================
// VIEW MODES
// =============================================================================

// ViewMode selects the density of the message list. It shifts the
// baseline rows and the wrap width every entry is estimated with.
type ViewMode int

const (
	ViewCompact ViewMode = iota
	ViewComfortable
	ViewSpacious
)

// ParseViewMode maps a config string to a ViewMode. Unknown values
// fall back to comfortable.
func ParseViewMode(s string) ViewMode {
	switch s {
	case "compact":
		return ViewCompact
	case "spacious":
		return ViewSpacious
	default:
		return ViewComfortable
	}
}

func (m ViewMode) String() string {
	switch m {
	case ViewCompact:
		return "compact"
	case ViewComfortable:
		return "comfortable"
	case ViewSpacious:
		return "spacious"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(m))
	}
}

// modeMetrics are the per-mode estimation constants, all in terminal
// rows except charsPerLine.
type modeMetrics struct {
	baseRows     int // header plus mode padding
	charsPerLine int // wrap width used for line estimation
	groupedDelta int // rows saved when the header is suppressed
}

func metricsFor(mode ViewMode) modeMetrics {
	switch mode {
	case ViewCompact:
		return modeMetrics{baseRows: 1, charsPerLine: 100, groupedDelta: 1}
	case ViewSpacious:
		return modeMetrics{baseRows: 3, charsPerLine: 60, groupedDelta: 1}
	default:
		return modeMetrics{baseRows: 2, charsPerLine: 80, groupedDelta: 1}
	}
}

// Attachment and reaction block sizes, mode-independent.
const (
	mediaBlockRows    = 6 // image/video preview box
	fileBlockRows     = 2 // file/audio summary row with border
	reactionRowHeight = 1
)

// =============================================================================
// HEIGHT ESTIMATOR
// =============================================================================

// Estimator computes and caches the estimated row height of each
// processed entry. The cache key is the entry index; it is valid only
// for the exact (sequence, view mode) pair it was built against, so
// any sequence or mode change flushes it wholesale.
//
// Heights are estimates by construction. The renderer pads or clips
// each entry to its estimated height so that the window manager's
// prefix sums always agree with what is painted.
type Estimator struct {
	entries []ProcessedEntry
	mode    ViewMode
	metrics modeMetrics
	cache   map[int]int
}

// NewEstimator returns an estimator with an empty sequence.
func NewEstimator(mode ViewMode) *Estimator {
	return &Estimator{
		mode:    mode,
		metrics: metricsFor(mode),
		cache:   make(map[int]int),
	}
}

// SetEntries replaces the sequence and flushes the cache. Stale
// heights from a previous sequence must never leak across, even when
// lengths and ids coincide.
func (e *Estimator) SetEntries(entries []ProcessedEntry) {
	e.entries = entries
	e.cache = make(map[int]int, len(entries))
}

// SetViewMode switches density and flushes the cache. A no-op when the
// mode is unchanged.
func (e *Estimator) SetViewMode(mode ViewMode) {
	if mode == e.mode {
		return
	}
	e.mode = mode
	e.metrics = metricsFor(mode)
	e.cache = make(map[int]int, len(e.entries))
}

// ViewMode reports the current density.
func (e *Estimator) ViewMode() ViewMode { return e.mode }

// Len reports the sequence length.
func (e *Estimator) Len() int { return len(e.entries) }

// Invalidate drops one cached height, for in-place edits that change a
// single entry's content without reordering the sequence.
func (e *Estimator) Invalidate(i int) {
	delete(e.cache, i)
}

// HeightOf returns the estimated height in rows of entry i. Always at
// least one row; out-of-range indices report zero.
func (e *Estimator) HeightOf(i int) int {
	if i < 0 || i >= len(e.entries) {
		return 0
	}
	if h, ok := e.cache[i]; ok {
		return h
	}
	h := e.estimate(&e.entries[i])
	e.cache[i] = h
	return h
}

// estimate derives an entry's height from the mode baseline, the
// grouped-header discount, wrapped content lines, a single attachment
// block, and a reaction row.
func (e *Estimator) estimate(entry *ProcessedEntry) int {
	m := e.metrics

	h := m.baseRows
	if entry.ShouldGroup {
		h -= m.groupedDelta
	}

	if entry.ReplyTo != "" {
		h++ // reply preview line
	}

	if n := utf8.RuneCountInString(entry.Content); n > 0 {
		h += (n + m.charsPerLine - 1) / m.charsPerLine
	}

	// One attachment block regardless of count; the kind picks the
	// block size.
	if k := entry.AttachmentKind(); k != model.AttachmentNone {
		if k.IsMedia() {
			h += mediaBlockRows
		} else {
			h += fileBlockRows
		}
	}

	if entry.DisplayReactions.Total() > 0 {
		h += reactionRowHeight
	}

	if h < 1 {
		h = 1
	}
	return h
}
