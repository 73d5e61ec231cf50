// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"sort"
	"time"

	"github.com/jeranaias/ripple-tui/internal/model"
	"github.com/jeranaias/ripple-tui/internal/search"
)

// =============================================================================
// PROCESSED ENTRY
// =============================================================================

// ProcessedEntry is a message annotated with render-relevant derived
// flags. Entries are rebuilt wholesale by Process on every input
// change and never mutated afterwards.
type ProcessedEntry struct {
	*model.Message

	// ShouldGroup is true when this entry renders without a repeated
	// header because it continues the previous entry from the same
	// sender within the grouping window.
	ShouldGroup bool

	// IsHighlighted is true when the content or sender name matches
	// the active search query.
	IsHighlighted bool

	// Ephemeral flags joined in from the interaction controller.
	IsSelected bool
	IsPinned   bool
	IsEditing  bool

	// DisplayReactions is the reaction set to estimate and render:
	// canonical reactions merged with any optimistic overlay. Height
	// and paint must read the same map or a toggle that crosses zero
	// clips its own row.
	DisplayReactions model.Reactions

	// Malformed marks entries missing ordering fields; they sort last
	// and never group.
	Malformed bool
}

// =============================================================================
// OPTIONS
// =============================================================================

// DefaultGroupingWindow is the maximum gap between consecutive
// same-sender messages for them to render as one group.
const DefaultGroupingWindow = 5 * time.Minute

// Options carries the inputs that shape a processed sequence beyond
// the raw messages themselves.
type Options struct {
	// SearchQuery highlights matching entries when non-empty.
	SearchQuery string

	// GroupingWindow defaults to DefaultGroupingWindow when zero.
	GroupingWindow time.Duration

	// Ephemeral id sets from the interaction controller. Lookups are
	// O(1); Process never scans these.
	Selected map[string]struct{}
	Pinned   map[string]struct{}

	// EditingID marks at most one entry as being edited.
	EditingID string

	// Reactions maps a message to the reaction set to display, letting
	// the caller merge optimistic toggles in. Nil means canonical.
	Reactions func(*model.Message) model.Reactions
}

func (o Options) groupingWindow() time.Duration {
	if o.GroupingWindow <= 0 {
		return DefaultGroupingWindow
	}
	return o.GroupingWindow
}

// =============================================================================
// PROCESS
// =============================================================================

// Process sorts, groups, and annotates a raw message snapshot into a
// render-ready sequence. Pure: the input slice is not mutated, the
// result depends only on the arguments, and calling it on every render
// tick is safe.
//
// Ordering is a total order by (timestamp, id); the id tiebreak keeps
// the sequence deterministic when timestamps collide. Malformed
// messages sort after all well-formed ones, again id-ordered.
func Process(raw []*model.Message, opts Options) []ProcessedEntry {
	entries := make([]ProcessedEntry, 0, len(raw))
	for _, m := range raw {
		if m == nil {
			continue
		}
		entries = append(entries, ProcessedEntry{
			Message:   m,
			Malformed: m.Malformed(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Malformed != b.Malformed {
			return !a.Malformed
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.ID < b.ID
	})

	window := opts.groupingWindow()
	for i := range entries {
		e := &entries[i]

		if i > 0 {
			e.ShouldGroup = shouldGroup(&entries[i-1], e, window)
		}

		if opts.SearchQuery != "" {
			e.IsHighlighted = search.ContainsFold(e.Content, opts.SearchQuery) ||
				search.ContainsFold(e.Sender.Name, opts.SearchQuery)
		}

		if opts.Selected != nil {
			_, e.IsSelected = opts.Selected[e.ID]
		}
		if opts.Pinned != nil {
			_, e.IsPinned = opts.Pinned[e.ID]
		}
		e.IsEditing = opts.EditingID != "" && e.ID == opts.EditingID

		if opts.Reactions != nil {
			e.DisplayReactions = opts.Reactions(e.Message)
		} else {
			e.DisplayReactions = e.Reactions
		}
	}

	return entries
}

// shouldGroup decides whether curr continues prev's group. Grouping is
// computed only against the immediately preceding entry; it never
// propagates across a non-grouped boundary.
func shouldGroup(prev, curr *ProcessedEntry, window time.Duration) bool {
	if prev.Malformed || curr.Malformed {
		return false
	}
	if prev.Sender.ID != curr.Sender.ID {
		return false
	}
	if prev.IsSystem() || curr.IsSystem() {
		return false
	}
	if prev.ReplyTo != "" || curr.ReplyTo != "" {
		return false
	}
	gap := curr.Timestamp.Sub(prev.Timestamp)
	return gap >= 0 && gap < window
}

// IndexByID builds an id → index lookup for a processed sequence.
// Rebuilt alongside the sequence; indices are only valid for the
// snapshot they were built from.
func IndexByID(entries []ProcessedEntry) map[string]int {
	idx := make(map[string]int, len(entries))
	for i, e := range entries {
		idx[e.ID] = i
	}
	return idx
}
