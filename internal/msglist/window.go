// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ALIGNMENT
// =============================================================================

// Alignment positions a target entry within the viewport on an
// explicit scroll-to.
type Alignment int

const (
	AlignTop Alignment = iota
	AlignCenter
	AlignBottom
)

// =============================================================================
// WINDOW MANAGER
// =============================================================================

// FlashDuration is how long a scrolled-to entry stays visually marked.
const FlashDuration = 2 * time.Second

// DefaultNearBottomRows is the distance from the bottom edge, in rows,
// under which the list still counts as pinned to the latest message.
const DefaultNearBottomRows = 6

// DefaultOverscan is how many extra entries are materialized on each
// side of the strictly visible range.
const DefaultOverscan = 5

// WindowManager owns the scroll state of the virtualized list and
// decides which contiguous index range gets rendered. All geometry is
// in terminal rows. Heights come from a callback so the manager never
// holds entry data; positions are prefix sums over that callback.
//
// Not safe for concurrent use. The bubbletea update loop is the only
// caller.
type WindowManager struct {
	itemCount int
	heightOf  func(int) int

	viewportRows int
	scrollOffset int

	overscan       int
	nearBottomRows int

	// followBottom keeps the list glued to new messages. It is set by
	// reaching the bottom and cleared by scrolling away from it.
	followBottom bool

	// flashID marks the entry highlighted by the last explicit jump.
	flashID    string
	flashUntil time.Time

	// Deferred jump to an id that is not in the current sequence yet.
	pendingTargetID string
	pendingAlign    Alignment
}

// NewWindowManager returns a manager with default overscan and
// near-bottom threshold, following the bottom.
func NewWindowManager() *WindowManager {
	return &WindowManager{
		overscan:       DefaultOverscan,
		nearBottomRows: DefaultNearBottomRows,
		followBottom:   true,
	}
}

// SetOverscan overrides the overscan margin. Values below zero clamp
// to zero.
func (w *WindowManager) SetOverscan(n int) {
	if n < 0 {
		n = 0
	}
	w.overscan = n
}

// SetNearBottomRows overrides the near-bottom threshold.
func (w *WindowManager) SetNearBottomRows(n int) {
	if n < 1 {
		n = 1
	}
	w.nearBottomRows = n
}

// SetViewport resizes the visible area and re-clamps the offset.
func (w *WindowManager) SetViewport(rows int) {
	if rows < 0 {
		rows = 0
	}
	w.viewportRows = rows
	w.clamp()
	if w.followBottom {
		w.scrollOffset = w.maxScroll()
	}
}

// SetContent replaces the sequence geometry. wasNearBottom must be the
// near-bottom state sampled BEFORE the new content arrived; the stick
// decision depends on where the user was, not where the new content
// puts them. A pending id jump is resolved against the new sequence
// via indexOf (nil when ids are unknown).
func (w *WindowManager) SetContent(itemCount int, heightOf func(int) int, wasNearBottom bool, indexOf func(string) (int, bool)) {
	w.itemCount = itemCount
	w.heightOf = heightOf

	if w.pendingTargetID != "" && indexOf != nil {
		if i, ok := indexOf(w.pendingTargetID); ok {
			id := w.pendingTargetID
			align := w.pendingAlign
			w.pendingTargetID = ""
			w.ScrollToIndex(i, align)
			w.StartFlash(id, time.Now())
			return
		}
		// Target still absent: keep waiting, drop nothing.
	}

	// The stick decision depends only on where the reader was before
	// the content changed: anywhere inside the near-bottom threshold
	// counts, not just the exact bottom row.
	if wasNearBottom {
		w.scrollOffset = w.maxScroll()
		w.followBottom = true
	} else {
		w.clamp()
	}
}

// ItemCount reports the current sequence length.
func (w *WindowManager) ItemCount() int { return w.itemCount }

// ScrollOffset reports the first visible row.
func (w *WindowManager) ScrollOffset() int { return w.scrollOffset }

// =============================================================================
// GEOMETRY
// =============================================================================

// TotalHeight sums all entry heights.
func (w *WindowManager) TotalHeight() int {
	total := 0
	for i := 0; i < w.itemCount; i++ {
		total += w.height(i)
	}
	return total
}

// OffsetOf returns the top row of entry i, the prefix sum of all
// heights before it.
func (w *WindowManager) OffsetOf(i int) int {
	off := 0
	for j := 0; j < i && j < w.itemCount; j++ {
		off += w.height(j)
	}
	return off
}

func (w *WindowManager) height(i int) int {
	if w.heightOf == nil {
		return 1
	}
	h := w.heightOf(i)
	if h < 1 {
		h = 1
	}
	return h
}

func (w *WindowManager) maxScroll() int {
	m := w.TotalHeight() - w.viewportRows
	if m < 0 {
		m = 0
	}
	return m
}

func (w *WindowManager) clamp() {
	if w.scrollOffset > w.maxScroll() {
		w.scrollOffset = w.maxScroll()
	}
	if w.scrollOffset < 0 {
		w.scrollOffset = 0
	}
}

// =============================================================================
// WINDOW COMPUTATION
// =============================================================================

// Window returns the inclusive index range [start, end] to
// materialize: the minimal set of entries covering the viewport,
// widened by the overscan margin and clamped to the sequence. An empty
// sequence reports (0, -1).
func (w *WindowManager) Window() (start, end int) {
	if w.itemCount == 0 {
		return 0, -1
	}

	top := w.scrollOffset
	bottom := w.scrollOffset + w.viewportRows

	start = -1
	end = w.itemCount - 1
	off := 0
	for i := 0; i < w.itemCount; i++ {
		h := w.height(i)
		if start < 0 && off+h > top {
			start = i
		}
		if off >= bottom {
			end = i - 1
			break
		}
		off += h
	}
	if start < 0 {
		start = w.itemCount - 1
	}

	start -= w.overscan
	end += w.overscan
	if start < 0 {
		start = 0
	}
	if end > w.itemCount-1 {
		end = w.itemCount - 1
	}
	if end < start {
		end = start
	}
	return start, end
}

// =============================================================================
// SCROLLING
// =============================================================================

// IsNearBottom reports whether the viewport bottom is within the
// near-bottom threshold of the content end. An underfull list is
// always near the bottom.
func (w *WindowManager) IsNearBottom() bool {
	return w.TotalHeight()-(w.scrollOffset+w.viewportRows) < w.nearBottomRows
}

// FollowingBottom reports whether new content keeps the list pinned to
// the latest message.
func (w *WindowManager) FollowingBottom() bool { return w.followBottom }

// ScrollTo sets an absolute offset, clamped to the valid range, and
// updates the follow flag from the resulting position.
func (w *WindowManager) ScrollTo(offset int) {
	w.scrollOffset = offset
	w.clamp()
	w.followBottom = w.scrollOffset >= w.maxScroll()
}

// ScrollBy moves the offset by delta rows.
func (w *WindowManager) ScrollBy(delta int) {
	w.ScrollTo(w.scrollOffset + delta)
}

// ScrollToBottom jumps to the latest message and re-enables follow.
func (w *WindowManager) ScrollToBottom() {
	w.scrollOffset = w.maxScroll()
	w.followBottom = true
}

// ScrollToIndex positions entry i in the viewport per the alignment
// and clamps. Manual jumps leave follow mode unless they land at the
// bottom.
func (w *WindowManager) ScrollToIndex(i int, align Alignment) {
	if w.itemCount == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > w.itemCount-1 {
		i = w.itemCount - 1
	}

	top := w.OffsetOf(i)
	switch align {
	case AlignCenter:
		top -= (w.viewportRows - w.height(i)) / 2
	case AlignBottom:
		top -= w.viewportRows - w.height(i)
	}
	w.ScrollTo(top)
}

// =============================================================================
// FLASH
// =============================================================================

// StartFlash marks an entry as just-jumped-to; the mark expires after
// FlashDuration.
func (w *WindowManager) StartFlash(id string, now time.Time) {
	w.flashID = id
	w.flashUntil = now.Add(FlashDuration)
}

// IsFlashing reports whether the given entry currently carries the
// jump mark.
func (w *WindowManager) IsFlashing(id string, now time.Time) bool {
	return w.flashID != "" && w.flashID == id && now.Before(w.flashUntil)
}

// ClearFlash drops the mark if it belongs to the given id. Stale
// timers from an earlier jump must not clear a newer mark.
func (w *WindowManager) ClearFlash(id string) {
	if w.flashID == id {
		w.flashID = ""
	}
}

// =============================================================================
// DEFERRED JUMPS
// =============================================================================

// RequestScrollToID records a jump to a message id that may not be in
// the sequence yet (a search hit in an unloaded history page). The
// jump fires on the first SetContent whose sequence contains the id.
// Only one deferred jump is held; a newer request replaces it.
func (w *WindowManager) RequestScrollToID(id string, align Alignment) {
	w.pendingTargetID = id
	w.pendingAlign = align
}

// PendingTargetID reports the deferred jump target, empty when none.
func (w *WindowManager) PendingTargetID() string { return w.pendingTargetID }

// CancelPendingScroll drops the deferred jump.
func (w *WindowManager) CancelPendingScroll() { w.pendingTargetID = "" }

// =============================================================================
// FRAME COALESCER
// =============================================================================

// FrameCoalescer squeezes bursts of recompute triggers into at most
// one recompute per frame. The first trigger in a frame passes
// through; later ones within the same frame set a single pending slot
// that is drained on the next frame tick. There is no queue: fifty
// triggers inside one frame still cost one recompute.
type FrameCoalescer struct {
	limiter *rate.Limiter
	pending bool
}

// FrameInterval approximates a 60fps budget.
const FrameInterval = 16 * time.Millisecond

// NewFrameCoalescer returns a coalescer paced at FrameInterval.
func NewFrameCoalescer() *FrameCoalescer {
	return &FrameCoalescer{
		limiter: rate.NewLimiter(rate.Every(FrameInterval), 1),
	}
}

// Request reports whether the caller should recompute now. When the
// frame budget is spent, the trigger collapses into the pending slot
// instead.
func (f *FrameCoalescer) Request() bool {
	if f.limiter.Allow() {
		return true
	}
	f.pending = true
	return false
}

// Drain consumes the pending slot, reporting whether a deferred
// recompute is owed.
func (f *FrameCoalescer) Drain() bool {
	was := f.pending
	f.pending = false
	return was
}

// Pending reports whether a deferred recompute is waiting.
func (f *FrameCoalescer) Pending() bool { return f.pending }
