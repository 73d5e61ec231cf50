// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformHeights returns a height callback where every entry is h rows.
func uniformHeights(h int) func(int) int {
	return func(int) int { return h }
}

func newTestWindow(itemCount, itemRows, viewportRows int) *WindowManager {
	w := NewWindowManager()
	w.SetViewport(viewportRows)
	w.SetContent(itemCount, uniformHeights(itemRows), false, nil)
	return w
}

func TestWindowCoversViewportWithOverscan(t *testing.T) {
	// 100 items of 4 rows, a 10-row viewport at offset 0: rows 0-9
	// touch items 0, 1, and 2; overscan 5 widens that to [0, 7].
	w := newTestWindow(100, 4, 10)
	w.ScrollTo(0)

	start, end := w.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 7, end)
}

func TestWindowMidScroll(t *testing.T) {
	w := newTestWindow(100, 4, 10)
	w.SetOverscan(0)
	w.ScrollTo(42) // rows 42-51: item 10 (40-43) through item 12 (48-51)

	start, end := w.Window()
	assert.Equal(t, 10, start)
	assert.Equal(t, 12, end)
}

func TestWindowClampsAtEdges(t *testing.T) {
	w := newTestWindow(10, 4, 10)
	w.ScrollToBottom()

	start, end := w.Window()
	assert.Equal(t, 9, end, "window never exceeds the last item")
	assert.GreaterOrEqual(t, start, 0)
}

func TestWindowEmptySequence(t *testing.T) {
	w := newTestWindow(0, 1, 10)
	start, end := w.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, -1, end)
	assert.Equal(t, 0, w.TotalHeight())
}

func TestWindowSingleItemTallerThanViewport(t *testing.T) {
	w := newTestWindow(1, 50, 10)
	w.ScrollTo(20)

	start, end := w.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestOffsetsArePrefixSums(t *testing.T) {
	heights := []int{3, 1, 7, 2, 5}
	w := NewWindowManager()
	w.SetViewport(10)
	w.SetContent(len(heights), func(i int) int { return heights[i] }, false, nil)

	sum := 0
	for i, h := range heights {
		assert.Equal(t, sum, w.OffsetOf(i), "offset of item %d", i)
		sum += h
	}
	assert.Equal(t, sum, w.TotalHeight())
}

func TestScrollClamping(t *testing.T) {
	w := newTestWindow(10, 4, 10) // total 40, max scroll 30

	w.ScrollTo(-5)
	assert.Equal(t, 0, w.ScrollOffset())

	w.ScrollTo(9999)
	assert.Equal(t, 30, w.ScrollOffset())

	w.ScrollBy(-10)
	assert.Equal(t, 20, w.ScrollOffset())
}

func TestIsNearBottom(t *testing.T) {
	w := newTestWindow(10, 4, 10) // total 40, max scroll 30

	w.ScrollToBottom()
	assert.True(t, w.IsNearBottom())

	w.ScrollTo(26) // 40 - (26+10) = 4 < 6
	assert.True(t, w.IsNearBottom())

	w.ScrollTo(20) // 40 - (20+10) = 10 >= 6
	assert.False(t, w.IsNearBottom())

	short := newTestWindow(2, 2, 10)
	assert.True(t, short.IsNearBottom(), "underfull list is always near the bottom")
}

func TestAppendSticksOnlyWhenNearBottomBefore(t *testing.T) {
	w := newTestWindow(10, 4, 10)
	w.ScrollToBottom()

	// Near bottom before the append: the list follows.
	w.SetContent(11, uniformHeights(4), true, nil)
	assert.Equal(t, 44-10, w.ScrollOffset())

	// Scrolled away: the append must not move the viewport.
	w.ScrollTo(0)
	w.SetContent(12, uniformHeights(4), false, nil)
	assert.Equal(t, 0, w.ScrollOffset())
}

func TestAppendSticksWhenNearButNotAtBottom(t *testing.T) {
	w := newTestWindow(10, 4, 10) // total 40, max scroll 30

	// Within the threshold but a few rows shy of the exact bottom.
	w.ScrollTo(26)
	require.True(t, w.IsNearBottom())
	require.False(t, w.FollowingBottom())

	w.SetContent(11, uniformHeights(4), true, nil)
	assert.Equal(t, 44-10, w.ScrollOffset(), "near-bottom readers follow the append")
	assert.True(t, w.FollowingBottom())
}

func TestScrollToIndexAlignment(t *testing.T) {
	w := newTestWindow(100, 4, 10)

	w.ScrollToIndex(20, AlignTop)
	assert.Equal(t, 80, w.ScrollOffset())

	w.ScrollToIndex(20, AlignCenter)
	assert.Equal(t, 80-(10-4)/2, w.ScrollOffset())

	w.ScrollToIndex(20, AlignBottom)
	assert.Equal(t, 80-(10-4), w.ScrollOffset())

	// Out-of-range targets clamp.
	w.ScrollToIndex(-3, AlignTop)
	assert.Equal(t, 0, w.ScrollOffset())
	w.ScrollToIndex(500, AlignTop)
	assert.LessOrEqual(t, w.ScrollOffset(), 100*4-10)
}

func TestManualScrollBreaksFollow(t *testing.T) {
	w := newTestWindow(100, 4, 10)
	w.ScrollToBottom()
	assert.True(t, w.FollowingBottom())

	w.ScrollBy(-20)
	assert.False(t, w.FollowingBottom())

	w.ScrollToBottom()
	assert.True(t, w.FollowingBottom(), "reaching the bottom re-arms follow")
}

func TestFlashLifecycle(t *testing.T) {
	w := NewWindowManager()
	now := time.Now()

	w.StartFlash("m1", now)
	assert.True(t, w.IsFlashing("m1", now))
	assert.True(t, w.IsFlashing("m1", now.Add(FlashDuration-time.Millisecond)))
	assert.False(t, w.IsFlashing("m1", now.Add(FlashDuration)))
	assert.False(t, w.IsFlashing("m2", now))

	// A stale clear for an older mark must not kill a newer one.
	w.StartFlash("m2", now)
	w.ClearFlash("m1")
	assert.True(t, w.IsFlashing("m2", now))
	w.ClearFlash("m2")
	assert.False(t, w.IsFlashing("m2", now))
}

func TestDeferredScrollResolvesOnContent(t *testing.T) {
	w := newTestWindow(10, 4, 10)
	w.RequestScrollToID("future", AlignTop)
	assert.Equal(t, "future", w.PendingTargetID())

	// Content without the target keeps the request pending.
	w.SetContent(12, uniformHeights(4), false, func(string) (int, bool) { return 0, false })
	assert.Equal(t, "future", w.PendingTargetID())

	// Content containing the target fires the jump and the flash.
	w.SetContent(20, uniformHeights(4), false, func(id string) (int, bool) {
		if id == "future" {
			return 15, true
		}
		return 0, false
	})
	assert.Empty(t, w.PendingTargetID())
	assert.Equal(t, 60, w.ScrollOffset())
	assert.True(t, w.IsFlashing("future", time.Now()))
}

func TestDeferredScrollReplacedByNewerRequest(t *testing.T) {
	w := newTestWindow(10, 4, 10)
	w.RequestScrollToID("first", AlignTop)
	w.RequestScrollToID("second", AlignTop)
	assert.Equal(t, "second", w.PendingTargetID())

	w.CancelPendingScroll()
	assert.Empty(t, w.PendingTargetID())
}

func TestFrameCoalescerSingleSlot(t *testing.T) {
	f := NewFrameCoalescer()

	assert.True(t, f.Request(), "first trigger in a frame passes")

	// A burst inside the same frame collapses into one pending slot.
	for i := 0; i < 50; i++ {
		assert.False(t, f.Request())
	}
	assert.True(t, f.Pending())

	assert.True(t, f.Drain(), "one deferred recompute owed")
	assert.False(t, f.Drain(), "the slot does not queue")
}
