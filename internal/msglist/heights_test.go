// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/ripple-tui/internal/model"
)

func entriesOf(msgs ...*model.Message) []ProcessedEntry {
	return Process(msgs, Options{})
}

func TestParseViewMode(t *testing.T) {
	assert.Equal(t, ViewCompact, ParseViewMode("compact"))
	assert.Equal(t, ViewSpacious, ParseViewMode("spacious"))
	assert.Equal(t, ViewComfortable, ParseViewMode("comfortable"))
	assert.Equal(t, ViewComfortable, ParseViewMode("nonsense"))
}

func TestHeightAlwaysPositive(t *testing.T) {
	empty := &model.Message{ID: "e", Timestamp: baseTime, Sender: model.Sender{ID: "alice"}}

	for _, mode := range []ViewMode{ViewCompact, ViewComfortable, ViewSpacious} {
		est := NewEstimator(mode)
		est.SetEntries(entriesOf(empty))
		assert.GreaterOrEqual(t, est.HeightOf(0), 1, "mode %s", mode)
	}
}

func TestHeightContentLines(t *testing.T) {
	// Comfortable wraps at 80 chars: 81 chars is two lines.
	short := msg("a", "alice", baseTime, strings.Repeat("x", 80))
	long := msg("b", "alice", baseTime.Add(10*time.Minute), strings.Repeat("x", 81))

	est := NewEstimator(ViewComfortable)
	est.SetEntries(entriesOf(short, long))

	assert.Equal(t, est.HeightOf(0)+1, est.HeightOf(1), "one extra wrapped line")
}

func TestHeightGroupedDiscount(t *testing.T) {
	a := msg("a", "alice", baseTime, "hello")
	b := msg("b", "alice", baseTime.Add(time.Minute), "hello")

	est := NewEstimator(ViewComfortable)
	est.SetEntries(entriesOf(a, b))

	assert.Equal(t, est.HeightOf(0)-1, est.HeightOf(1), "grouped entry drops its header row")
}

func TestHeightAttachmentBlocks(t *testing.T) {
	plain := msg("a", "alice", baseTime, "hi")

	image := msg("b", "alice", baseTime.Add(10*time.Minute), "hi")
	image.Attachments = []model.Attachment{{Kind: model.AttachmentImage, Name: "cat.png", Size: 2048}}

	file := msg("c", "alice", baseTime.Add(20*time.Minute), "hi")
	file.Attachments = []model.Attachment{{Kind: model.AttachmentFile, Name: "report.pdf", Size: 4096}}

	twoImages := msg("d", "alice", baseTime.Add(30*time.Minute), "hi")
	twoImages.Attachments = []model.Attachment{
		{Kind: model.AttachmentImage, Name: "one.png"},
		{Kind: model.AttachmentImage, Name: "two.png"},
	}

	est := NewEstimator(ViewComfortable)
	est.SetEntries(entriesOf(plain, image, file, twoImages))

	base := est.HeightOf(0)
	assert.Equal(t, base+mediaBlockRows, est.HeightOf(1), "media preview block")
	assert.Equal(t, base+fileBlockRows, est.HeightOf(2), "file row block")
	assert.Equal(t, est.HeightOf(1), est.HeightOf(3), "single block regardless of attachment count")
}

func TestHeightReactionRow(t *testing.T) {
	plain := msg("a", "alice", baseTime, "hi")
	reacted := msg("b", "alice", baseTime.Add(10*time.Minute), "hi")
	reacted.Reactions = model.Reactions{"bob": {"👍"}}

	est := NewEstimator(ViewComfortable)
	est.SetEntries(entriesOf(plain, reacted))

	assert.Equal(t, est.HeightOf(0)+reactionRowHeight, est.HeightOf(1))
}

func TestHeightCountsDisplayReactions(t *testing.T) {
	// No canonical reactions; an optimistic overlay supplies one. The
	// estimate must grow with what will be painted, not with the
	// server's view.
	plain := msg("a", "alice", baseTime, "hello")

	canonical := Process([]*model.Message{plain}, Options{})
	overlaid := Process([]*model.Message{plain}, Options{
		Reactions: func(*model.Message) model.Reactions {
			return model.Reactions{"me": {"👍"}}
		},
	})

	base := NewEstimator(ViewCompact)
	base.SetEntries(canonical)
	opt := NewEstimator(ViewCompact)
	opt.SetEntries(overlaid)

	assert.Equal(t, base.HeightOf(0)+reactionRowHeight, opt.HeightOf(0))
}

func TestHeightViewModesDiffer(t *testing.T) {
	m := msg("a", "alice", baseTime, "hello there")

	compact := NewEstimator(ViewCompact)
	compact.SetEntries(entriesOf(m))
	comfortable := NewEstimator(ViewComfortable)
	comfortable.SetEntries(entriesOf(m))
	spacious := NewEstimator(ViewSpacious)
	spacious.SetEntries(entriesOf(m))

	assert.Less(t, compact.HeightOf(0), comfortable.HeightOf(0))
	assert.Less(t, comfortable.HeightOf(0), spacious.HeightOf(0))
}

func TestViewModeSwitchFlushesCache(t *testing.T) {
	m := msg("a", "alice", baseTime, strings.Repeat("x", 90))

	est := NewEstimator(ViewComfortable)
	est.SetEntries(entriesOf(m))
	before := est.HeightOf(0)

	est.SetViewMode(ViewCompact)
	after := est.HeightOf(0)

	assert.NotEqual(t, before, after, "cached height must not survive a mode switch")
}

func TestSetEntriesFlushesCache(t *testing.T) {
	est := NewEstimator(ViewComfortable)
	est.SetEntries(entriesOf(msg("a", "alice", baseTime, strings.Repeat("x", 200))))
	tall := est.HeightOf(0)

	est.SetEntries(entriesOf(msg("a", "alice", baseTime, "short")))
	assert.Less(t, est.HeightOf(0), tall, "same index, new sequence, new height")
}

func TestHeightOutOfRange(t *testing.T) {
	est := NewEstimator(ViewComfortable)
	est.SetEntries(entriesOf(msg("a", "alice", baseTime, "hi")))

	assert.Equal(t, 0, est.HeightOf(-1))
	assert.Equal(t, 0, est.HeightOf(5))
}
