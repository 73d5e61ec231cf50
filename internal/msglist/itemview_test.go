// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package msglist

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/ripple-tui/internal/model"
	"github.com/jeranaias/ripple-tui/internal/ui/styles"
)

func newTestRenderer(lookup func(string) (*model.Message, bool)) *ItemRenderer {
	r := NewItemRenderer(styles.NewTheme(), lookup)
	r.SetWidth(80)
	return r
}

func renderRows(r *ItemRenderer, e ProcessedEntry, h int) []string {
	return strings.Split(r.Render(e, h, false, false, e.Reactions), "\n")
}

func TestRenderOccupiesExactHeight(t *testing.T) {
	r := newTestRenderer(nil)
	e := Process([]*model.Message{msg("a", "alice", baseTime, "hello")}, Options{})[0]

	for _, h := range []int{1, 3, 8} {
		rows := renderRows(r, e, h)
		if len(rows) != h {
			t.Errorf("height %d: painted %d rows", h, len(rows))
		}
	}
}

func TestRenderGroupedOmitsHeader(t *testing.T) {
	r := newTestRenderer(nil)
	entries := Process([]*model.Message{
		msg("a", "alice", baseTime, "first"),
		msg("b", "alice", baseTime.Add(time.Minute), "second"),
	}, Options{})

	full := r.Render(entries[0], 3, false, false, nil)
	grouped := r.Render(entries[1], 2, false, false, nil)

	if !strings.Contains(full, "alice") {
		t.Error("ungrouped entry must show the sender")
	}
	if strings.Contains(grouped, "alice") {
		t.Error("grouped entry must not repeat the sender header")
	}
	if !strings.Contains(grouped, "second") {
		t.Error("grouped entry still shows its content")
	}
}

func TestRenderReplyPreviewDegrades(t *testing.T) {
	target := msg("orig", "bob", baseTime, "the original point being made here")
	lookup := func(id string) (*model.Message, bool) {
		if id == "orig" {
			return target, true
		}
		return nil, false
	}
	r := newTestRenderer(lookup)

	reply := msg("r1", "alice", baseTime.Add(time.Minute), "agreed")
	reply.ReplyTo = "orig"
	e := Process([]*model.Message{reply}, Options{})[0]

	out := r.Render(e, 4, false, false, nil)
	if !strings.Contains(out, "bob") {
		t.Error("reply preview should name the original sender")
	}

	gone := msg("r2", "alice", baseTime.Add(2*time.Minute), "what thread?")
	gone.ReplyTo = "deleted-id"
	e2 := Process([]*model.Message{gone}, Options{})[0]

	out2 := r.Render(e2, 4, false, false, nil)
	if !strings.Contains(out2, "deleted") {
		t.Error("missing reply target must degrade to a notice, not crash")
	}
}

func TestRenderFailedStatus(t *testing.T) {
	r := newTestRenderer(nil)
	failed := msg("a", "alice", baseTime, "did this send?")
	failed.Status = model.StatusFailed
	e := Process([]*model.Message{failed}, Options{})[0]

	out := r.Render(e, 3, false, false, nil)
	if !strings.Contains(out, "failed") {
		t.Error("failed delivery must be visible inline")
	}
}

func TestRenderMalformedTimestamp(t *testing.T) {
	r := newTestRenderer(nil)
	bad := &model.Message{ID: "x", Sender: model.Sender{ID: "alice", Name: "alice"}, Content: "odd one"}
	e := Process([]*model.Message{bad}, Options{})[0]

	out := r.Render(e, 3, false, false, nil)
	if !strings.Contains(out, "no timestamp") {
		t.Error("malformed entries render with a visible marker")
	}
	if !strings.Contains(out, "odd one") {
		t.Error("malformed entries still show their content")
	}
}

func TestRenderReactionRow(t *testing.T) {
	r := newTestRenderer(nil)
	m := msg("a", "alice", baseTime, "popular take")
	m.Reactions = model.Reactions{"bob": {"👍"}, "carol": {"👍", "🎉"}}
	e := Process([]*model.Message{m}, Options{})[0]

	out := r.Render(e, 4, false, false, m.Reactions)
	if !strings.Contains(out, "👍 2") {
		t.Errorf("reaction counts should aggregate, got %q", out)
	}
	if !strings.Contains(out, "🎉 1") {
		t.Error("every emoji gets its count")
	}
}

func TestRenderAttachmentSummary(t *testing.T) {
	r := newTestRenderer(nil)
	m := msg("a", "alice", baseTime, "see attached")
	m.Attachments = []model.Attachment{
		{Kind: model.AttachmentFile, Name: "report.pdf", Size: 5 << 10},
		{Kind: model.AttachmentFile, Name: "appendix.pdf", Size: 1 << 10},
	}
	e := Process([]*model.Message{m}, Options{})[0]

	out := r.Render(e, 6, false, false, nil)
	if !strings.Contains(out, "report.pdf") {
		t.Error("first attachment named")
	}
	if !strings.Contains(out, "+1 more") {
		t.Error("extra attachments collapse into a count")
	}
	if !strings.Contains(out, "5.0 KB") {
		t.Error("size rendered human-readable")
	}
}

func TestWrapLineWideRunes(t *testing.T) {
	rows := wrapLine(strings.Repeat("界", 10), 7) // each rune is 2 cells
	for i, row := range rows {
		if w := len([]rune(row)); w > 3 {
			t.Errorf("row %d holds %d wide runes, max 3 fit in 7 cells", i, w)
		}
	}
	if len(rows) != 4 {
		t.Errorf("20 cells at 7 per row needs 4 rows, got %d", len(rows))
	}
}

func TestHumanSize(t *testing.T) {
	cases := map[int64]string{
		512:     "512 B",
		2048:    "2.0 KB",
		5 << 20: "5.0 MB",
	}
	for n, want := range cases {
		if got := humanSize(n); got != want {
			t.Errorf("humanSize(%d) = %q, want %q", n, got, want)
		}
	}
}
