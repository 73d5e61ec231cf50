// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// STATUS TYPE
// =============================================================================

// Status represents the delivery state of a message.
type Status string

const (
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusFailed    Status = "failed"
	StatusQueued    Status = "queued"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Indicator returns a one-cell glyph for the status line.
func (s Status) Indicator() string {
	switch s {
	case StatusSending:
		return "…"
	case StatusSent:
		return "✓"
	case StatusDelivered:
		return "✓✓"
	case StatusRead:
		return "✓✓"
	case StatusFailed:
		return "✗"
	case StatusQueued:
		return "⧗"
	default:
		return "?"
	}
}

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies the author of a message.
type Sender struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"` // Reference only; never fetched here
}

// SystemSenderID marks messages generated by the system rather than a
// participant. System messages never group with neighbours.
const SystemSenderID = "system"

// IsSystem reports whether the sender is the system.
func (s Sender) IsSystem() bool {
	return s.ID == SystemSenderID
}

// =============================================================================
// ATTACHMENT TYPE
// =============================================================================

// AttachmentKind is a closed set of attachment categories. The renderer
// switches exhaustively over these; adding a kind is a compile-visible
// change, unlike string-typed media checks.
type AttachmentKind int

const (
	AttachmentNone AttachmentKind = iota
	AttachmentImage
	AttachmentVideo
	AttachmentAudio
	AttachmentFile
)

// String returns a human-readable kind name.
func (k AttachmentKind) String() string {
	switch k {
	case AttachmentImage:
		return "image"
	case AttachmentVideo:
		return "video"
	case AttachmentAudio:
		return "audio"
	case AttachmentFile:
		return "file"
	default:
		return "none"
	}
}

// IsMedia reports whether the kind renders with a preview block
// (images and videos) as opposed to a file row.
func (k AttachmentKind) IsMedia() bool {
	return k == AttachmentImage || k == AttachmentVideo
}

// Attachment is a typed media reference carried by a message.
type Attachment struct {
	Kind      AttachmentKind `json:"kind"`
	Name      string         `json:"name"`
	Size      int64          `json:"size"`
	Thumbnail string         `json:"thumbnail,omitempty"`
}

// =============================================================================
// REACTIONS TYPE
// =============================================================================

// Reactions maps a reactor identity to the emoji tokens they applied.
// A reactor may apply several distinct emoji but each at most once.
type Reactions map[string][]string

// Counts reduces the reaction map to stable {emoji, count} pairs,
// sorted by emoji for deterministic rendering.
func (r Reactions) Counts() []ReactionCount {
	if len(r) == 0 {
		return nil
	}
	tally := make(map[string]int)
	for _, emojis := range r {
		for _, e := range emojis {
			tally[e]++
		}
	}
	out := make([]ReactionCount, 0, len(tally))
	for e, n := range tally {
		out = append(out, ReactionCount{Emoji: e, Count: n})
	}
	sortReactionCounts(out)
	return out
}

// Total returns the total number of reactions across all actors.
func (r Reactions) Total() int {
	n := 0
	for _, emojis := range r {
		n += len(emojis)
	}
	return n
}

// ReactionCount is a reduced {emoji, count} pair.
type ReactionCount struct {
	Emoji string
	Count int
}

// sortReactionCounts orders pairs by emoji token. Insertion sort: the
// pair count per message is tiny.
func sortReactionCounts(rc []ReactionCount) {
	for i := 1; i < len(rc); i++ {
		for j := i; j > 0 && rc[j].Emoji < rc[j-1].Emoji; j-- {
			rc[j], rc[j-1] = rc[j-1], rc[j]
		}
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat message as supplied by the sync layer.
// It is read-only to the rendering core.
type Message struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Sender    Sender    `json:"sender"`

	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Reactions   Reactions    `json:"reactions,omitempty"`

	// ReplyTo is a weak reference to another message id. The target
	// may have been deleted; consumers must degrade, not crash.
	ReplyTo string `json:"reply_to,omitempty"`

	Status Status `json:"status"`
}

// NewMessage creates a message with a generated ID and the current time.
func NewMessage(sender Sender, content string) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Sender:    sender,
		Content:   content,
		Status:    StatusSending,
	}
}

// NewSystemMessage creates a system notice (joins, renames, pins).
func NewSystemMessage(content string) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Sender:    Sender{ID: SystemSenderID, Name: "system"},
		Content:   content,
		Status:    StatusDelivered,
	}
}

// IsSystem reports whether the message is a system notice.
func (m *Message) IsSystem() bool {
	return m.Sender.IsSystem()
}

// HasReactions reports whether any reaction is present.
func (m *Message) HasReactions() bool {
	return m.Reactions.Total() > 0
}

// AttachmentKind returns the category of the first attachment, or
// AttachmentNone. Single-preview layout: only the first attachment
// contributes a preview block regardless of count.
func (m *Message) AttachmentKind() AttachmentKind {
	if len(m.Attachments) == 0 {
		return AttachmentNone
	}
	return m.Attachments[0].Kind
}

// Malformed reports whether the message is missing fields required for
// ordering and grouping. Malformed messages are still displayed; they
// sort last and never group.
func (m *Message) Malformed() bool {
	return m.Timestamp.IsZero() || m.Sender.ID == ""
}
