// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/ripple-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound = errors.New("message not found")
	ErrClosed   = errors.New("store is closed")
)

// =============================================================================
// HISTORY STORE
// =============================================================================

// HistoryStore persists chat messages in SQLite. Attachments and
// reactions are stored as JSON columns; ordering columns (timestamp,
// id) are first-class so pagination happens in SQL.
type HistoryStore struct {
	db *sql.DB
}

// Open opens (or creates) a history database at the given path.
func Open(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	s := &HistoryStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *HistoryStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id            TEXT PRIMARY KEY,
		conversation  TEXT NOT NULL,
		ts            INTEGER NOT NULL,
		sender_id     TEXT NOT NULL,
		sender_name   TEXT NOT NULL,
		sender_avatar TEXT NOT NULL DEFAULT '',
		content       TEXT NOT NULL DEFAULT '',
		attachments   TEXT NOT NULL DEFAULT '[]',
		reactions     TEXT NOT NULL DEFAULT '{}',
		reply_to      TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'sent'
	);
	CREATE INDEX IF NOT EXISTS idx_messages_order
		ON messages(conversation, ts, id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// Append inserts or replaces a message. Upsert semantics: the sync
// layer may redeliver a message with updated status or reactions.
func (s *HistoryStore) Append(ctx context.Context, conversation string, m *model.Message) error {
	if s.db == nil {
		return ErrClosed
	}

	attachments, err := json.Marshal(m.Attachments)
	if err != nil {
		return fmt.Errorf("encode attachments: %w", err)
	}
	reactions, err := json.Marshal(m.Reactions)
	if err != nil {
		return fmt.Errorf("encode reactions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages
			(id, conversation, ts, sender_id, sender_name, sender_avatar,
			 content, attachments, reactions, reply_to, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			attachments = excluded.attachments,
			reactions = excluded.reactions,
			status = excluded.status`,
		m.ID, conversation, m.Timestamp.UnixMicro(),
		m.Sender.ID, m.Sender.Name, m.Sender.Avatar,
		m.Content, string(attachments), string(reactions),
		m.ReplyTo, string(m.Status))
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// Delete removes a message by id.
func (s *HistoryStore) Delete(ctx context.Context, id string) error {
	if s.db == nil {
		return ErrClosed
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// LoadLatest returns the newest limit messages of a conversation in
// ascending (timestamp, id) order — ready for the message processor.
func (s *HistoryStore) LoadLatest(ctx context.Context, conversation string, limit int) ([]*model.Message, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, sender_id, sender_name, sender_avatar,
		       content, attachments, reactions, reply_to, status
		FROM messages
		WHERE conversation = ?
		ORDER BY ts DESC, id DESC
		LIMIT ?`, conversation, limit)
	if err != nil {
		return nil, fmt.Errorf("load latest: %w", err)
	}
	defer rows.Close()

	msgs, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}
	reverse(msgs)
	return msgs, nil
}

// LoadBefore returns up to limit messages strictly older than the
// given (timestamp, id) cursor, ascending. Used for "load more
// history" when the user scrolls to the top.
func (s *HistoryStore) LoadBefore(ctx context.Context, conversation string, before time.Time, beforeID string, limit int) ([]*model.Message, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, sender_id, sender_name, sender_avatar,
		       content, attachments, reactions, reply_to, status
		FROM messages
		WHERE conversation = ? AND (ts < ? OR (ts = ? AND id < ?))
		ORDER BY ts DESC, id DESC
		LIMIT ?`,
		conversation, before.UnixMicro(), before.UnixMicro(), beforeID, limit)
	if err != nil {
		return nil, fmt.Errorf("load before: %w", err)
	}
	defer rows.Close()

	msgs, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}
	reverse(msgs)
	return msgs, nil
}

// Count returns the number of stored messages in a conversation.
func (s *HistoryStore) Count(ctx context.Context, conversation string) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE conversation = ?`, conversation).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// =============================================================================
// ROW SCANNING
// =============================================================================

func scanMessages(rows *sql.Rows) ([]*model.Message, error) {
	var msgs []*model.Message
	for rows.Next() {
		var (
			m           model.Message
			ts          int64
			attachments string
			reactions   string
			status      string
		)
		if err := rows.Scan(&m.ID, &ts, &m.Sender.ID, &m.Sender.Name,
			&m.Sender.Avatar, &m.Content, &attachments, &reactions,
			&m.ReplyTo, &status); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Timestamp = time.UnixMicro(ts)
		m.Status = model.Status(status)
		if err := json.Unmarshal([]byte(attachments), &m.Attachments); err != nil {
			// Corrupt JSON degrades to no attachments, not a load failure.
			m.Attachments = nil
		}
		if err := json.Unmarshal([]byte(reactions), &m.Reactions); err != nil {
			m.Reactions = nil
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

func reverse(msgs []*model.Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}
