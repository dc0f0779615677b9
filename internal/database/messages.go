package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrQuerySyntax is returned by SearchMessages when the full-text engine
// rejects the query. It is user-correctable and must not be treated as a
// store failure.
var ErrQuerySyntax = errors.New("unparsable search query")

// projectionRow is the slice of a message row mirrored in messages_fts.
type projectionRow struct {
	ID           int64  `db:"id"`
	Text         string `db:"text"`
	ChannelTitle string `db:"channel_title"`
}

// UpsertMessage inserts or overwrites a message and keeps messages_fts in
// step: the previous projection entry is deleted before the new one is
// written, so edited text never matches again.
func (s *sqlxStore) UpsertMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot upsert nil message")
	}
	if err := s.validate.Struct(message); err != nil {
		return fmt.Errorf("invalid message (channel %d, message %d): %w", message.ChannelID, message.MessageID, err)
	}

	err := s.withTx(ctx, "upsert_message", func(tx *sqlx.Tx) error {
		var prev projectionRow
		err := tx.GetContext(ctx, &prev,
			`SELECT id, text, channel_title FROM messages WHERE channel_id = ? AND message_id = ?`,
			message.ChannelID, message.MessageID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// New key.
		case err != nil:
			return fmt.Errorf("failed to read existing message: %w", err)
		default:
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO messages_fts(messages_fts, rowid, text, channel_title) VALUES('delete', ?, ?, ?)`,
				prev.ID, prev.Text, prev.ChannelTitle); err != nil {
				return fmt.Errorf("failed to remove stale search entry: %w", err)
			}
		}

		var id int64
		err = tx.GetContext(ctx, &id, `
			INSERT INTO messages (channel_id, message_id, channel_title, channel_username, posted_at, text)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (channel_id, message_id) DO UPDATE SET
				channel_title    = excluded.channel_title,
				channel_username = excluded.channel_username,
				posted_at        = excluded.posted_at,
				text             = excluded.text
			RETURNING id`,
			message.ChannelID, message.MessageID, message.ChannelTitle,
			message.ChannelUsername, message.PostedAt, message.Text)
		if err != nil {
			return fmt.Errorf("failed to write message: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages_fts(rowid, text, channel_title) VALUES(?, ?, ?)`,
			id, message.Text, message.ChannelTitle); err != nil {
			return fmt.Errorf("failed to write search entry: %w", err)
		}

		message.ID = id
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error upserting message",
			"channel_id", message.ChannelID, "message_id", message.MessageID, "error", err)
		return fmt.Errorf("failed to upsert message (channel %d, message %d): %w", message.ChannelID, message.MessageID, err)
	}

	s.logger.DebugContext(ctx, "Message upserted",
		"channel_id", message.ChannelID, "message_id", message.MessageID, "row_id", message.ID)
	return nil
}

// SearchMessages matches query against messages_fts. Rows whose channel has
// no grant are dropped by the join, so revoking a channel hides its messages
// without deleting them.
func (s *sqlxStore) SearchMessages(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrQuerySyntax)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("search limit must be positive, got %d", limit)
	}

	var results []SearchResult
	err := s.db.SelectContext(ctx, &results, `
		SELECT m.id, m.channel_id, m.message_id, m.channel_title, m.channel_username,
		       m.posted_at, m.text, bm25(messages_fts) AS rank
		FROM messages_fts
		JOIN messages m ON m.id = messages_fts.rowid
		JOIN allowed_channels c ON c.channel_id = m.channel_id
		WHERE messages_fts MATCH ?
		ORDER BY bm25(messages_fts), m.id DESC
		LIMIT ?`,
		query, limit)

	switch {
	case err == nil:
	case isContextErr(err):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while searching", "error", err)
		return nil, err
	case isQuerySyntaxErr(err):
		s.logger.DebugContext(ctx, "Search query rejected by full-text engine", "query", query, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrQuerySyntax, err)
	default:
		s.logger.ErrorContext(ctx, "Error searching messages", "error", err)
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}

	s.logger.DebugContext(ctx, "Search completed", "query", query, "limit", limit, "count", len(results))
	return results, nil
}

// isQuerySyntaxErr reports whether err is a generic SQLITE_ERROR raised
// while evaluating MATCH. The statement text is fixed, so that class only
// comes from the user's query (fts5 syntax errors, unterminated strings,
// unknown column filters).
func isQuerySyntaxErr(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_ERROR
	}
	return false
}

// GetMessage returns the stored message for the key, or nil, nil if absent.
func (s *sqlxStore) GetMessage(ctx context.Context, channelID, messageID int64) (*Message, error) {
	var msg Message
	err := s.db.GetContext(ctx, &msg, `
		SELECT id, channel_id, message_id, channel_title, channel_username, posted_at, text
		FROM messages WHERE channel_id = ? AND message_id = ?`,
		channelID, messageID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting message", "channel_id", channelID, "message_id", messageID, "error", err)
		return nil, fmt.Errorf("failed to get message (channel %d, message %d): %w", channelID, messageID, err)
	}

	return &msg, nil
}

// CountMessages returns the number of stored messages.
func (s *sqlxStore) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM messages`); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// RebuildSearchIndex discards messages_fts content and re-reads it from messages.
func (s *sqlxStore) RebuildSearchIndex(ctx context.Context) (int64, error) {
	var count int64
	err := s.withTx(ctx, "rebuild_search_index", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO messages_fts(messages_fts) VALUES('rebuild')`); err != nil {
			return fmt.Errorf("failed to rebuild search index: %w", err)
		}
		if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM messages`); err != nil {
			return fmt.Errorf("failed to count messages: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Search index rebuild failed", "error", err)
		return 0, err
	}

	s.logger.InfoContext(ctx, "Search index rebuilt", "messages", count)
	return count, nil
}
