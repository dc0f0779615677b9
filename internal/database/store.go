package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

// IndexStore holds indexed messages and their full-text projection.
type IndexStore interface {
	// UpsertMessage inserts the message or overwrites every mutable field of
	// the existing row with the same (channel, message) key. The full-text
	// projection is updated in the same transaction.
	UpsertMessage(ctx context.Context, message *Message) error

	// SearchMessages runs a full-text match over text and channel title,
	// restricted to granted channels, best rank first. Malformed query
	// syntax is reported as ErrQuerySyntax.
	SearchMessages(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// GetMessage returns the stored message for the key, or nil, nil if absent.
	GetMessage(ctx context.Context, channelID, messageID int64) (*Message, error)

	// CountMessages returns the number of stored messages.
	CountMessages(ctx context.Context) (int64, error)

	// RebuildSearchIndex re-derives the projection from the base rows and
	// returns the number of messages indexed.
	RebuildSearchIndex(ctx context.Context) (int64, error)
}

// Registry is the source of truth for managers and allowed channels.
type Registry interface {
	// EnsureOwner adds ownerID to the admin set; no-op for ownerID <= 0.
	EnsureOwner(ctx context.Context, ownerID int64) error
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	AddAdmin(ctx context.Context, userID int64) error
	RemoveAdmin(ctx context.Context, userID int64) error
	ListAdmins(ctx context.Context) ([]BotAdmin, error)

	// GrantChannel upserts a grant; re-granting refreshes title, handle,
	// grantor and time in place.
	GrantChannel(ctx context.Context, channel *AllowedChannel) error
	RevokeChannel(ctx context.Context, channelID int64) error
	IsChannelGranted(ctx context.Context, channelID int64) (bool, error)
	// GetChannel returns the grant for channelID, or nil, nil if absent.
	GetChannel(ctx context.Context, channelID int64) (*AllowedChannel, error)
	// ListChannels returns every grant ordered by title.
	ListChannels(ctx context.Context) ([]AllowedChannel, error)
}

// Store defines the interface for all database operations.
type Store interface {
	IndexStore
	Registry

	// RunSQLMaintenance compacts the full-text index and vacuums the file.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db       *sqlx.DB
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance with migrations applied.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:       db,
		logger:   logger.With("component", "store"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func (s *sqlxStore) withTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", "op", op, "error", err)
		return fmt.Errorf("failed to begin transaction for %s: %w", op, err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "op", op, "error", rollbackErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction", "op", op, "error", err)
		return fmt.Errorf("failed to commit transaction for %s: %w", op, err)
	}
	tx = nil

	return nil
}

// isContextErr reports whether err comes from cancellation or a deadline.
func isContextErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
