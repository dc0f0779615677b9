package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Every registry mutation below is a single statement, which SQLite commits
// atomically and makes visible to the next ingestion or search call.

// EnsureOwner idempotently adds the owner to the admin set. A non-positive
// ownerID means "not configured" and is ignored; callers refuse to start in
// that case.
func (s *sqlxStore) EnsureOwner(ctx context.Context, ownerID int64) error {
	if ownerID <= 0 {
		s.logger.WarnContext(ctx, "Owner not configured, skipping owner seed", "owner_id", ownerID)
		return nil
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO bot_admins (user_id, added_at) VALUES (?, ?)`,
		ownerID, timestamp(s.now()))
	if err != nil {
		s.logger.ErrorContext(ctx, "Error seeding owner", "owner_id", ownerID, "error", err)
		return fmt.Errorf("failed to ensure owner %d: %w", ownerID, err)
	}

	if affected, _ := result.RowsAffected(); affected > 0 {
		s.logger.InfoContext(ctx, "Owner added to bot managers", "owner_id", ownerID)
	}
	return nil
}

// IsAdmin reports whether userID is in the admin set.
func (s *sqlxStore) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM bot_admins WHERE user_id = ?`, userID)
}

// AddAdmin adds userID to the admin set; adding an existing admin keeps the
// original grant time.
func (s *sqlxStore) AddAdmin(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("user_id must be positive, got %d", userID)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO bot_admins (user_id, added_at) VALUES (?, ?)`,
		userID, timestamp(s.now())); err != nil {
		s.logger.ErrorContext(ctx, "Error adding admin", "user_id", userID, "error", err)
		return fmt.Errorf("failed to add admin %d: %w", userID, err)
	}

	s.logger.InfoContext(ctx, "Admin added", "user_id", userID)
	return nil
}

// RemoveAdmin deletes userID from the admin set. The owner rule is enforced
// by the admin service, not here.
func (s *sqlxStore) RemoveAdmin(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bot_admins WHERE user_id = ?`, userID); err != nil {
		s.logger.ErrorContext(ctx, "Error removing admin", "user_id", userID, "error", err)
		return fmt.Errorf("failed to remove admin %d: %w", userID, err)
	}

	s.logger.InfoContext(ctx, "Admin removed", "user_id", userID)
	return nil
}

// ListAdmins returns all admins ordered by user id.
func (s *sqlxStore) ListAdmins(ctx context.Context) ([]BotAdmin, error) {
	var admins []BotAdmin
	if err := s.db.SelectContext(ctx, &admins,
		`SELECT user_id, added_at FROM bot_admins ORDER BY user_id`); err != nil {
		s.logger.ErrorContext(ctx, "Error listing admins", "error", err)
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// GrantChannel upserts a channel grant, stamping AddedAt with the current time.
func (s *sqlxStore) GrantChannel(ctx context.Context, channel *AllowedChannel) error {
	if channel == nil {
		return fmt.Errorf("cannot grant nil channel")
	}
	if err := s.validate.Struct(channel); err != nil {
		return fmt.Errorf("invalid channel grant %d: %w", channel.ChannelID, err)
	}

	channel.AddedAt = timestamp(s.now())
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO allowed_channels (channel_id, channel_title, channel_username, added_by, added_at)
		VALUES (:channel_id, :channel_title, :channel_username, :added_by, :added_at)
		ON CONFLICT (channel_id) DO UPDATE SET
			channel_title    = excluded.channel_title,
			channel_username = excluded.channel_username,
			added_by         = excluded.added_by,
			added_at         = excluded.added_at`,
		channel)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error granting channel", "channel_id", channel.ChannelID, "error", err)
		return fmt.Errorf("failed to grant channel %d: %w", channel.ChannelID, err)
	}

	s.logger.InfoContext(ctx, "Channel granted",
		"channel_id", channel.ChannelID, "title", channel.ChannelTitle, "added_by", channel.AddedBy)
	return nil
}

// RevokeChannel deletes the grant for channelID; revoking an absent grant is a no-op.
func (s *sqlxStore) RevokeChannel(ctx context.Context, channelID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM allowed_channels WHERE channel_id = ?`, channelID); err != nil {
		s.logger.ErrorContext(ctx, "Error revoking channel", "channel_id", channelID, "error", err)
		return fmt.Errorf("failed to revoke channel %d: %w", channelID, err)
	}

	s.logger.InfoContext(ctx, "Channel revoked", "channel_id", channelID)
	return nil
}

// IsChannelGranted reports whether channelID currently has a grant.
func (s *sqlxStore) IsChannelGranted(ctx context.Context, channelID int64) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM allowed_channels WHERE channel_id = ?`, channelID)
}

// GetChannel returns the grant for channelID, or nil, nil if absent.
func (s *sqlxStore) GetChannel(ctx context.Context, channelID int64) (*AllowedChannel, error) {
	var channel AllowedChannel
	err := s.db.GetContext(ctx, &channel, `
		SELECT channel_id, channel_title, channel_username, added_by, added_at
		FROM allowed_channels WHERE channel_id = ?`, channelID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting channel", "channel_id", channelID, "error", err)
		return nil, fmt.Errorf("failed to get channel %d: %w", channelID, err)
	}

	return &channel, nil
}

// ListChannels returns every grant ordered by title, then id.
func (s *sqlxStore) ListChannels(ctx context.Context) ([]AllowedChannel, error) {
	var channels []AllowedChannel
	if err := s.db.SelectContext(ctx, &channels, `
		SELECT channel_id, channel_title, channel_username, added_by, added_at
		FROM allowed_channels
		ORDER BY channel_title, channel_id`); err != nil {
		s.logger.ErrorContext(ctx, "Error listing channels", "error", err)
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

func (s *sqlxStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := s.db.GetContext(ctx, &one, query, args...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return true, nil
}
