package database

import "database/sql"

// Message is one indexed channel post, unique by (ChannelID, MessageID).
// ID is the internal row id shared with the full-text projection. PostedAt
// is an RFC 3339 UTC string.
type Message struct {
	ID int64 `db:"id"`

	ChannelID       int64          `db:"channel_id"       validate:"required"`
	MessageID       int64          `db:"message_id"       validate:"required,gt=0"`
	ChannelTitle    string         `db:"channel_title"    validate:"required"`
	ChannelUsername sql.NullString `db:"channel_username"`
	PostedAt        string         `db:"posted_at"        validate:"required"`
	Text            string         `db:"text"             validate:"required"`
}

// AllowedChannel grants a channel permission to be indexed and searched.
type AllowedChannel struct {
	ChannelID       int64          `db:"channel_id"       validate:"required"`
	ChannelTitle    string         `db:"channel_title"    validate:"required"`
	ChannelUsername sql.NullString `db:"channel_username"`
	AddedBy         int64          `db:"added_by"         validate:"required,gt=0"`
	AddedAt         string         `db:"added_at"`
}

// BotAdmin is a user allowed to manage the bot.
type BotAdmin struct {
	UserID  int64  `db:"user_id"`
	AddedAt string `db:"added_at"`
}

// SearchResult is a Message plus its bm25 rank (lower is better).
type SearchResult struct {
	Message
	Rank float64 `db:"rank"`
}

// NullableString converts an optional handle into its column value.
func NullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
