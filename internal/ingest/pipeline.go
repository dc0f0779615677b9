// Package ingest normalizes channel posts into the search index. Live posts
// come from channels the bot is a member of; forwarded posts are manual
// backfills sent by a bot manager in a private chat.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/edgard/chansearch/internal/config"
	"github.com/edgard/chansearch/internal/database"
	errs "github.com/edgard/chansearch/internal/errors"
)

// LivePost is a post received directly from a source channel.
type LivePost struct {
	ChannelID       int64
	ChannelTitle    string
	ChannelUsername string
	MessageID       int64
	PostedAt        time.Time
	Text            string
	Caption         string
}

// ForwardedPost is a historical post forwarded to the bot by ActorID.
// Origin fields are nil or empty when the forward does not come from a channel
// or the client hides them.
type ForwardedPost struct {
	ActorID               int64
	OriginChannelID       *int64
	OriginChannelTitle    string
	OriginChannelUsername string
	OriginMessageID       *int64
	// FallbackMessageID is the id of the forwarding message itself.
	FallbackMessageID int64
	PostedAt          time.Time
	Text              string
	Caption           string
}

// Pipeline validates posts against the registry and upserts them into the index.
type Pipeline struct {
	store    database.Store
	messages config.MessagesConfig
	logger   *slog.Logger
}

// NewPipeline creates a Pipeline backed by store.
func NewPipeline(store database.Store, messages config.MessagesConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		store:    store,
		messages: messages,
		logger:   logger.With("component", "ingest"),
	}
}

// IngestLivePost stores post if its channel is granted and it carries text.
// Posts from unapproved channels are discarded with nil, nil. Posts without
// text or caption return a silent content error.
func (p *Pipeline) IngestLivePost(ctx context.Context, post LivePost) (*database.Message, error) {
	granted, err := p.store.IsChannelGranted(ctx, post.ChannelID)
	if err != nil {
		return nil, errs.NewDatabaseError("failed to check channel grant", err)
	}
	if !granted {
		p.logger.DebugContext(ctx, "Ignoring post from unapproved channel",
			"channel_id", post.ChannelID, "message_id", post.MessageID)
		return nil, nil
	}

	text := contentOf(post.Text, post.Caption)
	if text == "" {
		return nil, errs.NewNoContentError(
			fmt.Sprintf("post %d in channel %d has no text or caption", post.MessageID, post.ChannelID))
	}

	msg := &database.Message{
		ChannelID:       post.ChannelID,
		MessageID:       post.MessageID,
		ChannelTitle:    p.titleOrDefault(post.ChannelTitle),
		ChannelUsername: database.NullableString(post.ChannelUsername),
		PostedAt:        postedAt(post.PostedAt),
		Text:            text,
	}
	if err := p.store.UpsertMessage(ctx, msg); err != nil {
		return nil, errs.NewDatabaseError("failed to index channel post", err)
	}

	p.logger.InfoContext(ctx, "Indexed message from approved channel",
		"channel_id", msg.ChannelID, "message_id", msg.MessageID)
	return msg, nil
}

// IngestForwardedPost backfills a forwarded channel post and returns the
// acknowledgment for the actor. Forwards from non-managers and forwards
// without text return silent errors (see errs.IsSilent); forwards from
// non-channel origins are ignored. A forward from an ungranted channel
// returns a policy error whose hint explains how to get it approved, and one
// with no usable message id returns a validation error with a hint.
func (p *Pipeline) IngestForwardedPost(ctx context.Context, post ForwardedPost) (string, error) {
	isAdmin, err := p.store.IsAdmin(ctx, post.ActorID)
	if err != nil {
		return "", errs.NewDatabaseError("failed to check manager", err)
	}
	if !isAdmin {
		return "", errs.NewUnauthorizedError(fmt.Sprintf("forward from non-manager %d", post.ActorID), "")
	}

	if post.OriginChannelID == nil {
		p.logger.DebugContext(ctx, "Ignoring forward without channel origin", "user_id", post.ActorID)
		return "", nil
	}
	channelID := *post.OriginChannelID

	granted, err := p.store.IsChannelGranted(ctx, channelID)
	if err != nil {
		return "", errs.NewDatabaseError("failed to check channel grant", err)
	}
	if !granted {
		return "", errs.NewUnauthorizedError(
			fmt.Sprintf("forward from unapproved channel %d", channelID),
			p.messages.ForwardNotApproved)
	}

	text := contentOf(post.Text, post.Caption)
	if text == "" {
		return "", errs.NewNoContentError(fmt.Sprintf("forward from channel %d has no text or caption", channelID))
	}

	messageID := post.FallbackMessageID
	if post.OriginMessageID != nil && *post.OriginMessageID > 0 {
		messageID = *post.OriginMessageID
	} else {
		if messageID <= 0 {
			return "", errs.NewValidationError(
				fmt.Sprintf("forward from channel %d has no usable message id", channelID),
				p.messages.ForwardUnresolved)
		}
		// The forwarding message id is not scoped to the origin channel and
		// may shadow a real post there.
		p.logger.WarnContext(ctx, "Forward has no origin message id, storing under forwarding message id",
			"channel_id", channelID, "fallback_message_id", post.FallbackMessageID, "user_id", post.ActorID)
	}

	msg := &database.Message{
		ChannelID:       channelID,
		MessageID:       messageID,
		ChannelTitle:    p.titleOrDefault(post.OriginChannelTitle),
		ChannelUsername: database.NullableString(post.OriginChannelUsername),
		PostedAt:        postedAt(post.PostedAt),
		Text:            text,
	}
	if err := p.store.UpsertMessage(ctx, msg); err != nil {
		return "", errs.NewDatabaseError("failed to index forwarded post", err)
	}

	p.logger.InfoContext(ctx, "Synced forwarded post",
		"channel_id", channelID, "message_id", messageID, "user_id", post.ActorID)
	return p.messages.ForwardSynced, nil
}

func (p *Pipeline) titleOrDefault(title string) string {
	if strings.TrimSpace(title) == "" {
		return p.messages.UnknownChannel
	}
	return title
}

// contentOf prefers the post text and falls back to the media caption.
func contentOf(text, caption string) string {
	if strings.TrimSpace(text) != "" {
		return text
	}
	if strings.TrimSpace(caption) != "" {
		return caption
	}
	return ""
}

func postedAt(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}
