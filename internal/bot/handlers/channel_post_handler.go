package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	errs "github.com/edgard/chansearch/internal/errors"
)

// NewChannelPostHandler returns a handler that indexes new and edited
// channel posts. It never replies.
func NewChannelPostHandler(deps HandlerDeps) bot.HandlerFunc {
	return channelPostHandler{deps}.Handle
}

type channelPostHandler struct {
	deps HandlerDeps
}

func (h channelPostHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "channel_post")

	post := channelPostOf(update)
	if post == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, h.deps.Config.Search.OperationTimeout)
	defer cancel()

	_, err := h.deps.Ingest.IngestLivePost(ctx, livePostFromMessage(post))
	switch {
	case err == nil:
	case errs.IsSilent(err):
		log.DebugContext(ctx, "Channel post skipped", "channel_id", post.Chat.ID, "message_id", post.ID, "reason", err)
	default:
		log.ErrorContext(ctx, "Failed to index channel post",
			"channel_id", post.Chat.ID, "message_id", post.ID, "edited", update.EditedChannelPost != nil, "error", err)
	}
}
