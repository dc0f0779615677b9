package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewForwardHandler returns a handler that backfills forwarded channel posts.
func NewForwardHandler(deps HandlerDeps) bot.HandlerFunc {
	return forwardHandler{deps}.Handle
}

type forwardHandler struct {
	deps HandlerDeps
}

func (h forwardHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "forward")

	msg := update.Message
	if msg == nil || msg.ForwardOrigin == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, h.deps.Config.Search.OperationTimeout)
	defer cancel()

	reply, err := h.deps.Ingest.IngestForwardedPost(ctx, forwardedPostFromMessage(msg))
	if err != nil {
		replyError(ctx, b, log, h.deps.Config.Messages, msg.Chat.ID, err)
		return
	}

	sendText(ctx, b, log, msg.Chat.ID, reply)
}
