package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewSyncHelpHandler returns a handler for the /sync_help command.
func NewSyncHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	return syncHelpHandler{deps}.Handle
}

// syncHelpHandler explains how to backfill history by forwarding posts.
type syncHelpHandler struct {
	deps HandlerDeps
}

func (h syncHelpHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "sync_help")

	if update.Message == nil {
		log.WarnContext(ctx, "Sync help handler received update with nil message", "update_id", update.ID)
		return
	}

	sendText(ctx, b, log, update.Message.Chat.ID, h.deps.Config.Messages.SyncHelp)
}
