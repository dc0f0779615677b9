package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps: deps, name: "start"}.Handle
}

// NewHelpHandler returns a handler for the /help command, which shows the
// same text as /start.
func NewHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps: deps, name: "help"}.Handle
}

// startHandler sends the usage and manager command overview.
type startHandler struct {
	deps HandlerDeps
	name string
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", h.name)

	if update.Message == nil {
		log.WarnContext(ctx, "Handler received update with nil message", "update_id", update.ID)
		return
	}

	log.InfoContext(ctx, "Handling command", "command", h.name, "chat_id", update.Message.Chat.ID)
	sendHTML(ctx, b, log, update.Message.Chat.ID, h.deps.Config.Messages.Welcome)
}
