package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/chansearch/internal/admin"
)

// NewAdminCommandHandler returns a handler that runs the named admin command.
func NewAdminCommandHandler(deps HandlerDeps, command string) bot.HandlerFunc {
	return adminCommandHandler{deps: deps, command: command}.Handle
}

type adminCommandHandler struct {
	deps    HandlerDeps
	command string
}

func (h adminCommandHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", h.command)

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Admin handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	ctx, cancel := context.WithTimeout(ctx, h.deps.Config.Search.OperationTimeout)
	defer cancel()

	reply, err := h.deps.Admin.Execute(ctx, admin.Command{
		ActorID: update.Message.From.ID,
		Name:    h.command,
		Args:    commandArgs(update.Message.Text),
	})
	if err != nil {
		log.InfoContext(ctx, "Admin command rejected", "user_id", update.Message.From.ID, "error", err)
		replyError(ctx, b, log, h.deps.Config.Messages, chatID, err)
		return
	}

	log.InfoContext(ctx, "Admin command executed", "user_id", update.Message.From.ID, "chat_id", chatID)
	sendText(ctx, b, log, chatID, reply)
}
