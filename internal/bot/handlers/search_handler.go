package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/chansearch/internal/search"
)

// NewSearchHandler returns a handler that treats plain text as a search query.
func NewSearchHandler(deps HandlerDeps) bot.HandlerFunc {
	return searchHandler{deps}.Handle
}

type searchHandler struct {
	deps HandlerDeps
}

func (h searchHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "search")

	msg := update.Message
	if msg == nil {
		return
	}

	var actorID int64
	if msg.From != nil {
		actorID = msg.From.ID
	}

	ctx, cancel := context.WithTimeout(ctx, h.deps.Config.Search.OperationTimeout)
	defer cancel()

	reply, err := h.deps.Search.HandleSearch(ctx, search.Query{
		ActorID:       actorID,
		ChatIsPrivate: msg.Chat.Type == models.ChatTypePrivate,
		RawText:       msg.Text,
	})
	if err != nil {
		replyError(ctx, b, log, h.deps.Config.Messages, msg.Chat.ID, err)
		return
	}

	sendHTML(ctx, b, log, msg.Chat.ID, reply)
}
