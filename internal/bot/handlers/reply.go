package handlers

import (
	"context"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/chansearch/internal/config"
	errs "github.com/edgard/chansearch/internal/errors"
)

// sendText sends a plain-text message.
func sendText(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, text string) {
	if text == "" {
		return
	}
	if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}

// sendHTML sends an HTML message with link previews disabled.
func sendHTML(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, text string) {
	if text == "" {
		return
	}
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:             chatID,
		Text:               text,
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: tgbot.True()},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send HTML message", "error", err, "chat_id", chatID)
	}
}

// replyError answers with the hint carried by err. Silent errors get no
// reply; errors without a hint get the general error text.
func replyError(ctx context.Context, b *tgbot.Bot, log *slog.Logger, msgs config.MessagesConfig, chatID int64, err error) {
	if errs.IsSilent(err) {
		return
	}
	text := errs.Hint(err)
	if text == "" {
		log.ErrorContext(ctx, "Request failed", "error", err, "code", errs.Code(err), "chat_id", chatID)
		text = msgs.GeneralError
	}
	sendText(ctx, b, log, chatID, text)
}
