// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	errs "github.com/edgard/chansearch/internal/errors"
)

// AdminOnly creates a middleware that lets a command through only when its
// sender is a bot manager. Others get the "managers only" reply.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil {
				return
			}
			chatID := update.Message.Chat.ID
			log := deps.Logger.With("middleware", "AdminOnly")

			if update.Message.From == nil {
				log.WarnContext(ctx, "Admin command without sender", "chat_id", chatID)
				return
			}
			userID := update.Message.From.ID

			if err := deps.Admin.Authorize(ctx, userID); err != nil {
				if errs.Is(err, errs.CodeUnauthorized) {
					log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)
				} else {
					log.ErrorContext(ctx, "Failed to check manager", "user_id", userID, "error", err)
				}
				replyError(ctx, bot, log, deps.Config.Messages, chatID, err)
				return
			}

			next(ctx, bot, update)
		}
	}
}
