package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/chansearch/internal/admin"
)

// ChannelResolver resolves chat metadata with getChat.
type ChannelResolver struct {
	bot *bot.Bot
}

// NewChannelResolver creates a resolver backed by b.
func NewChannelResolver(b *bot.Bot) *ChannelResolver {
	return &ChannelResolver{bot: b}
}

// ResolveChannel fetches the chat. It fails when the bot cannot see the chat,
// typically because it is not a member of it.
func (r *ChannelResolver) ResolveChannel(ctx context.Context, chatID int64) (*admin.ChannelInfo, error) {
	chat, err := r.bot.GetChat(ctx, &bot.GetChatParams{ChatID: chatID})
	if err != nil {
		return nil, fmt.Errorf("failed to get chat %d: %w", chatID, err)
	}
	return channelInfo(chat), nil
}

func channelInfo(chat *models.ChatFullInfo) *admin.ChannelInfo {
	return &admin.ChannelInfo{
		ID:        chat.ID,
		Title:     chat.Title,
		Username:  chat.Username,
		IsChannel: chat.Type == models.ChatTypeChannel,
	}
}
