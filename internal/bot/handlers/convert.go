package handlers

import (
	"strings"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/chansearch/internal/ingest"
)

// livePostFromMessage converts a channel post into a pipeline event.
func livePostFromMessage(msg *models.Message) ingest.LivePost {
	return ingest.LivePost{
		ChannelID:       msg.Chat.ID,
		ChannelTitle:    msg.Chat.Title,
		ChannelUsername: msg.Chat.Username,
		MessageID:       int64(msg.ID),
		PostedAt:        unixTime(msg.Date),
		Text:            msg.Text,
		Caption:         msg.Caption,
	}
}

// forwardedPostFromMessage converts a forwarded private message into a
// pipeline event. Origin fields are set only for channel origins; the post
// time is the original post time when the origin carries one.
func forwardedPostFromMessage(msg *models.Message) ingest.ForwardedPost {
	post := ingest.ForwardedPost{
		FallbackMessageID: int64(msg.ID),
		PostedAt:          unixTime(msg.Date),
		Text:              msg.Text,
		Caption:           msg.Caption,
	}
	if msg.From != nil {
		post.ActorID = msg.From.ID
	}

	origin := msg.ForwardOrigin
	if origin == nil || origin.Type != models.MessageOriginTypeChannel || origin.MessageOriginChannel == nil {
		return post
	}
	ch := origin.MessageOriginChannel

	channelID := ch.Chat.ID
	post.OriginChannelID = &channelID
	post.OriginChannelTitle = ch.Chat.Title
	post.OriginChannelUsername = ch.Chat.Username
	if ch.MessageID > 0 {
		messageID := int64(ch.MessageID)
		post.OriginMessageID = &messageID
	}
	if ch.Date > 0 {
		post.PostedAt = unixTime(ch.Date)
	}
	return post
}

// commandArgs returns the whitespace-separated arguments after the command word.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

// commandName returns the command word of text without the slash and the
// optional @botname suffix. ok is false when text is not a command or the
// suffix names a different bot.
func commandName(text, botUsername string) (name string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", false
	}
	name = strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		target := name[at+1:]
		name = name[:at]
		if botUsername == "" || !strings.EqualFold(target, botUsername) {
			return "", false
		}
	}
	return name, name != ""
}

// matchCommand selects non-forwarded messages carrying the named command,
// with or without an @botname suffix for this bot.
func matchCommand(name string, botUsername func() string) func(*models.Update) bool {
	return func(update *models.Update) bool {
		msg := update.Message
		if msg == nil || msg.ForwardOrigin != nil {
			return false
		}
		got, ok := commandName(msg.Text, botUsername())
		return ok && got == name
	}
}

func isCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

func unixTime(sec int) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0).UTC()
}

// channelPostOf returns the new or edited channel post carried by update.
func channelPostOf(update *models.Update) *models.Message {
	if update.ChannelPost != nil {
		return update.ChannelPost
	}
	return update.EditedChannelPost
}

func matchChannelPost(update *models.Update) bool {
	return channelPostOf(update) != nil
}

// matchForward selects forwarded messages in private chats.
func matchForward(update *models.Update) bool {
	msg := update.Message
	return msg != nil && msg.ForwardOrigin != nil && msg.Chat.Type == models.ChatTypePrivate
}

// matchSearch selects plain text that is neither a command nor a forward.
// Group chats are passed through so the search engine can decline them.
func matchSearch(update *models.Update) bool {
	msg := update.Message
	return msg != nil && msg.ForwardOrigin == nil && msg.Text != "" && !isCommand(msg.Text)
}
