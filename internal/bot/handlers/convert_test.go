package handlers

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/google/go-cmp/cmp"

	"github.com/edgard/chansearch/internal/ingest"
)

const (
	postDate    = 1740816900 // 2025-03-01T08:15:00Z
	forwardDate = 1741000000
)

func int64Ptr(v int64) *int64 { return &v }

func TestLivePostFromMessage(t *testing.T) {
	t.Parallel()

	msg := &models.Message{
		ID:      42,
		Date:    postDate,
		Chat:    models.Chat{ID: -100100, Type: models.ChatTypeChannel, Title: "Finance", Username: "financechan"},
		Caption: "scanned receipt",
	}

	want := ingest.LivePost{
		ChannelID:       -100100,
		ChannelTitle:    "Finance",
		ChannelUsername: "financechan",
		MessageID:       42,
		PostedAt:        time.Date(2025, 3, 1, 8, 15, 0, 0, time.UTC),
		Caption:         "scanned receipt",
	}
	if diff := cmp.Diff(want, livePostFromMessage(msg)); diff != "" {
		t.Errorf("livePostFromMessage() mismatch (-want +got):\n%s", diff)
	}
}

func TestForwardedPostFromMessage(t *testing.T) {
	t.Parallel()

	sender := &models.User{ID: 7}
	private := models.Chat{ID: 7, Type: models.ChatTypePrivate}

	tests := []struct {
		name string
		msg  *models.Message
		want ingest.ForwardedPost
	}{
		{
			name: "channel origin with message id",
			msg: &models.Message{
				ID: 900, Date: forwardDate, Chat: private, From: sender, Text: "Q1 report",
				ForwardOrigin: &models.MessageOrigin{
					Type: models.MessageOriginTypeChannel,
					MessageOriginChannel: &models.MessageOriginChannel{
						Type:      models.MessageOriginTypeChannel,
						Date:      postDate,
						Chat:      models.Chat{ID: -100100, Type: models.ChatTypeChannel, Title: "Finance", Username: "financechan"},
						MessageID: 42,
					},
				},
			},
			want: ingest.ForwardedPost{
				ActorID:               7,
				OriginChannelID:       int64Ptr(-100100),
				OriginChannelTitle:    "Finance",
				OriginChannelUsername: "financechan",
				OriginMessageID:       int64Ptr(42),
				FallbackMessageID:     900,
				PostedAt:              time.Date(2025, 3, 1, 8, 15, 0, 0, time.UTC),
				Text:                  "Q1 report",
			},
		},
		{
			name: "channel origin without message id",
			msg: &models.Message{
				ID: 901, Date: postDate, Chat: private, From: sender, Caption: "chart",
				ForwardOrigin: &models.MessageOrigin{
					Type: models.MessageOriginTypeChannel,
					MessageOriginChannel: &models.MessageOriginChannel{
						Type: models.MessageOriginTypeChannel,
						Chat: models.Chat{ID: -100100, Type: models.ChatTypeChannel},
					},
				},
			},
			want: ingest.ForwardedPost{
				ActorID:           7,
				OriginChannelID:   int64Ptr(-100100),
				FallbackMessageID: 901,
				PostedAt:          time.Date(2025, 3, 1, 8, 15, 0, 0, time.UTC),
				Caption:           "chart",
			},
		},
		{
			name: "user origin",
			msg: &models.Message{
				ID: 902, Date: postDate, Chat: private, From: sender, Text: "hello",
				ForwardOrigin: &models.MessageOrigin{Type: models.MessageOriginTypeUser},
			},
			want: ingest.ForwardedPost{
				ActorID:           7,
				FallbackMessageID: 902,
				PostedAt:          time.Date(2025, 3, 1, 8, 15, 0, 0, time.UTC),
				Text:              "hello",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, forwardedPostFromMessage(tt.msg)); diff != "" {
				t.Errorf("forwardedPostFromMessage() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchersAreExclusive(t *testing.T) {
	t.Parallel()

	private := models.Chat{ID: 7, Type: models.ChatTypePrivate}
	group := models.Chat{ID: -5, Type: models.ChatTypeSupergroup}
	forward := &models.MessageOrigin{Type: models.MessageOriginTypeChannel}
	matchListAdmins := matchCommand("list_admins", func() string { return "ChanSearchBot" })

	tests := []struct {
		name    string
		update  *models.Update
		channel bool
		forward bool
		search  bool
		command bool
	}{
		{name: "channel post", update: &models.Update{ChannelPost: &models.Message{Text: "news"}}, channel: true},
		{name: "edited channel post", update: &models.Update{EditedChannelPost: &models.Message{Text: "news"}}, channel: true},
		{name: "private text", update: &models.Update{Message: &models.Message{Chat: private, Text: "invoice"}}, search: true},
		{name: "group text", update: &models.Update{Message: &models.Message{Chat: group, Text: "invoice"}}, search: true},
		{name: "command", update: &models.Update{Message: &models.Message{Chat: private, Text: "/list_admins"}}, command: true},
		{name: "addressed command in group", update: &models.Update{Message: &models.Message{Chat: group, Text: "/list_admins@ChanSearchBot"}}, command: true},
		{name: "command for another bot", update: &models.Update{Message: &models.Message{Chat: group, Text: "/list_admins@OtherBot"}}},
		{name: "private forward", update: &models.Update{Message: &models.Message{Chat: private, Text: "x", ForwardOrigin: forward}}, forward: true},
		{name: "forwarded command", update: &models.Update{Message: &models.Message{Chat: private, Text: "/list_admins", ForwardOrigin: forward}}, forward: true},
		{name: "group forward", update: &models.Update{Message: &models.Message{Chat: group, Text: "x", ForwardOrigin: forward}}},
		{name: "photo without caption", update: &models.Update{Message: &models.Message{Chat: private}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := matchChannelPost(tt.update); got != tt.channel {
				t.Errorf("matchChannelPost() = %v, want %v", got, tt.channel)
			}
			if got := matchForward(tt.update); got != tt.forward {
				t.Errorf("matchForward() = %v, want %v", got, tt.forward)
			}
			if got := matchSearch(tt.update); got != tt.search {
				t.Errorf("matchSearch() = %v, want %v", got, tt.search)
			}
			if got := matchListAdmins(tt.update); got != tt.command {
				t.Errorf("matchCommand(list_admins) = %v, want %v", got, tt.command)
			}
		})
	}
}

func TestCommandName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text     string
		username string
		want     string
		wantOK   bool
	}{
		{text: "/add_admin 55", username: "ChanSearchBot", want: "add_admin", wantOK: true},
		{text: "/add_admin@ChanSearchBot 55", username: "ChanSearchBot", want: "add_admin", wantOK: true},
		{text: "/add_admin@chansearchbot", username: "ChanSearchBot", want: "add_admin", wantOK: true},
		{text: "/add_admin@OtherBot", username: "ChanSearchBot"},
		{text: "/add_admin@ChanSearchBot", username: ""},
		{text: "/", username: "ChanSearchBot"},
		{text: "invoice", username: "ChanSearchBot"},
		{text: "", username: "ChanSearchBot"},
	}
	for _, tt := range tests {
		got, ok := commandName(tt.text, tt.username)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("commandName(%q, %q) = %q, %v; want %q, %v", tt.text, tt.username, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCommandArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []string
	}{
		{text: "/add_admin 55", want: []string{"55"}},
		{text: "/allow_channel   -1001   extra", want: []string{"-1001", "extra"}},
		{text: "/list_admins", want: nil},
		{text: "", want: nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, commandArgs(tt.text)); diff != "" {
			t.Errorf("commandArgs(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}
