package handlers

import (
	"sort"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/google/go-cmp/cmp"

	"github.com/edgard/chansearch/internal/config"
)

func TestRegisterAllCommandsRoutesEachUpdateOnce(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Telegram.BotInfo = &models.User{ID: 99, IsBot: true, Username: "ChanSearchBot"}
	registered := RegisterAllCommands(HandlerDeps{Config: cfg})

	private := models.Chat{ID: 7, Type: models.ChatTypePrivate}
	group := models.Chat{ID: -5, Type: models.ChatTypeSupergroup}
	forward := &models.MessageOrigin{Type: models.MessageOriginTypeChannel}

	tests := []struct {
		name   string
		update *models.Update
		want   []string
	}{
		{
			name:   "plain command",
			update: &models.Update{Message: &models.Message{Chat: private, Text: "/list_admins"}},
			want:   []string{"/list_admins"},
		},
		{
			name:   "addressed command in group",
			update: &models.Update{Message: &models.Message{Chat: group, Text: "/allow_channel@ChanSearchBot -1001"}},
			want:   []string{"/allow_channel"},
		},
		{
			name:   "command for another bot",
			update: &models.Update{Message: &models.Message{Chat: group, Text: "/help@OtherBot"}},
		},
		{
			name:   "forwarded command text",
			update: &models.Update{Message: &models.Message{Chat: private, Text: "/reindex", ForwardOrigin: forward}},
			want:   []string{"forward"},
		},
		{
			name:   "search text",
			update: &models.Update{Message: &models.Message{Chat: private, Text: "invoice"}},
			want:   []string{"search"},
		},
		{
			name:   "channel post",
			update: &models.Update{ChannelPost: &models.Message{Text: "/start"}},
			want:   []string{"channel_post"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []string
			for name, reg := range registered {
				if reg.MatchFunc != nil && reg.MatchFunc(tt.update) {
					got = append(got, name)
				}
			}
			sort.Strings(got)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("matched handlers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
