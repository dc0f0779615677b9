package handlers

import (
	"log/slog"

	"github.com/edgard/chansearch/internal/admin"
	"github.com/edgard/chansearch/internal/config"
	"github.com/edgard/chansearch/internal/ingest"
	"github.com/edgard/chansearch/internal/search"
)

// HandlerDeps provides dependencies for Telegram command and message handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Ingest *ingest.Pipeline
	Search *search.Engine
	Admin  *admin.Service
}

// botUsername is the bot's own handle, known once getMe has run.
func (d HandlerDeps) botUsername() string {
	if d.Config == nil || d.Config.Telegram.BotInfo == nil {
		return ""
	}
	return d.Config.Telegram.BotInfo.Username
}
