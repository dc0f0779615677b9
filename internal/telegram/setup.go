// Package telegram handles the setup of the Telegram bot client, handler
// registration and the platform lookups the admin commands depend on.
package telegram

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-telegram/bot"

	"github.com/edgard/chansearch/internal/bot/handlers"
)

// AllowedUpdates are the update kinds the bot subscribes to.
var AllowedUpdates = bot.AllowedUpdates{"message", "channel_post", "edited_channel_post"}

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if !strings.Contains(token, ":") {
		return nil, fmt.Errorf("telegram bot token must look like <bot_id>:<secret>")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", tokenPrefix(token))
	return b, nil
}

func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}

// route is one handler ready to register, with its middleware applied.
type route struct {
	name    string
	reg     handlers.RegisteredHandler
	handler bot.HandlerFunc
}

// routes flattens the registry into name order, dropping entries without a
// handler. The first middleware in each slice ends up outermost.
func routes(registered map[string]handlers.RegisteredHandler, log *slog.Logger) []route {
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]route, 0, len(names))
	for _, name := range names {
		reg := registered[name]
		if reg.Handler == nil {
			log.Warn("Skipping registration for nil handler", "name", name)
			continue
		}
		h := reg.Handler
		for i := len(reg.Middleware) - 1; i >= 0; i-- {
			h = reg.Middleware[i](h)
		}
		out = append(out, route{name: name, reg: reg, handler: h})
	}
	return out
}

// RegisterHandlers registers command handlers by pattern and message
// handlers by match func on b.
func RegisterHandlers(b *bot.Bot, logger *slog.Logger, registered map[string]handlers.RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	rs := routes(registered, log)
	if len(rs) == 0 {
		log.Warn("No handlers provided for registration.")
		return nil
	}

	for _, r := range rs {
		if r.reg.MatchFunc != nil {
			b.RegisterHandlerMatchFunc(r.reg.MatchFunc, r.handler)
		} else {
			b.RegisterHandler(r.reg.HandlerType, r.reg.Pattern, r.reg.MatchType, r.handler)
		}
		log.Debug("Registered handler", "name", r.name, "pattern", r.reg.Pattern, "middleware_count", len(r.reg.Middleware))
	}

	log.Info("Registered Telegram handlers", "count", len(rs))
	return nil
}
