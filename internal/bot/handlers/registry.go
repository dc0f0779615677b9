package handlers

import (
	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/chansearch/internal/admin"
)

// RegisteredHandler describes how a handler is matched and which middleware
// wraps it. When MatchFunc is set it takes precedence over Pattern, which is
// then only used for logging.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	MatchType   tgbot.MatchType
	MatchFunc   tgbot.MatchFunc
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
}

// RegisterAllCommands initializes and returns every command and message
// handler keyed by a unique name. Message matchers are mutually exclusive:
// a forward is never searched or run as a command, and a command is never
// indexed.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)
	command := func(name string, h tgbot.HandlerFunc) RegisteredHandler {
		return RegisteredHandler{
			Pattern:   name,
			MatchFunc: matchCommand(name, deps.botUsername),
			Handler:   h,
		}
	}

	handlers["/start"] = command("start", NewStartHandler(deps))
	handlers["/help"] = command("help", NewHelpHandler(deps))
	handlers["/sync_help"] = command("sync_help", NewSyncHelpHandler(deps))

	adminMiddleware := []tgbot.Middleware{AdminOnly(deps)}
	for _, name := range admin.Commands {
		h := command(name, NewAdminCommandHandler(deps, name))
		h.Middleware = adminMiddleware
		handlers["/"+name] = h
	}

	handlers["channel_post"] = RegisteredHandler{
		MatchFunc: matchChannelPost,
		Handler:   NewChannelPostHandler(deps),
	}
	handlers["forward"] = RegisteredHandler{
		MatchFunc: matchForward,
		Handler:   NewForwardHandler(deps),
	}
	handlers["search"] = RegisteredHandler{
		MatchFunc: matchSearch,
		Handler:   NewSearchHandler(deps),
	}

	return handlers
}
