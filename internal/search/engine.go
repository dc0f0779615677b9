// Package search implements the query path: validating keyword searches,
// running them against the index and rendering the reply.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/edgard/chansearch/internal/config"
	"github.com/edgard/chansearch/internal/database"
	errs "github.com/edgard/chansearch/internal/errors"
)

// Query is a search request received from a chat.
type Query struct {
	ActorID       int64
	ChatIsPrivate bool
	RawText       string
}

// Engine answers search queries. Channel visibility is enforced by the
// store; the engine never filters results itself.
type Engine struct {
	store          database.IndexStore
	formatter      Formatter
	maxResults     int
	minQueryLength int
	messages       config.MessagesConfig
	logger         *slog.Logger
}

// NewEngine creates an Engine from the search, telegram and message settings in cfg.
func NewEngine(store database.IndexStore, cfg *config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		store: store,
		formatter: Formatter{
			LinkHost:       cfg.Telegram.LinkHost,
			SnippetLength:  cfg.Search.SnippetLength,
			OpenMessage:    cfg.Messages.OpenMessage,
			PrivateChannel: cfg.Messages.PrivateChannel,
		},
		maxResults:     cfg.Search.MaxResults,
		minQueryLength: cfg.Search.MinQueryLength,
		messages:       cfg.Messages,
		logger:         logger.With("component", "search"),
	}
}

// HandleSearch runs q and returns the HTML reply. Queries from group chats
// are ignored with an empty reply. Too-short and unparsable queries return
// Validation and QuerySyntax errors whose hints are meant for the actor.
func (e *Engine) HandleSearch(ctx context.Context, q Query) (string, error) {
	if !q.ChatIsPrivate {
		return "", nil
	}

	query := strings.TrimSpace(q.RawText)
	if utf8.RuneCountInString(query) < e.minQueryLength {
		return "", errs.NewValidationError("search query too short",
			fmt.Sprintf(e.messages.QueryTooShortFmt, e.minQueryLength))
	}

	results, err := e.store.SearchMessages(ctx, query, e.maxResults)
	if err != nil {
		if errors.Is(err, database.ErrQuerySyntax) {
			e.logger.DebugContext(ctx, "Unparsable search query", "user_id", q.ActorID, "query", query)
			return "", errs.NewQuerySyntaxError(e.messages.QuerySyntax, err)
		}
		return "", errs.NewDatabaseError("search failed", err)
	}

	e.logger.DebugContext(ctx, "Search served", "user_id", q.ActorID, "results", len(results))

	if len(results) == 0 {
		return e.messages.NoResults, nil
	}

	return e.Render(results), nil
}

// Render joins formatted results under the results header.
func (e *Engine) Render(results []database.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for i, result := range results {
		blocks = append(blocks, e.formatter.FormatResult(result, i+1))
	}
	return e.messages.ResultsHeader + "\n\n" + strings.Join(blocks, "\n\n")
}
