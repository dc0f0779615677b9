// Package tasks implements the scheduled maintenance tasks of the channel
// search bot and the registry that maps config names to them.
package tasks

import (
	"log/slog"

	"github.com/edgard/chansearch/internal/config"
	"github.com/edgard/chansearch/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
