package tasks_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/edgard/chansearch/internal/bot/tasks"
	"github.com/edgard/chansearch/internal/config"
	"github.com/edgard/chansearch/internal/database"
)

func TestSQLMaintenanceTask(t *testing.T) {
	t.Parallel()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := database.NewStore(db, logger)
	ctx := context.Background()

	if err := store.GrantChannel(ctx, &database.AllowedChannel{ChannelID: -1, ChannelTitle: "News", AddedBy: 1}); err != nil {
		t.Fatalf("GrantChannel() error = %v", err)
	}
	if err := store.UpsertMessage(ctx, &database.Message{
		ChannelID: -1, MessageID: 1, ChannelTitle: "News", PostedAt: "2025-03-01T07:15:00Z", Text: "weekly digest",
	}); err != nil {
		t.Fatalf("UpsertMessage() error = %v", err)
	}

	registry := tasks.RegisterAllTasks(tasks.TaskDeps{Logger: logger, Store: store, Config: config.Default()})
	task, ok := registry[config.SQLMaintenanceTask]
	if !ok {
		t.Fatalf("task %q not registered", config.SQLMaintenanceTask)
	}

	if err := task(ctx); err != nil {
		t.Fatalf("maintenance task error = %v", err)
	}

	results, err := store.SearchMessages(ctx, "digest", 5)
	if err != nil || len(results) != 1 {
		t.Errorf("SearchMessages() after maintenance = %d results, %v; want 1, nil", len(results), err)
	}
}

func TestSQLMaintenanceTaskCancelled(t *testing.T) {
	t.Parallel()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	task := tasks.RegisterAllTasks(tasks.TaskDeps{Logger: logger, Store: database.NewStore(db, logger)})[config.SQLMaintenanceTask]

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := task(ctx); err == nil {
		t.Error("maintenance task on cancelled context error = nil, want error")
	}
}
