package tasks

import (
	"context"
	"fmt"
	"time"
)

// maintenanceTimeout bounds a single maintenance run; VACUUM rewrites the
// whole file.
const maintenanceTimeout = 10 * time.Minute

// newSQLMaintenanceTask creates the task that compacts the search index and
// vacuums the database.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sql_maintenance")

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, maintenanceTimeout)
		defer cancel()

		log.InfoContext(ctx, "Starting scheduled SQL maintenance task...")
		startTime := time.Now()

		count, err := deps.Store.CountMessages(ctx)
		if err != nil {
			log.WarnContext(ctx, "Could not count messages before maintenance", "error", err)
		}

		err = deps.Store.RunSQLMaintenance(ctx)
		duration := time.Since(startTime)
		if err != nil {
			log.ErrorContext(ctx, "SQL maintenance task failed", "error", err, "duration", duration)
			return fmt.Errorf("sql maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "Scheduled SQL maintenance task completed successfully",
			"duration", duration, "messages", count)
		return nil
	}
}
