package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/metrics"
)

// RunConsistencySweep deletes orphaned section and time rows in a single
// transaction. Either every rule applies or none does.
func RunConsistencySweep(ctx context.Context, store *database.Store) (database.SweepResult, error) {
	runID := uuid.New().String()
	logger := ctxlog.FromContext(ctx).With(slog.String("sweep_id", runID))

	var result database.SweepResult
	err := store.WithTx(ctx, func(q database.Querier) error {
		var err error
		result, err = database.SweepOrphans(ctx, q)
		return err
	})
	metrics.SweepRunsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return database.SweepResult{}, fmt.Errorf("consistency sweep %s: %w", runID, err)
	}

	metrics.SweepDeletedRowsTotal.WithLabelValues("orphan_times").Add(float64(result.OrphanTimes))
	metrics.SweepDeletedRowsTotal.WithLabelValues("courseless_times").Add(float64(result.CourselessTimes))
	metrics.SweepDeletedRowsTotal.WithLabelValues("courseless_sections").Add(float64(result.CourselessSections))
	metrics.SweepDeletedRowsTotal.WithLabelValues("empty_sections").Add(float64(result.EmptySections))

	level := slog.LevelDebug
	if result.Total() > 0 {
		level = slog.LevelInfo
	}
	logger.Log(ctx, level, "consistency sweep finished",
		slog.Int64("orphan_times", result.OrphanTimes),
		slog.Int64("courseless_times", result.CourselessTimes),
		slog.Int64("courseless_sections", result.CourselessSections),
		slog.Int64("empty_sections", result.EmptySections),
	)
	return result, nil
}
