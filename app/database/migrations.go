package database

import (
	"context"
	"fmt"

	"github.com/isina-nej/unipath/app/ctxlog"
)

// RunMigrations creates every table the curriculum service needs. Each
// statement is idempotent, so running it on every start is safe.
func RunMigrations(ctx context.Context, s *Store) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Running database migrations...", "dialect", s.Dialect.Name)

	for i, stmt := range s.Dialect.Schema {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			logger.Error("Failed to run migration", "step", i+1, "error", err)
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}

	logger.Info("Database migrations completed successfully", "steps", len(s.Dialect.Schema))
	return nil
}
