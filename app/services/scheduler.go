package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/database"
)

// StartScheduler runs the consistency sweep every interval until ctx is done.
// A non-positive interval disables it. The returned channel closes once the
// loop has exited.
func StartScheduler(ctx context.Context, store *database.Store, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		logger := ctxlog.FromContext(ctx)
		logger.Info("maintenance scheduler started", slog.Duration("interval", interval))

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("maintenance scheduler stopped")
				return
			case <-ticker.C:
				if _, err := RunConsistencySweep(ctx, store); err != nil {
					logger.Error("scheduled consistency sweep failed", slog.Any("error", err))
				}
			}
		}
	}()
	return done
}
