// Package curriculum turns the course, link, section and time rows held by the
// store into the dependency graph and schedule views, and owns the atomic
// section write contract.
package curriculum

import (
	"context"
	"errors"
	"log/slog"

	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/metrics"
)

// Service runs curriculum operations against one store. It holds no other
// state, so a single value is safe to share between requests.
type Service struct {
	store *database.Store
}

func NewService(store *database.Store) *Service {
	return &Service{store: store}
}

// inTx runs fn in one transaction and converts anything that is not already a
// curriculum error into a StoreError.
func (s *Service) inTx(ctx context.Context, op string, fn func(q database.Querier) error) error {
	err := s.store.WithTx(ctx, fn)
	if err == nil {
		return nil
	}
	return s.storeErr(ctx, op, err)
}

// storeErr passes validation and not-found errors through untouched. Every
// other failure is logged with full detail and replaced by a generic StoreError.
func (s *Service) storeErr(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		vErr  *ValidationError
		nfErr *NotFoundError
		sErr  *StoreError
	)
	if errors.As(err, &vErr) || errors.As(err, &nfErr) || errors.As(err, &sErr) {
		return err
	}

	attrs := []any{slog.String("op", op), slog.Any("error", err)}
	if constraint, ok := database.ConstraintViolation(err); ok {
		attrs = append(attrs, slog.String("constraint", constraint))
	}
	ctxlog.FromContext(ctx).Error("store operation failed", attrs...)
	metrics.StoreErrorsTotal.WithLabelValues(op).Inc()

	return &StoreError{Op: op, Err: err}
}
