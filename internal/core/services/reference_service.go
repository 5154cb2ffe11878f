package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
	"github.com/gestion-app/gestion_backend/internal/middleware"
)

const maxRefAttempts = 3

// referenceService issues human-readable reference codes on top of the
// atomic counter storage.
type referenceService struct {
	refRepo portsrepo.ReferenceRepository
}

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(refRepo portsrepo.ReferenceRepository) portssvc.ReferenceSvcFacade {
	return &referenceService{refRepo: refRepo}
}

var _ portssvc.ReferenceSvcFacade = (*referenceService)(nil)

// NextRef returns the next "PREFIX-N" code for the entity class. The
// increment is retried on transient storage failure; a failed increment never
// commits a counter value, so retrying cannot produce a duplicate.
func (s *referenceService) NextRef(ctx context.Context, key domain.TableKey) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prefix, err := domain.RefPrefix(key)
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 1; attempt <= maxRefAttempts; attempt++ {
		counter, err := s.refRepo.IncrementCounter(ctx, key)
		if err == nil {
			return domain.FormatRef(prefix, counter), nil
		}
		lastErr = err
		logger.Warn("Reference counter increment failed",
			slog.String("table_key", string(key)),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	return "", lastErr
}
