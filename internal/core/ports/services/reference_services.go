package services

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
)

// ReferenceSvcFacade issues human-readable reference codes.
type ReferenceSvcFacade interface {
	// NextRef returns the next "PREFIX-N" code for the entity class. The
	// numeric part is strictly greater than every previously issued value for
	// that key, even under concurrent callers. Transient storage failures of
	// the increment are retried a bounded number of times; retry is safe
	// because a failed increment never commits a value.
	NextRef(ctx context.Context, key domain.TableKey) (string, error)
}
