package repositories

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ReferenceRepository issues sequence values for human-readable refs.
//
// Both methods perform the increment as a single storage-level atomic upsert,
// never as read-then-write from application code: two concurrent callers must
// never observe the same counter value for one table key.
type ReferenceRepository interface {
	// IncrementCounter atomically increments and returns the counter for key,
	// creating the row at 1 when absent.
	IncrementCounter(ctx context.Context, key domain.TableKey) (int64, error)

	// IncrementCounterInTx is IncrementCounter running on an open transaction,
	// so ref issuance composes with the writes that consume the ref.
	IncrementCounterInTx(ctx context.Context, tx pgx.Tx, key domain.TableKey) (int64, error)
}
