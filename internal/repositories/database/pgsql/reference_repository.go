package pgsql

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/apperrors"
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReferenceRepository struct {
	BaseRepository
}

// newPgxReferenceRepository creates the repository backing reference sequences.
func newPgxReferenceRepository(pool *pgxpool.Pool) portsrepo.ReferenceRepository {
	return &PgxReferenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReferenceRepository = (*PgxReferenceRepository)(nil)

// incrementQuery is a single-statement atomic upsert: the row is created at 1
// when absent, incremented otherwise, and the new value returned. Concurrent
// callers serialize on the row inside the statement, so no two callers can
// ever read the same value. This must never be split into a SELECT followed
// by an UPDATE.
const incrementQuery = `
	INSERT INTO reference_sequences (table_key, counter)
	VALUES ($1, 1)
	ON CONFLICT (table_key)
	DO UPDATE SET counter = reference_sequences.counter + 1
	RETURNING counter;
`

// IncrementCounter atomically increments and returns the counter for key.
func (r *PgxReferenceRepository) IncrementCounter(ctx context.Context, key domain.TableKey) (int64, error) {
	var counter int64
	if err := r.Pool.QueryRow(ctx, incrementQuery, string(key)).Scan(&counter); err != nil {
		return 0, apperrors.NewAppError(500, "failed to increment reference counter for "+string(key), err)
	}
	return counter, nil
}

// IncrementCounterInTx is IncrementCounter running on an open transaction, so
// that ref issuance commits or rolls back together with the rows consuming
// the ref.
func (r *PgxReferenceRepository) IncrementCounterInTx(ctx context.Context, tx pgx.Tx, key domain.TableKey) (int64, error) {
	var counter int64
	if err := tx.QueryRow(ctx, incrementQuery, string(key)).Scan(&counter); err != nil {
		return 0, apperrors.NewAppError(500, "failed to increment reference counter for "+string(key), err)
	}
	return counter, nil
}

// nextRefInTx draws the next formatted ref for key on an open transaction.
// Shared by every repository that assigns refs while inserting.
func nextRefInTx(ctx context.Context, tx pgx.Tx, refs portsrepo.ReferenceRepository, key domain.TableKey) (string, error) {
	prefix, err := domain.RefPrefix(key)
	if err != nil {
		return "", err
	}
	counter, err := refs.IncrementCounterInTx(ctx, tx, key)
	if err != nil {
		return "", err
	}
	return domain.FormatRef(prefix, counter), nil
}
