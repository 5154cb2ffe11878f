package pgsql

import (
	"context"
	"errors"

	"github.com/gestion-app/gestion_backend/internal/apperrors"
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	"github.com/gestion-app/gestion_backend/internal/models"
	"github.com/gestion-app/gestion_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
	refs portsrepo.ReferenceRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool, refs portsrepo.ReferenceRepository) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
		refs:           refs,
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// CreateAccount persists an account, drawing its ref inside the same
// database transaction as the insert.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	account.Ref, err = nextRefInTx(ctx, tx, r.refs, domain.TableAccounts)
	if err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO accounts (
			account_id, ref, name,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	m := mapping.ToModelAccount(account)
	_, err = tx.Exec(ctx, query,
		m.AccountID, m.Ref, m.Name,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindAccountByID retrieves an active account.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	const query = `
		SELECT account_id, ref, name,
		       created_at, created_by, last_updated_at, last_updated_by,
		       deleted_at, deleted_by
		FROM accounts
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID, &m.Ref, &m.Name,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.DeletedAt, &m.DeletedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves active accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT account_id, ref, name,
		       created_at, created_by, last_updated_at, last_updated_by,
		       deleted_at, deleted_by
		FROM accounts
		WHERE deleted_at IS NULL
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.AccountID, &m.Ref, &m.Name,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&m.DeletedAt, &m.DeletedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}
