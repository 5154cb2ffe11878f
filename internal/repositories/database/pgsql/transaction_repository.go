package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gestion-app/gestion_backend/internal/apperrors"
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	"github.com/gestion-app/gestion_backend/internal/models"
	"github.com/gestion-app/gestion_backend/internal/utils/mapping"
	"github.com/gestion-app/gestion_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
	refs portsrepo.ReferenceRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool, refs portsrepo.ReferenceRepository) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		refs:           refs,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const insertTransactionQuery = `
	INSERT INTO transactions (
		transaction_id, ref, transaction_date, transaction_type, method, amount,
		from_account_id, to_account_id,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

const selectTransactionColumns = `
	SELECT transaction_id, ref, transaction_date, transaction_type, method, amount,
	       from_account_id, to_account_id,
	       created_at, created_by, last_updated_at, last_updated_by,
	       deleted_at, deleted_by
	FROM transactions
`

// insertTransactionInTx writes one ledger row on an open transaction. The
// caller is responsible for having drawn the ref first.
func insertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := tx.Exec(ctx, insertTransactionQuery,
		m.TransactionID, m.Ref, m.TransactionDate, m.TransactionType, m.Method, m.Amount,
		m.FromAccountID, m.ToAccountID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}
	return nil
}

// softDeleteTransactionInTx soft-deletes one active ledger row on an open
// transaction.
func softDeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, deletedBy string, deletedAt time.Time) error {
	const query = `
		UPDATE transactions
		SET deleted_at = $2, deleted_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, transactionID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft-delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found for delete")
	}
	return nil
}

// CreateTransaction persists a manual ledger entry, drawing its ref inside
// the same database transaction as the insert.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	txn.Ref, err = nextRefInTx(ctx, tx, r.refs, domain.TableTransactions)
	if err != nil {
		return nil, err
	}
	if err := insertTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// FindTransactionByID retrieves an active ledger entry.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := selectTransactionColumns + ` WHERE transaction_id = $1 AND deleted_at IS NULL;`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID, &m.Ref, &m.TransactionDate, &m.TransactionType, &m.Method, &m.Amount,
		&m.FromAccountID, &m.ToAccountID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.DeletedAt, &m.DeletedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindActiveTransactions retrieves the full active ledger, oldest first.
func (r *PgxTransactionRepository) FindActiveTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := selectTransactionColumns + ` WHERE deleted_at IS NULL ORDER BY transaction_date, created_at;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active transactions", err)
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// ListTransactions retrieves a page of active ledger entries, newest first,
// using (transaction_date, created_at) token pagination.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	filterClause := `WHERE deleted_at IS NULL`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (transaction_date, created_at) < ($1, $2)`
	}

	args = append(args, fetchLimit)
	query := selectTransactionColumns + " " + filterClause +
		` ORDER BY transaction_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	txns, err := scanTransactionRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		txns = txns[:limit]
	}
	return txns, nextTokenVal, nil
}

func scanTransactionRows(rows pgx.Rows) ([]domain.Transaction, error) {
	modelTxns := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID, &m.Ref, &m.TransactionDate, &m.TransactionType, &m.Method, &m.Amount,
			&m.FromAccountID, &m.ToAccountID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&m.DeletedAt, &m.DeletedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}
