package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/gestion-app/gestion_backend/internal/apperrors"
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	"github.com/gestion-app/gestion_backend/internal/models"
	"github.com/gestion-app/gestion_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentRepository struct {
	BaseRepository
	refs portsrepo.ReferenceRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool, refs portsrepo.ReferenceRepository) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		refs:           refs,
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// FindPaymentByID retrieves an active payment.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	const query = `
		SELECT payment_id, order_id, ref, payment_date, amount, method, agent_id,
		       cashing_transaction_id, deposit_transaction_id,
		       created_at, created_by, last_updated_at, last_updated_by,
		       deleted_at, deleted_by
		FROM payments
		WHERE payment_id = $1 AND deleted_at IS NULL;
	`
	var m models.Payment
	err := r.Pool.QueryRow(ctx, query, paymentID).Scan(
		&m.PaymentID, &m.OrderID, &m.Ref, &m.PaymentDate, &m.Amount, &m.Method, &m.AgentID,
		&m.CashingTransactionID, &m.DepositTransactionID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.DeletedAt, &m.DeletedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}
	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

// LinkSettlement creates the settlement transaction and stamps its ID onto
// the payment, in one database transaction. Which link column is written
// follows the target state: CASHED fills cashing_transaction_id, DEPOSITED
// fills deposit_transaction_id. The transaction ref is drawn inside the
// same database transaction.
func (r *PgxPaymentRepository) LinkSettlement(ctx context.Context, paymentID string, txn domain.Transaction, state domain.SettlementState) (*domain.Transaction, error) {
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

	var linkQuery string
	switch state {
	case domain.SettlementCashed:
		linkQuery = `
			UPDATE payments
			SET cashing_transaction_id = $2, last_updated_at = $3, last_updated_by = $4
			WHERE payment_id = $1 AND deleted_at IS NULL
			  AND cashing_transaction_id IS NULL AND deposit_transaction_id IS NULL;
		`
	case domain.SettlementDeposited:
		linkQuery = `
			UPDATE payments
			SET deposit_transaction_id = $2, last_updated_at = $3, last_updated_by = $4
			WHERE payment_id = $1 AND deleted_at IS NULL
			  AND cashing_transaction_id IS NULL AND deposit_transaction_id IS NULL;
		`
	default:
		return nil, apperrors.NewAppError(500, "invalid target settlement state "+string(state), nil)
	}

	cmdTag, err := tx.Exec(ctx, linkQuery, paymentID, txn.TransactionID, txn.LastUpdatedAt, txn.LastUpdatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to link settlement on payment "+paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Lost the race to a concurrent settlement, or the payment vanished.
		return nil, apperrors.NewConflictError("payment " + paymentID + " is not unsettled")
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UnlinkSettlement clears the settlement link on the payment and soft-deletes
// the linked transaction, in one database transaction. The state names which
// settlement is being undone.
func (r *PgxPaymentRepository) UnlinkSettlement(ctx context.Context, paymentID string, transactionID string, state domain.SettlementState, deletedBy string, deletedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var unlinkQuery string
	switch state {
	case domain.SettlementCashed:
		unlinkQuery = `
			UPDATE payments
			SET cashing_transaction_id = NULL, last_updated_at = $3, last_updated_by = $4
			WHERE payment_id = $1 AND deleted_at IS NULL AND cashing_transaction_id = $2;
		`
	case domain.SettlementDeposited:
		unlinkQuery = `
			UPDATE payments
			SET deposit_transaction_id = NULL, last_updated_at = $3, last_updated_by = $4
			WHERE payment_id = $1 AND deleted_at IS NULL AND deposit_transaction_id = $2;
		`
	default:
		return apperrors.NewAppError(500, "invalid settlement state "+string(state), nil)
	}

	cmdTag, err := tx.Exec(ctx, unlinkQuery, paymentID, transactionID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to unlink settlement on payment "+paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewConflictError("payment " + paymentID + " does not carry settlement transaction " + transactionID)
	}

	if err := softDeleteTransactionInTx(ctx, tx, transactionID, deletedBy, deletedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
