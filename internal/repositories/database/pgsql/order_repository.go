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
	"github.com/shopspring/decimal"
)

type PgxOrderRepository struct {
	BaseRepository
	refs portsrepo.ReferenceRepository
}

// newPgxOrderRepository creates the repository for orders, their line items
// and their payment sub-ledgers.
func newPgxOrderRepository(pool *pgxpool.Pool, refs portsrepo.ReferenceRepository) portsrepo.OrderRepositoryWithTx {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
		refs:           refs,
	}
}

var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

const insertOrderQuery = `
	INSERT INTO orders (
		order_id, ref, order_type, order_date, agent_id, contact_id,
		receipt_number, invoice_number, total_price, total_paid, total_due,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

const insertOrderItemQuery = `
	INSERT INTO order_items (
		item_id, order_id, article_id, quantity, unit_price,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

const insertPaymentQuery = `
	INSERT INTO payments (
		payment_id, order_id, ref, payment_date, amount, method, agent_id,
		cashing_transaction_id, deposit_transaction_id,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

// CreateOrder persists the order, its items, its payments and the purchase
// stock deltas in one database transaction. The order ref and one ref per
// payment are drawn inside the same transaction, so a failed write never
// leaks a ref into another committed row (a burned number is acceptable,
// a reused one is not).
func (r *PgxOrderRepository) CreateOrder(ctx context.Context, order domain.Order, stockDeltas map[string]decimal.Decimal) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	order.Ref, err = nextRefInTx(ctx, tx, r.refs, order.Type.RefTable())
	if err != nil {
		return nil, err
	}

	modelOrder := mapping.ToModelOrder(order)
	_, err = tx.Exec(ctx, insertOrderQuery,
		modelOrder.OrderID,
		modelOrder.Ref,
		modelOrder.OrderType,
		modelOrder.OrderDate,
		modelOrder.AgentID,
		modelOrder.ContactID,
		modelOrder.ReceiptNumber,
		modelOrder.InvoiceNumber,
		modelOrder.TotalPrice,
		modelOrder.TotalPaid,
		modelOrder.TotalDue,
		modelOrder.CreatedAt,
		modelOrder.CreatedBy,
		modelOrder.LastUpdatedAt,
		modelOrder.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert order "+order.OrderID, err)
	}

	batch := &pgx.Batch{}
	for _, item := range order.Items {
		m := mapping.ToModelOrderItem(item)
		batch.Queue(insertOrderItemQuery,
			m.ItemID, m.OrderID, m.ArticleID, m.Quantity, m.UnitPrice,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	// Payment refs are drawn in list order from the order type's sequence.
	for i := range order.Payments {
		order.Payments[i].Ref, err = nextRefInTx(ctx, tx, r.refs, order.Type.RefTable())
		if err != nil {
			return nil, err
		}
		m := mapping.ToModelPayment(order.Payments[i])
		batch.Queue(insertPaymentQuery,
			m.PaymentID, m.OrderID, m.Ref, m.PaymentDate, m.Amount, m.Method, m.AgentID,
			m.CashingTransactionID, m.DepositTransactionID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert items/payments for order "+order.OrderID, err)
		}
	}

	if err := applyStockDeltas(ctx, tx, stockDeltas, order.LastUpdatedBy, order.LastUpdatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &order, nil
}

// applyStockDeltas increments article stock inside the caller's transaction.
// A delta targeting an unknown article aborts the whole write.
func applyStockDeltas(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	const query = `
		UPDATE articles
		SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4
		WHERE article_id = $1;
	`
	for articleID, delta := range deltas {
		cmdTag, err := tx.Exec(ctx, query, articleID, delta, updatedAt, updatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to adjust stock for article "+articleID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("article " + articleID + " not found for stock adjustment")
		}
	}
	return nil
}

// FindOrderByID retrieves an active order with its items and active payments.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	const query = `
		SELECT order_id, ref, order_type, order_date, agent_id, contact_id,
		       receipt_number, invoice_number, total_price, total_paid, total_due,
		       created_at, created_by, last_updated_at, last_updated_by,
		       deleted_at, deleted_by
		FROM orders
		WHERE order_id = $1 AND deleted_at IS NULL;
	`
	var m models.Order
	err := r.Pool.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID, &m.Ref, &m.OrderType, &m.OrderDate, &m.AgentID, &m.ContactID,
		&m.ReceiptNumber, &m.InvoiceNumber, &m.TotalPrice, &m.TotalPaid, &m.TotalDue,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.DeletedAt, &m.DeletedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find order by ID "+orderID, err)
	}

	order := mapping.ToDomainOrder(m)

	items, err := r.findItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	payments, err := r.findActivePaymentsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Payments = payments

	return &order, nil
}

func (r *PgxOrderRepository) findItemsByOrderID(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const query = `
		SELECT item_id, order_id, article_id, quantity, unit_price,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for order "+orderID, err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var m models.OrderItem
		if err := rows.Scan(
			&m.ItemID, &m.OrderID, &m.ArticleID, &m.Quantity, &m.UnitPrice,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for order "+orderID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for order "+orderID, err)
	}

	return mapping.ToDomainOrderItemSlice(items), nil
}

func (r *PgxOrderRepository) findActivePaymentsByOrderID(ctx context.Context, orderID string) ([]domain.Payment, error) {
	const query = `
		SELECT payment_id, order_id, ref, payment_date, amount, method, agent_id,
		       cashing_transaction_id, deposit_transaction_id,
		       created_at, created_by, last_updated_at, last_updated_by,
		       deleted_at, deleted_by
		FROM payments
		WHERE order_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for order "+orderID, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var m models.Payment
		if err := rows.Scan(
			&m.PaymentID, &m.OrderID, &m.Ref, &m.PaymentDate, &m.Amount, &m.Method, &m.AgentID,
			&m.CashingTransactionID, &m.DepositTransactionID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&m.DeletedAt, &m.DeletedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for order "+orderID, err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for order "+orderID, err)
	}

	return mapping.ToDomainPaymentSlice(payments), nil
}

// UpdateOrderWithPaymentDiff persists the order header (including recomputed
// totals) together with the payment diff in one database transaction.
// Removed payments leave the sub-ledger for good; their linked settlement
// transactions are soft-deleted so the ledger and the links stay consistent.
func (r *PgxOrderRepository) UpdateOrderWithPaymentDiff(ctx context.Context, order domain.Order, diff domain.PaymentDiff) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	const updateOrderQuery = `
		UPDATE orders
		SET order_date = $2,
		    contact_id = $3,
		    receipt_number = $4,
		    invoice_number = $5,
		    total_price = $6,
		    total_paid = $7,
		    total_due = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE order_id = $1 AND deleted_at IS NULL;
	`
	modelOrder := mapping.ToModelOrder(order)
	cmdTag, err := tx.Exec(ctx, updateOrderQuery,
		modelOrder.OrderID,
		modelOrder.OrderDate,
		modelOrder.ContactID,
		modelOrder.ReceiptNumber,
		modelOrder.InvoiceNumber,
		modelOrder.TotalPrice,
		modelOrder.TotalPaid,
		modelOrder.TotalDue,
		modelOrder.LastUpdatedAt,
		modelOrder.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update order "+order.OrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError("order " + order.OrderID + " not found for update")
	}

	// Settlement transactions of removed payments go first, while the link
	// columns are still readable.
	for _, p := range diff.ToRemove {
		if txnID := p.SettlementTransactionID(); txnID != nil {
			if err := softDeleteTransactionInTx(ctx, tx, *txnID, order.LastUpdatedBy, order.LastUpdatedAt); err != nil {
				return nil, err
			}
		}
		if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, p.PaymentID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to remove payment "+p.PaymentID, err)
		}
	}

	const updatePaymentQuery = `
		UPDATE payments
		SET payment_date = $2, amount = $3, method = $4, agent_id = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE payment_id = $1 AND deleted_at IS NULL;
	`
	batch := &pgx.Batch{}
	for _, p := range diff.ToUpdate {
		m := mapping.ToModelPayment(p)
		batch.Queue(updatePaymentQuery,
			m.PaymentID, m.PaymentDate, m.Amount, m.Method, m.AgentID,
			m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	for i := range diff.ToInsert {
		diff.ToInsert[i].Ref, err = nextRefInTx(ctx, tx, r.refs, order.Type.RefTable())
		if err != nil {
			return nil, err
		}
		m := mapping.ToModelPayment(diff.ToInsert[i])
		batch.Queue(insertPaymentQuery,
			m.PaymentID, m.OrderID, m.Ref, m.PaymentDate, m.Amount, m.Method, m.AgentID,
			m.CashingTransactionID, m.DepositTransactionID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return nil, apperrors.NewAppError(500, "failed to apply payment diff for order "+order.OrderID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	order.Payments = append(append([]domain.Payment{}, diff.ToUpdate...), diff.ToInsert...)
	return &order, nil
}

// SoftDeleteOrderCascade soft-deletes the order, its payment sub-ledger and
// every settlement transaction those payments link to, atomically. A partial
// cascade (order deleted but a settlement transaction left active) would
// corrupt downstream balance computation.
func (r *PgxOrderRepository) SoftDeleteOrderCascade(ctx context.Context, orderID string, deletedBy string, deletedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	const deleteOrderQuery = `
		UPDATE orders
		SET deleted_at = $2, deleted_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE order_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, deleteOrderQuery, orderID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft-delete order "+orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("order " + orderID + " not found for delete")
	}

	const deleteSettlementsQuery = `
		UPDATE transactions t
		SET deleted_at = $2, deleted_by = $3, last_updated_at = $2, last_updated_by = $3
		FROM payments p
		WHERE p.order_id = $1 AND p.deleted_at IS NULL
		  AND t.deleted_at IS NULL
		  AND (t.transaction_id = p.cashing_transaction_id OR t.transaction_id = p.deposit_transaction_id);
	`
	if _, err := tx.Exec(ctx, deleteSettlementsQuery, orderID, deletedAt, deletedBy); err != nil {
		return apperrors.NewAppError(500, "failed to cascade delete settlement transactions for order "+orderID, err)
	}

	const deletePaymentsQuery = `
		UPDATE payments
		SET deleted_at = $2, deleted_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE order_id = $1 AND deleted_at IS NULL;
	`
	if _, err := tx.Exec(ctx, deletePaymentsQuery, orderID, deletedAt, deletedBy); err != nil {
		return apperrors.NewAppError(500, "failed to cascade delete payments for order "+orderID, err)
	}

	return r.Commit(ctx, tx)
}

// ListOrders retrieves a page of active orders, newest first, using
// (order_date, created_at) token pagination.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, orderType *domain.OrderType, limit int, nextToken *string) ([]domain.Order, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT order_id, ref, order_type, order_date, agent_id, contact_id,
		       receipt_number, invoice_number, total_price, total_paid, total_due,
		       created_at, created_by, last_updated_at, last_updated_by,
		       deleted_at, deleted_by
		FROM orders
	`
	filterClause := `WHERE deleted_at IS NULL`
	args := []interface{}{}
	if orderType != nil {
		args = append(args, string(*orderType))
		filterClause += ` AND order_type = $` + strconv.Itoa(len(args))
	}

	orderByClause := `ORDER BY order_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (order_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query orders", err)
	}
	defer rows.Close()

	modelOrders := make([]models.Order, 0, fetchLimit)
	for rows.Next() {
		var m models.Order
		if err := rows.Scan(
			&m.OrderID, &m.Ref, &m.OrderType, &m.OrderDate, &m.AgentID, &m.ContactID,
			&m.ReceiptNumber, &m.InvoiceNumber, &m.TotalPrice, &m.TotalPaid, &m.TotalDue,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&m.DeletedAt, &m.DeletedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan order row", err)
		}
		modelOrders = append(modelOrders, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating order rows", err)
	}

	var nextTokenVal *string
	results := modelOrders
	if len(modelOrders) > limit {
		last := modelOrders[limit-1]
		token := pagination.EncodeToken(last.OrderDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelOrders[:limit]
	}

	orders := make([]domain.Order, len(results))
	for i, m := range results {
		orders[i] = mapping.ToDomainOrder(m)
	}
	return orders, nextTokenVal, nil
}
