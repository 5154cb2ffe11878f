package repositories

import (
	"context"
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderReader defines read operations for orders and their sub-ledgers.
type OrderReader interface {
	// FindOrderByID retrieves an active order with its items and active payments.
	// Soft-deleted orders are reported as not found.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves a paginated list of active orders of the given type
	// (both types when nil) using token-based pagination.
	ListOrders(ctx context.Context, orderType *domain.OrderType, limit int, nextToken *string) ([]domain.Order, *string, error)
}

// OrderWriter defines write operations for orders. Every method is a single
// atomic unit of work: partial application of a diff or a cascade is a
// correctness violation, not a cosmetic one.
type OrderWriter interface {
	// CreateOrder persists the order, its items and its payments, drawing the
	// order ref and one ref per payment from the reference sequences inside the
	// same transaction. Non-nil stockDeltas are applied to article stock in the
	// same transaction. Returns the order with refs assigned.
	CreateOrder(ctx context.Context, order domain.Order, stockDeltas map[string]decimal.Decimal) (*domain.Order, error)

	// UpdateOrderWithPaymentDiff persists the new header totals together with
	// the payment diff: inserts draw fresh refs, updates keep identity and
	// settlement links, removals are deleted from the sub-ledger and their
	// linked settlement transactions soft-deleted. One transaction.
	UpdateOrderWithPaymentDiff(ctx context.Context, order domain.Order, diff domain.PaymentDiff) (*domain.Order, error)

	// SoftDeleteOrderCascade soft-deletes the order, every payment in its
	// sub-ledger and every settlement transaction linked from those payments,
	// in one transaction.
	SoftDeleteOrderCascade(ctx context.Context, orderID string, deletedBy string, deletedAt time.Time) error
}

// OrderRepositoryFacade combines all order repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

// OrderRepositoryWithTx extends OrderRepositoryFacade with transaction capabilities.
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TransactionManager
}
