package repositories

import (
	"context"
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
)

// PaymentReader defines read operations for individual payments.
type PaymentReader interface {
	// FindPaymentByID retrieves an active payment. Soft-deleted payments are
	// reported as not found.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
}

// SettlementWriter persists settlement transitions. The transaction creation
// (or soft-deletion) and the payment link column always move in lockstep
// inside one database transaction.
type SettlementWriter interface {
	// LinkSettlement inserts the settlement transaction, drawing its TRA ref in
	// the same database transaction, and sets the payment's cashing or deposit
	// link according to state. Returns the created transaction.
	LinkSettlement(ctx context.Context, paymentID string, txn domain.Transaction, state domain.SettlementState) (*domain.Transaction, error)

	// UnlinkSettlement soft-deletes the linked settlement transaction and
	// clears the payment's link column according to state.
	UnlinkSettlement(ctx context.Context, paymentID string, transactionID string, state domain.SettlementState, deletedBy string, deletedAt time.Time) error
}

// PaymentRepositoryFacade combines payment read and settlement write operations.
type PaymentRepositoryFacade interface {
	PaymentReader
	SettlementWriter
}
