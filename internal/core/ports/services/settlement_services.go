package services

import (
	"context"
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
)

// SettlementSvcFacade drives the payment settlement state machine.
//
// A cash payment moves Unsettled -> Cashed -> Unsettled; a non-cash payment
// moves Unsettled -> Deposited -> Unsettled. The two terminal links are
// mutually exclusive, and every transition keeps the settlement transaction's
// lifecycle in lockstep with the payment's link field.
type SettlementSvcFacade interface {
	// CashPayment settles a cash-method payment, creating the cashing transaction.
	CashPayment(ctx context.Context, paymentID string, date time.Time, agentID string) (*domain.Transaction, error)

	// UndoCashing reverts a cashed payment to unsettled, soft-deleting the
	// linked transaction.
	UndoCashing(ctx context.Context, paymentID string, agentID string) error

	// DepositPayment settles a non-cash payment, creating the deposit transaction.
	DepositPayment(ctx context.Context, paymentID string, date time.Time, agentID string) (*domain.Transaction, error)

	// UndoDeposit reverts a deposited payment to unsettled.
	UndoDeposit(ctx context.Context, paymentID string, agentID string) error
}
