package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gestion-app/gestion_backend/internal/apperrors"
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
	"github.com/gestion-app/gestion_backend/internal/middleware"
)

// settlementService drives the payment settlement state machine. Every
// transition pairs a payment link mutation with the settlement transaction's
// lifecycle inside one repository unit of work.
type settlementService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(paymentRepo portsrepo.PaymentRepositoryFacade) portssvc.SettlementSvcFacade {
	return &settlementService{paymentRepo: paymentRepo}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// settlementTxn builds the ledger entry recording a settlement. Both cashing
// and deposit settlements are recorded as cashing entries; the method tells
// the balance fold which side to debit.
func settlementTxn(payment domain.Payment, date time.Time, agentID string, now time.Time) domain.Transaction {
	method := payment.Method
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          date,
		Type:          domain.TxnCashing,
		Method:        &method,
		Amount:        payment.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     agentID,
			LastUpdatedAt: now,
			LastUpdatedBy: agentID,
		},
	}
}

// CashPayment settles a cash-method payment, creating the cashing transaction
// and linking it to the payment atomically.
func (s *settlementService) CashPayment(ctx context.Context, paymentID string, date time.Time, agentID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Method != domain.MethodCash {
		return nil, apperrors.NewConflictError(fmt.Sprintf("only cash payments can be cashed; payment %s uses %s", paymentID, payment.Method))
	}
	if state := payment.Settlement(); state != domain.SettlementUnsettled {
		return nil, apperrors.NewConflictError("payment " + paymentID + " is already " + string(state))
	}

	now := time.Now().UTC()
	txn, err := s.paymentRepo.LinkSettlement(ctx, paymentID, settlementTxn(*payment, date, agentID, now), domain.SettlementCashed)
	if err != nil {
		logger.Error("Failed to cash payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment cashed", slog.String("payment_id", paymentID), slog.String("transaction_id", txn.TransactionID))
	return txn, nil
}

// UndoCashing reverts a cashed payment to unsettled, soft-deleting the linked
// transaction.
func (s *settlementService) UndoCashing(ctx context.Context, paymentID string, agentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.CashingTransactionID == nil {
		return apperrors.NewConflictError("payment " + paymentID + " is not cashed")
	}

	now := time.Now().UTC()
	if err := s.paymentRepo.UnlinkSettlement(ctx, paymentID, *payment.CashingTransactionID, domain.SettlementCashed, agentID, now); err != nil {
		logger.Error("Failed to undo cashing", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Cashing undone", slog.String("payment_id", paymentID))
	return nil
}

// DepositPayment settles a non-cash payment, creating the deposit transaction
// and linking it to the payment atomically.
func (s *settlementService) DepositPayment(ctx context.Context, paymentID string, date time.Time, agentID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Method == domain.MethodCash {
		return nil, apperrors.NewConflictError("cash payments are cashed, not deposited; payment " + paymentID)
	}
	if state := payment.Settlement(); state != domain.SettlementUnsettled {
		return nil, apperrors.NewConflictError("payment " + paymentID + " is already " + string(state))
	}

	now := time.Now().UTC()
	txn, err := s.paymentRepo.LinkSettlement(ctx, paymentID, settlementTxn(*payment, date, agentID, now), domain.SettlementDeposited)
	if err != nil {
		logger.Error("Failed to deposit payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment deposited", slog.String("payment_id", paymentID), slog.String("transaction_id", txn.TransactionID))
	return txn, nil
}

// UndoDeposit reverts a deposited payment to unsettled.
func (s *settlementService) UndoDeposit(ctx context.Context, paymentID string, agentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.DepositTransactionID == nil {
		return apperrors.NewConflictError("payment " + paymentID + " is not deposited")
	}

	now := time.Now().UTC()
	if err := s.paymentRepo.UnlinkSettlement(ctx, paymentID, *payment.DepositTransactionID, domain.SettlementDeposited, agentID, now); err != nil {
		logger.Error("Failed to undo deposit", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Deposit undone", slog.String("payment_id", paymentID))
	return nil
}
