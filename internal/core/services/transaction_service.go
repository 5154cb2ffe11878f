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
	"github.com/gestion-app/gestion_backend/internal/dto"
	"github.com/gestion-app/gestion_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// transactionService provides manual ledger operations.
type transactionService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction records a manual ledger entry. Settlement entries are
// never created through this path; the binding restricts the type.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, agentID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, domain.ErrNonPositiveAmount)
	}
	if req.Type == domain.TxnCashing {
		return nil, fmt.Errorf("%w: cashing entries come from the settlement workflow", apperrors.ErrValidation)
	}
	if req.Method != nil && !req.Method.Valid() {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, domain.ErrUnknownMethod)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          req.Date,
		Type:          req.Type,
		Method:        req.Method,
		Amount:        req.Amount,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     agentID,
			LastUpdatedAt: now,
			LastUpdatedBy: agentID,
		},
	}

	created, err := s.txnRepo.CreateTransaction(ctx, txn)
	if err != nil {
		logger.Error("Failed to create transaction", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction created", slog.String("transaction_id", created.TransactionID), slog.String("ref", created.Ref))
	return created, nil
}

// GetTransactionByID retrieves an active ledger entry.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactions retrieves a page of active ledger entries, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
