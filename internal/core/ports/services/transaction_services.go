package services

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/gestion-app/gestion_backend/internal/dto"
)

// TransactionSvcFacade exposes manual ledger operations.
type TransactionSvcFacade interface {
	// CreateTransaction records a manual transfer/receive/send or direct
	// sale/purchase entry, issuing its TRA ref atomically with the insert.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, agentID string) (*domain.Transaction, error)

	// GetTransactionByID retrieves an active ledger entry.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of active ledger entries, newest first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
