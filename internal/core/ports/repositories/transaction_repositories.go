package repositories

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
)

// TransactionReader defines read operations over the ledger.
type TransactionReader interface {
	// FindTransactionByID retrieves an active ledger entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindActiveTransactions retrieves every non-deleted ledger entry. Balances
	// are always recomputed from this full log; no cached balance is authoritative.
	FindActiveTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactions retrieves a paginated list of active ledger entries
	// using token-based pagination, newest first.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for manual ledger entries.
type TransactionWriter interface {
	// CreateTransaction persists a manual entry, drawing its TRA ref inside the
	// same database transaction as the insert.
	CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines ledger read and write operations.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
