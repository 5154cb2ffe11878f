package repositories

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
)

// AccountRepositoryFacade defines operations for cash-holding accounts.
type AccountRepositoryFacade interface {
	// CreateAccount persists an account, drawing its COM ref inside the same
	// database transaction as the insert.
	CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// FindAccountByID retrieves an active account.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}
