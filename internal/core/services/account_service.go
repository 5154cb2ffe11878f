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

// accountService provides cash-holding account operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists an account; the ref is issued atomically with the
// insert. Accounts carry no stored balance.
func (s *accountService) CreateAccount(ctx context.Context, name string, agentID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Name:      name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     agentID,
			LastUpdatedAt: now,
			LastUpdatedBy: agentID,
		},
	}

	created, err := s.accountRepo.CreateAccount(ctx, account)
	if err != nil {
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", created.AccountID), slog.String("ref", created.Ref))
	return created, nil
}

// ListAccounts retrieves active accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}
