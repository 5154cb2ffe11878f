package services

import (
	"context"
	"log/slog"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
	"github.com/gestion-app/gestion_backend/internal/middleware"
)

// reportingService computes dashboard figures from the transaction log.
type reportingService struct {
	txnRepo portsrepo.TransactionReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(txnRepo portsrepo.TransactionReader) portssvc.ReportingSvcFacade {
	return &reportingService{txnRepo: txnRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetBalances folds the full active transaction history into per-method
// balances. The log is the single source of truth; nothing is cached.
func (s *reportingService) GetBalances(ctx context.Context) (domain.MethodBalances, error) {
	txns, err := s.txnRepo.FindActiveTransactions(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load transactions for balances", slog.String("error", err.Error()))
		return domain.MethodBalances{}, err
	}
	return domain.ComputeBalances(txns), nil
}
