package services

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
)

// ReportingSvcFacade computes dashboard figures from the transaction log.
type ReportingSvcFacade interface {
	// GetBalances recomputes the per-method balances from the full active
	// transaction history. It never writes and never uses a cached value.
	GetBalances(ctx context.Context) (domain.MethodBalances, error)
}
