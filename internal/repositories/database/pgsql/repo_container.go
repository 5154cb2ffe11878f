package pgsql

import (
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
// The reference repository is injected into all the others so they can draw
// refs inside their own transactions.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	refs := newPgxReferenceRepository(pool)
	return &portsrepo.RepositoryProvider{
		ReferenceRepo:   refs,
		OrderRepo:       newPgxOrderRepository(pool, refs),
		PaymentRepo:     newPgxPaymentRepository(pool, refs),
		TransactionRepo: newPgxTransactionRepository(pool, refs),
		ContactRepo:     newPgxContactRepository(pool, refs),
		AccountRepo:     newPgxAccountRepository(pool, refs),
		UserRepo:        newPgxUserRepository(pool, refs),
	}
}
