package dto

import (
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalancesResponse is the per-method net balance derived from the full
// transaction log at query time.
type BalancesResponse struct {
	Cash         decimal.Decimal `json:"cash"`
	Check        decimal.Decimal `json:"check"`
	TPE          decimal.Decimal `json:"tpe"`
	BankTransfer decimal.Decimal `json:"bank_transfer"`
}

// ToBalancesResponse converts the domain balances to their API shape.
func ToBalancesResponse(b domain.MethodBalances) BalancesResponse {
	return BalancesResponse{
		Cash:         b.Cash,
		Check:        b.Check,
		TPE:          b.TPE,
		BankTransfer: b.BankTransfer,
	}
}
