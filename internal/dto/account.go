package dto

import (
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
)

// CreateAccountRequest creates a cash-holding account.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// AccountResponse is the API shape of an account. No balance field: the
// canonical balances come from the reporting endpoint.
type AccountResponse struct {
	AccountID string    `json:"accountID"`
	Ref       string    `json:"ref"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its API shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Ref:       a.Ref,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}
