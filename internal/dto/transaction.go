package dto

import (
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a manual ledger entry: a transfer between
// accounts or a direct sale/purchase movement. Settlement entries are never
// created through this path; they come from the settlement workflow.
type CreateTransactionRequest struct {
	Type          domain.TransactionType `json:"type" binding:"required,oneof=sale purchase send receive"`
	Date          time.Time              `json:"date" binding:"required"`
	Method        *domain.PaymentMethod  `json:"method,omitempty" binding:"omitempty,oneof=cash check tpe bank_transfer"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	FromAccountID *string                `json:"fromAccountID,omitempty"`
	ToAccountID   *string                `json:"toAccountID,omitempty"`
}

// TransactionResponse is the API shape of one ledger entry.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Ref           string          `json:"ref"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	Method        *string         `json:"method,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID *string         `json:"fromAccountID,omitempty"`
	ToAccountID   *string         `json:"toAccountID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListTransactionsParams holds parameters for listing ledger entries.
type ListTransactionsParams struct {
	Limit     int
	NextToken *string
}

// ListTransactionsResponse is a page of ledger entries plus the next-page token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain ledger entry to its API shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	var method *string
	if t.Method != nil {
		s := string(*t.Method)
		method = &s
	}
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Ref:           t.Ref,
		Date:          t.Date,
		Type:          string(t.Type),
		Method:        method,
		Amount:        t.Amount,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain ledger entries.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
