package mapping

import (
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/gestion-app/gestion_backend/internal/models"
)

// ToModelTransaction converts a domain ledger entry to its persistence row.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var method *string
	if d.Method != nil {
		s := string(*d.Method)
		method = &s
	}
	return models.Transaction{
		TransactionID:   d.TransactionID,
		Ref:             d.Ref,
		TransactionDate: d.Date,
		TransactionType: string(d.Type),
		Method:          method,
		Amount:          d.Amount,
		FromAccountID:   d.FromAccountID,
		ToAccountID:     d.ToAccountID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		DeletedAt:       d.DeletedAt,
		DeletedBy:       d.DeletedBy,
	}
}

// ToDomainTransaction converts a persistence ledger row to the domain form.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	var method *domain.PaymentMethod
	if m.Method != nil {
		pm := domain.PaymentMethod(*m.Method)
		method = &pm
	}
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Ref:           m.Ref,
		Date:          m.TransactionDate,
		Type:          domain.TransactionType(m.TransactionType),
		Method:        method,
		Amount:        m.Amount,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		SoftDelete:    domain.SoftDelete{DeletedAt: m.DeletedAt, DeletedBy: m.DeletedBy},
	}
}

// ToDomainTransactionSlice converts a slice of ledger rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
