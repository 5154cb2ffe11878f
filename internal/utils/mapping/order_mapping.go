package mapping

import (
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/gestion-app/gestion_backend/internal/models"
)

// ToModelOrder converts a domain order header to its persistence row.
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:       d.OrderID,
		Ref:           d.Ref,
		OrderType:     string(d.Type),
		OrderDate:     d.Date,
		AgentID:       d.AgentID,
		ContactID:     d.ContactID,
		ReceiptNumber: d.ReceiptNumber,
		InvoiceNumber: d.InvoiceNumber,
		TotalPrice:    d.TotalPrice,
		TotalPaid:     d.TotalPaid,
		TotalDue:      d.TotalDue,
		AuditFields:   ToModelAuditFields(d.AuditFields),
		DeletedAt:     d.DeletedAt,
		DeletedBy:     d.DeletedBy,
	}
}

// ToDomainOrder converts a persistence order row to the domain form.
// Items and payments are loaded and attached separately.
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:       m.OrderID,
		Ref:           m.Ref,
		Type:          domain.OrderType(m.OrderType),
		Date:          m.OrderDate,
		AgentID:       m.AgentID,
		ContactID:     m.ContactID,
		ReceiptNumber: m.ReceiptNumber,
		InvoiceNumber: m.InvoiceNumber,
		TotalPrice:    m.TotalPrice,
		TotalPaid:     m.TotalPaid,
		TotalDue:      m.TotalDue,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		SoftDelete:    domain.SoftDelete{DeletedAt: m.DeletedAt, DeletedBy: m.DeletedBy},
	}
}

// ToModelOrderItem converts a domain order line to its persistence row.
func ToModelOrderItem(d domain.OrderItem) models.OrderItem {
	return models.OrderItem{
		ItemID:      d.ItemID,
		OrderID:     d.OrderID,
		ArticleID:   d.ArticleID,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrderItem converts a persistence order line to the domain form.
func ToDomainOrderItem(m models.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ItemID:      m.ItemID,
		OrderID:     m.OrderID,
		ArticleID:   m.ArticleID,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain payment to its persistence row.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:            d.PaymentID,
		OrderID:              d.OrderID,
		Ref:                  d.Ref,
		PaymentDate:          d.Date,
		Amount:               d.Amount,
		Method:               string(d.Method),
		AgentID:              d.AgentID,
		CashingTransactionID: d.CashingTransactionID,
		DepositTransactionID: d.DepositTransactionID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
		DeletedAt:            d.DeletedAt,
		DeletedBy:            d.DeletedBy,
	}
}

// ToDomainPayment converts a persistence payment row to the domain form.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:            m.PaymentID,
		OrderID:              m.OrderID,
		Ref:                  m.Ref,
		Date:                 m.PaymentDate,
		Amount:               m.Amount,
		Method:               domain.PaymentMethod(m.Method),
		AgentID:              m.AgentID,
		CashingTransactionID: m.CashingTransactionID,
		DepositTransactionID: m.DepositTransactionID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
		SoftDelete:           domain.SoftDelete{DeletedAt: m.DeletedAt, DeletedBy: m.DeletedBy},
	}
}

// ToDomainPaymentSlice converts a slice of payment rows.
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	out := make([]domain.Payment, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPayment(m)
	}
	return out
}

// ToDomainOrderItemSlice converts a slice of order line rows.
func ToDomainOrderItemSlice(ms []models.OrderItem) []domain.OrderItem {
	out := make([]domain.OrderItem, len(ms))
	for i, m := range ms {
		out[i] = ToDomainOrderItem(m)
	}
	return out
}
