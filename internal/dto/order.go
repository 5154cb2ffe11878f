package dto

import (
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one order line as submitted by the client.
type OrderItemRequest struct {
	ArticleID string          `json:"articleID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// PaymentRequest is one sub-ledger entry as submitted by the client.
// Ref is empty for new payments; on update, a non-empty ref addresses the
// persisted payment to modify.
type PaymentRequest struct {
	Ref    string               `json:"ref"`
	Date   time.Time            `json:"date" binding:"required"`
	Amount decimal.Decimal      `json:"amount" binding:"required"`
	Method domain.PaymentMethod `json:"method" binding:"required,oneof=cash check tpe bank_transfer"`
}

// CreateOrderRequest creates a sale or purchase with its lines and payments.
type CreateOrderRequest struct {
	Type          domain.OrderType   `json:"type" binding:"required,oneof=sale purchase"`
	Date          time.Time          `json:"date" binding:"required"`
	ContactID     *string            `json:"contactID,omitempty"`
	ReceiptNumber string             `json:"receiptNumber"`
	InvoiceNumber string             `json:"invoiceNumber"`
	Items         []OrderItemRequest `json:"items" binding:"omitempty,dive"`
	Payments      []PaymentRequest   `json:"payments" binding:"omitempty,dive"`
}

// UpdateOrderRequest edits the order header and the payment sub-ledger; the
// payment list is diffed by ref against the persisted one. Line items are
// fixed at creation.
type UpdateOrderRequest struct {
	Date          time.Time        `json:"date" binding:"required"`
	ContactID     *string          `json:"contactID,omitempty"`
	ReceiptNumber string           `json:"receiptNumber"`
	InvoiceNumber string           `json:"invoiceNumber"`
	Payments      []PaymentRequest `json:"payments" binding:"omitempty,dive"`
}

// PaymentResponse is the API shape of one sub-ledger entry.
type PaymentResponse struct {
	PaymentID            string          `json:"paymentID"`
	Ref                  string          `json:"ref"`
	Date                 time.Time       `json:"date"`
	Amount               decimal.Decimal `json:"amount"`
	Method               string          `json:"method"`
	AgentID              string          `json:"agentID"`
	Settlement           string          `json:"settlement"`
	CashingTransactionID *string         `json:"cashingTransactionID,omitempty"`
	DepositTransactionID *string         `json:"depositTransactionID,omitempty"`
}

// OrderResponse is the API shape of an order with its sub-ledger.
type OrderResponse struct {
	OrderID       string            `json:"orderID"`
	Ref           string            `json:"ref"`
	Type          string            `json:"type"`
	Date          time.Time         `json:"date"`
	AgentID       string            `json:"agentID"`
	ContactID     *string           `json:"contactID,omitempty"`
	ReceiptNumber string            `json:"receiptNumber"`
	InvoiceNumber string            `json:"invoiceNumber"`
	TotalPrice    decimal.Decimal   `json:"totalPrice"`
	TotalPaid     decimal.Decimal   `json:"totalPaid"`
	TotalDue      decimal.Decimal   `json:"totalDue"`
	Payments      []PaymentResponse `json:"payments"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// ListOrdersParams holds parameters for listing orders.
type ListOrdersParams struct {
	Type      *domain.OrderType
	Limit     int
	NextToken *string
}

// ListOrdersResponse is a page of orders plus the token for the next page.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain payment to its API shape.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:            p.PaymentID,
		Ref:                  p.Ref,
		Date:                 p.Date,
		Amount:               p.Amount,
		Method:               string(p.Method),
		AgentID:              p.AgentID,
		Settlement:           string(p.Settlement()),
		CashingTransactionID: p.CashingTransactionID,
		DepositTransactionID: p.DepositTransactionID,
	}
}

// ToOrderResponse converts a domain order to its API shape.
func ToOrderResponse(o *domain.Order) OrderResponse {
	payments := make([]PaymentResponse, 0, len(o.Payments))
	for i := range o.Payments {
		if o.Payments[i].IsDeleted() {
			continue
		}
		payments = append(payments, ToPaymentResponse(&o.Payments[i]))
	}
	return OrderResponse{
		OrderID:       o.OrderID,
		Ref:           o.Ref,
		Type:          string(o.Type),
		Date:          o.Date,
		AgentID:       o.AgentID,
		ContactID:     o.ContactID,
		ReceiptNumber: o.ReceiptNumber,
		InvoiceNumber: o.InvoiceNumber,
		TotalPrice:    o.TotalPrice,
		TotalPaid:     o.TotalPaid,
		TotalDue:      o.TotalDue,
		Payments:      payments,
		CreatedAt:     o.CreatedAt,
	}
}
