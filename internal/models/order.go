package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the persistence row for a sale or purchase header.
type Order struct {
	OrderID       string          `db:"order_id"`
	Ref           string          `db:"ref"`
	OrderType     string          `db:"order_type"` // sale | purchase
	OrderDate     time.Time       `db:"order_date"`
	AgentID       string          `db:"agent_id"`
	ContactID     *string         `db:"contact_id"`
	ReceiptNumber string          `db:"receipt_number"`
	InvoiceNumber string          `db:"invoice_number"`
	TotalPrice    decimal.Decimal `db:"total_price"`
	TotalPaid     decimal.Decimal `db:"total_paid"`
	TotalDue      decimal.Decimal `db:"total_due"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
	DeletedBy *string    `db:"deleted_by"`
}

// OrderItem is the persistence row for one order line.
type OrderItem struct {
	ItemID    string          `db:"item_id"`
	OrderID   string          `db:"order_id"`
	ArticleID string          `db:"article_id"`
	Quantity  decimal.Decimal `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	AuditFields
}

// Payment is the persistence row for one sub-ledger entry of an order.
type Payment struct {
	PaymentID            string          `db:"payment_id"`
	OrderID              string          `db:"order_id"`
	Ref                  string          `db:"ref"`
	PaymentDate          time.Time       `db:"payment_date"`
	Amount               decimal.Decimal `db:"amount"`
	Method               string          `db:"method"`
	AgentID              string          `db:"agent_id"`
	CashingTransactionID *string         `db:"cashing_transaction_id"`
	DepositTransactionID *string         `db:"deposit_transaction_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
	DeletedBy *string    `db:"deleted_by"`
}
