package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveAmount   = errors.New("amount must be strictly positive")
	ErrUnknownMethod       = errors.New("unknown payment method")
	ErrBothSettlementLinks = errors.New("payment has both cashing and deposit links set")
	ErrDuplicatePaymentRef = errors.New("duplicate payment ref in request")
	ErrUnknownPaymentRef   = errors.New("payment ref does not belong to this order")
	ErrTotalsMismatch      = errors.New("order totals disagree with payment sub-ledger")
)

// OrderType discriminates sales from purchases. The two share every field;
// only the ref prefix and the inventory side effect differ by tag.
type OrderType string

const (
	OrderSale     OrderType = "sale"
	OrderPurchase OrderType = "purchase"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == OrderSale || t == OrderPurchase
}

// RefTable returns the reference sequence that numbers orders of this type.
func (t OrderType) RefTable() TableKey {
	if t == OrderPurchase {
		return TablePurchases
	}
	return TableSales
}

// OrderItem is one line of an order. Line pricing is computed by the caller;
// the core only sums lines into the order total and, for purchases, turns
// quantities into stock deltas.
type OrderItem struct {
	ItemID    string          `json:"itemID"`
	OrderID   string          `json:"orderID"`
	ArticleID string          `json:"articleID"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	AuditFields
}

// LineTotal is the item's contribution to the order's total price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// Order is a sale or purchase header owning line items and a payment sub-ledger.
// Payments cannot outlive their order: soft-deleting the order cascades to them.
type Order struct {
	OrderID       string          `json:"orderID"`
	Ref           string          `json:"ref"`
	Type          OrderType       `json:"type"`
	Date          time.Time       `json:"date"`
	AgentID       string          `json:"agentID"`
	ContactID     *string         `json:"contactID,omitempty"`
	ReceiptNumber string          `json:"receiptNumber"`
	InvoiceNumber string          `json:"invoiceNumber"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	TotalDue      decimal.Decimal `json:"totalDue"`
	Items         []OrderItem     `json:"items,omitempty"`
	Payments      []Payment       `json:"payments,omitempty"`
	AuditFields
	SoftDelete
}

// SumItems computes an order total price from its line items.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// SumPayments computes the paid total from the active (non-deleted) payments.
func SumPayments(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.IsDeleted() {
			continue
		}
		total = total.Add(p.Amount)
	}
	return total
}

// RecomputeTotals derives TotalPrice, TotalPaid and TotalDue from the current
// item and payment sets. Every write path must call this before persisting.
func (o *Order) RecomputeTotals() {
	o.TotalPrice = SumItems(o.Items)
	o.TotalPaid = SumPayments(o.Payments)
	o.TotalDue = o.TotalPrice.Sub(o.TotalPaid)
}

// CheckTotals verifies the ledger invariants on a loaded order. A failure here
// means a previous write was not applied atomically.
func (o Order) CheckTotals() error {
	if !o.TotalDue.Equal(o.TotalPrice.Sub(o.TotalPaid)) {
		return fmt.Errorf("%w: due %s != price %s - paid %s",
			ErrTotalsMismatch, o.TotalDue, o.TotalPrice, o.TotalPaid)
	}
	if paid := SumPayments(o.Payments); !o.TotalPaid.Equal(paid) {
		return fmt.Errorf("%w: recorded paid %s != sub-ledger sum %s",
			ErrTotalsMismatch, o.TotalPaid, paid)
	}
	return nil
}

// PaymentDiff is the result of reconciling an incoming payment list against
// the persisted sub-ledger, keyed by ref.
type PaymentDiff struct {
	// ToInsert are incoming payments with no persisted counterpart; they still
	// need refs issued.
	ToInsert []Payment
	// ToUpdate are persisted payments with amount/date/method/agent taken from
	// the incoming entry. Identity and settlement links are preserved.
	ToUpdate []Payment
	// ToRemove are persisted payments absent from the incoming list. Removal is
	// a hard delete from the sub-ledger; a linked settlement transaction is
	// soft-deleted alongside.
	ToRemove []Payment
}

// DiffPayments reconciles the incoming payment list against the persisted one.
// Incoming entries without a ref are always new. An incoming ref may appear at
// most once and must match a persisted payment.
func DiffPayments(persisted, incoming []Payment) (PaymentDiff, error) {
	var diff PaymentDiff

	byRef := make(map[string]Payment, len(persisted))
	for _, p := range persisted {
		byRef[p.Ref] = p
	}

	seen := make(map[string]struct{}, len(incoming))
	matched := make(map[string]struct{}, len(incoming))
	for _, in := range incoming {
		if in.Ref == "" {
			diff.ToInsert = append(diff.ToInsert, in)
			continue
		}
		if _, dup := seen[in.Ref]; dup {
			return PaymentDiff{}, fmt.Errorf("%w: %s", ErrDuplicatePaymentRef, in.Ref)
		}
		seen[in.Ref] = struct{}{}

		existing, ok := byRef[in.Ref]
		if !ok {
			return PaymentDiff{}, fmt.Errorf("%w: %s", ErrUnknownPaymentRef, in.Ref)
		}
		matched[in.Ref] = struct{}{}

		updated := existing
		updated.Amount = in.Amount
		updated.Date = in.Date
		updated.Method = in.Method
		updated.AgentID = in.AgentID
		diff.ToUpdate = append(diff.ToUpdate, updated)
	}

	for _, p := range persisted {
		if _, ok := matched[p.Ref]; !ok {
			diff.ToRemove = append(diff.ToRemove, p)
		}
	}

	return diff, nil
}

// StockDeltas converts purchase line items into per-article stock increments.
// Sales have no inventory effect in this core.
func (o Order) StockDeltas() map[string]decimal.Decimal {
	if o.Type != OrderPurchase {
		return nil
	}
	deltas := make(map[string]decimal.Decimal, len(o.Items))
	for _, item := range o.Items {
		deltas[item.ArticleID] = deltas[item.ArticleID].Add(item.Quantity)
	}
	return deltas
}
