package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the means by which a payment was received.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCheck        PaymentMethod = "check"
	MethodTPE          PaymentMethod = "tpe"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentMethods lists every valid method, in balance-report order.
var PaymentMethods = []PaymentMethod{MethodCash, MethodCheck, MethodTPE, MethodBankTransfer}

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCheck, MethodTPE, MethodBankTransfer:
		return true
	}
	return false
}

// SettlementState is the lifecycle state of a payment, derived from its two
// transaction-link fields. At most one link may be set at a time.
type SettlementState string

const (
	SettlementUnsettled SettlementState = "UNSETTLED"
	SettlementCashed    SettlementState = "CASHED"
	SettlementDeposited SettlementState = "DEPOSITED"
)

// Payment is one recorded amount applied against an order's due balance.
// It belongs to exactly one order and may later be linked to exactly one
// settlement transaction: by cashing for cash payments, by deposit otherwise.
type Payment struct {
	PaymentID            string          `json:"paymentID"`
	OrderID              string          `json:"orderID"`
	Ref                  string          `json:"ref"`
	Date                 time.Time       `json:"date"`
	Amount               decimal.Decimal `json:"amount"` // strictly positive
	Method               PaymentMethod   `json:"method"`
	AgentID              string          `json:"agentID"`
	CashingTransactionID *string         `json:"cashingTransactionID,omitempty"`
	DepositTransactionID *string         `json:"depositTransactionID,omitempty"`
	AuditFields
	SoftDelete
}

// Settlement derives the payment's settlement state from its link fields.
func (p Payment) Settlement() SettlementState {
	switch {
	case p.CashingTransactionID != nil:
		return SettlementCashed
	case p.DepositTransactionID != nil:
		return SettlementDeposited
	default:
		return SettlementUnsettled
	}
}

// SettlementTransactionID returns the linked settlement transaction, if any.
func (p Payment) SettlementTransactionID() *string {
	if p.CashingTransactionID != nil {
		return p.CashingTransactionID
	}
	return p.DepositTransactionID
}

// Validate checks the structural invariants of a payment.
func (p Payment) Validate() error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}
	if !p.Method.Valid() {
		return ErrUnknownMethod
	}
	if p.CashingTransactionID != nil && p.DepositTransactionID != nil {
		return ErrBothSettlementLinks
	}
	return nil
}
