package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	// TxnSale and TxnPurchase are manual entries recording order-side money movements.
	TxnSale     TransactionType = "sale"
	TxnPurchase TransactionType = "purchase"
	// TxnCashing is the settlement artifact of a payment, produced by the
	// cashing workflow for cash payments and the deposit workflow for the rest.
	TxnCashing TransactionType = "cashing"
	// TxnSend and TxnReceive are manual transfers out of / into an account.
	TxnSend    TransactionType = "send"
	TxnReceive TransactionType = "receive"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TxnSale, TxnPurchase, TxnCashing, TxnSend, TxnReceive:
		return true
	}
	return false
}

// Transaction is one entry of the append-mostly ledger. Balances are always
// recomputed from the full set of active entries; no stored balance is
// authoritative.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Ref           string          `json:"ref"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"type"`
	Method        *PaymentMethod  `json:"method,omitempty"` // nil for pure transfers
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID *string         `json:"fromAccountID,omitempty"`
	ToAccountID   *string         `json:"toAccountID,omitempty"`
	AuditFields
	SoftDelete
}

// MethodBalances holds the derived net balance per payment method.
type MethodBalances struct {
	Cash         decimal.Decimal `json:"cash"`
	Check        decimal.Decimal `json:"check"`
	TPE          decimal.Decimal `json:"tpe"`
	BankTransfer decimal.Decimal `json:"bank_transfer"`
}

// Get returns the balance for a method.
func (b MethodBalances) Get(m PaymentMethod) decimal.Decimal {
	switch m {
	case MethodCash:
		return b.Cash
	case MethodCheck:
		return b.Check
	case MethodTPE:
		return b.TPE
	case MethodBankTransfer:
		return b.BankTransfer
	}
	return decimal.Zero
}

func (b *MethodBalances) add(m PaymentMethod, amount decimal.Decimal) {
	switch m {
	case MethodCash:
		b.Cash = b.Cash.Add(amount)
	case MethodCheck:
		b.Check = b.Check.Add(amount)
	case MethodTPE:
		b.TPE = b.TPE.Add(amount)
	case MethodBankTransfer:
		b.BankTransfer = b.BankTransfer.Add(amount)
	}
}

// ComputeBalances folds the active transaction log into per-method balances.
//
// Sign convention: sale and receive entries credit their method, purchase and
// send entries debit it. A cashing entry always credits cash; when its method
// is a non-cash one it also debits that method, since the money left the
// check/tpe/bank position when it was cashed in. A cashing entry whose method
// is cash only credits cash once.
func ComputeBalances(txns []Transaction) MethodBalances {
	var balances MethodBalances
	for _, txn := range txns {
		if txn.IsDeleted() {
			continue
		}
		switch txn.Type {
		case TxnSale, TxnReceive:
			if txn.Method != nil {
				balances.add(*txn.Method, txn.Amount)
			}
		case TxnPurchase, TxnSend:
			if txn.Method != nil {
				balances.add(*txn.Method, txn.Amount.Neg())
			}
		case TxnCashing:
			balances.add(MethodCash, txn.Amount)
			if txn.Method != nil && *txn.Method != MethodCash {
				balances.add(*txn.Method, txn.Amount.Neg())
			}
		}
	}
	return balances
}
