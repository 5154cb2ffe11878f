package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence row for one ledger entry.
// Method is null for pure account-to-account transfers.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	Ref             string          `db:"ref"`
	TransactionDate time.Time       `db:"transaction_date"`
	TransactionType string          `db:"transaction_type"` // sale | purchase | cashing | send | receive
	Method          *string         `db:"method"`
	Amount          decimal.Decimal `db:"amount"`
	FromAccountID   *string         `db:"from_account_id"`
	ToAccountID     *string         `db:"to_account_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
	DeletedBy *string    `db:"deleted_by"`
}

// ReferenceSequence is the per-table-key counter row.
type ReferenceSequence struct {
	TableKey string `db:"table_key"`
	Counter  int64  `db:"counter"`
}
