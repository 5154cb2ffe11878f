package domain

import (
	"fmt"

	"github.com/gestion-app/gestion_backend/internal/apperrors"
)

// TableKey names an entity class that owns its own reference sequence.
type TableKey string

const (
	TableUsers        TableKey = "users"
	TableAccounts     TableKey = "accounts"
	TableClients      TableKey = "clients"
	TableSuppliers    TableKey = "suppliers"
	TableSales        TableKey = "sales"
	TablePurchases    TableKey = "purchases"
	TableTransactions TableKey = "transactions"
)

// refPrefixes maps each table key to its fixed 3-letter human code.
var refPrefixes = map[TableKey]string{
	TableUsers:        "UTI",
	TableAccounts:     "COM",
	TableClients:      "CLI",
	TableSuppliers:    "FOU",
	TableSales:        "VEN",
	TablePurchases:    "ACH",
	TableTransactions: "TRA",
}

// RefPrefix returns the human-readable prefix for a table key.
func RefPrefix(key TableKey) (string, error) {
	prefix, ok := refPrefixes[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown table key %q", apperrors.ErrValidation, key)
	}
	return prefix, nil
}

// FormatRef renders a counter value as a human reference, e.g. "VEN-42".
func FormatRef(prefix string, counter int64) string {
	return fmt.Sprintf("%s-%d", prefix, counter)
}

// ReferenceSequence is one monotonically increasing counter row per entity class.
// It is mutated only by the atomic increment-and-read operation and never deleted.
type ReferenceSequence struct {
	TableKey TableKey `json:"tableKey"`
	Counter  int64    `json:"counter"`
}
