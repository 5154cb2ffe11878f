package domain

// Account is a cash-holding account referenced by manual transfers.
// Its balance is never stored authoritatively; the canonical value is always
// the Balance Aggregator's recomputation over the transaction log.
type Account struct {
	AccountID string `json:"accountID"`
	Ref       string `json:"ref"`
	Name      string `json:"name"`
	AuditFields
	SoftDelete
}
