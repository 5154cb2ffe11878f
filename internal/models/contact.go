package models

import "time"

// Contact is the persistence row for a client or supplier.
type Contact struct {
	ContactID string `db:"contact_id"`
	Ref       string `db:"ref"`
	Kind      string `db:"kind"` // client | supplier
	Name      string `db:"name"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	Address   string `db:"address"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
	DeletedBy *string    `db:"deleted_by"`
}

// Account is the persistence row for a cash-holding account.
// No balance column: balances are recomputed from the transaction log.
type Account struct {
	AccountID string `db:"account_id"`
	Ref       string `db:"ref"`
	Name      string `db:"name"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
	DeletedBy *string    `db:"deleted_by"`
}

// User is the persistence row for an agent.
type User struct {
	UserID       string `db:"user_id"`
	Ref          string `db:"ref"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
	DeletedBy *string    `db:"deleted_by"`
}
