package domain

// ContactKind discriminates clients from suppliers. Both kinds can be the
// counterparty of an order; only the ref prefix differs.
type ContactKind string

const (
	ContactClient   ContactKind = "client"
	ContactSupplier ContactKind = "supplier"
)

// RefTable returns the reference sequence that numbers contacts of this kind.
func (k ContactKind) RefTable() TableKey {
	if k == ContactSupplier {
		return TableSuppliers
	}
	return TableClients
}

// Contact is an order counterparty: a client for sales, a supplier for purchases.
type Contact struct {
	ContactID string      `json:"contactID"`
	Ref       string      `json:"ref"`
	Kind      ContactKind `json:"kind"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email"`
	Address   string      `json:"address"`
	AuditFields
	SoftDelete
}
