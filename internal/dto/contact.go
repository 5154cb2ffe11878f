package dto

import (
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
)

// CreateContactRequest creates a client or supplier.
type CreateContactRequest struct {
	Kind    domain.ContactKind `json:"kind" binding:"required,oneof=client supplier"`
	Name    string             `json:"name" binding:"required"`
	Phone   string             `json:"phone"`
	Email   string             `json:"email" binding:"omitempty,email"`
	Address string             `json:"address"`
}

// ContactResponse is the API shape of a contact.
type ContactResponse struct {
	ContactID string    `json:"contactID"`
	Ref       string    `json:"ref"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToContactResponse converts a domain contact to its API shape.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID: c.ContactID,
		Ref:       c.Ref,
		Kind:      string(c.Kind),
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}
