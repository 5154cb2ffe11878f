package repositories

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
)

// ContactReader defines read operations for contacts.
type ContactReader interface {
	// FindContactByID retrieves an active contact. Soft-deleted contacts are
	// reported as not found, which is what the order counterparty check relies on.
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)

	// ListContacts retrieves active contacts of the given kind (both when nil).
	ListContacts(ctx context.Context, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error)
}

// ContactWriter defines write operations for contacts.
type ContactWriter interface {
	// CreateContact persists a contact, drawing its CLI or FOU ref inside the
	// same database transaction as the insert.
	CreateContact(ctx context.Context, contact domain.Contact) (*domain.Contact, error)
}

// ContactRepositoryFacade combines contact read and write operations.
type ContactRepositoryFacade interface {
	ContactReader
	ContactWriter
}
