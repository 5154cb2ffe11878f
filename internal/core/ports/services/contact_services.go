package services

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/gestion-app/gestion_backend/internal/dto"
)

// ContactSvcFacade exposes client/supplier operations.
type ContactSvcFacade interface {
	CreateContact(ctx context.Context, req dto.CreateContactRequest, agentID string) (*domain.Contact, error)
	GetContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error)
}

// AccountSvcFacade exposes cash-holding account operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, name string, agentID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}
