package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
	"github.com/gestion-app/gestion_backend/internal/dto"
	"github.com/gestion-app/gestion_backend/internal/middleware"
)

// contactService provides client/supplier operations.
type contactService struct {
	contactRepo portsrepo.ContactRepositoryFacade
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo portsrepo.ContactRepositoryFacade) portssvc.ContactSvcFacade {
	return &contactService{contactRepo: contactRepo}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

// CreateContact persists a client or supplier; the ref is issued atomically
// with the insert.
func (s *contactService) CreateContact(ctx context.Context, req dto.CreateContactRequest, agentID string) (*domain.Contact, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	contact := domain.Contact{
		ContactID: uuid.NewString(),
		Kind:      req.Kind,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     agentID,
			LastUpdatedAt: now,
			LastUpdatedBy: agentID,
		},
	}

	created, err := s.contactRepo.CreateContact(ctx, contact)
	if err != nil {
		logger.Error("Failed to create contact", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Contact created", slog.String("contact_id", created.ContactID), slog.String("ref", created.Ref))
	return created, nil
}

// GetContactByID retrieves an active contact.
func (s *contactService) GetContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	return s.contactRepo.FindContactByID(ctx, contactID)
}

// ListContacts retrieves active contacts, optionally filtered by kind.
func (s *contactService) ListContacts(ctx context.Context, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error) {
	return s.contactRepo.ListContacts(ctx, kind, limit, offset)
}
