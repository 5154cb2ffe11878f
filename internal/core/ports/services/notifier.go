package services

import "github.com/gestion-app/gestion_backend/internal/core/domain"

// EventNotifier publishes fire-and-forget business events after the owning
// database transaction has committed. Delivery and retry are the collaborator's
// concern; callers never await the outcome.
type EventNotifier interface {
	OrderCreated(order domain.Order)
	Close()
}
