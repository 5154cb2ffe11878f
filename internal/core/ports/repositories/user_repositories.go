package repositories

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
)

// UserRepositoryFacade defines operations for agents.
type UserRepositoryFacade interface {
	// CreateUser persists an agent, drawing its UTI ref inside the same
	// database transaction as the insert.
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)

	// FindUserByID retrieves an active agent.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves an active agent by login name.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
