package services

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/gestion-app/gestion_backend/internal/dto"
)

// UserSvcFacade exposes agent registration and authentication.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorID string) (*domain.User, error)

	// Authenticate verifies the username/password pair and returns the agent.
	// Failures are reported as NotFound to avoid leaking which part was wrong.
	Authenticate(ctx context.Context, username string, password string) (*domain.User, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
