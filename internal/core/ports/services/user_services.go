package services

import (
	"context"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
)

// UserSvcFacade defines the thin operator-identity surface the core consumes.
type UserSvcFacade interface {
	// CreateUser registers an operator with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// GetUserByID retrieves an operator by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// Authenticate verifies credentials and returns the operator.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
