package services

import (
	"context"
	"time"

	"github.com/finbook-app/finbook_backend/internal/core/domain"
	"github.com/finbook-app/finbook_backend/internal/dto"
)

// AuthSvcFacade defines registration and credential-based login.
type AuthSvcFacade interface {
	// Register creates a new user account.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req dto.LoginRequest) (string, time.Time, *domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
