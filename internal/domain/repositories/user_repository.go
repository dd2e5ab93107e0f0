package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error

	// UpdatePassword overwrites the stored password hash
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}
