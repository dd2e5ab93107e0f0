package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Create(ctx context.Context, client *entities.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Client, error)
	List(ctx context.Context) ([]*entities.Client, error)
	Update(ctx context.Context, client *entities.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
