package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
)

// ClientRepository handles client data operations
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, client *entities.Client) error {
	if client == nil {
		return errors.New("client cannot be nil")
	}
	return r.db.WithContext(ctx).Create(client).Error
}

// FindByID retrieves a client by ID
func (r *ClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	var client entities.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// List retrieves all clients ordered by name
func (r *ClientRepository) List(ctx context.Context) ([]*entities.Client, error) {
	var clients []*entities.Client
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Update overwrites the editable fields of a client
func (r *ClientRepository) Update(ctx context.Context, client *entities.Client) error {
	if client == nil {
		return errors.New("client cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.Client{}).
		Where("id = ?", client.ID).
		Updates(map[string]interface{}{
			"name":           client.Name,
			"surname":        client.Surname,
			"company_name":   client.CompanyName,
			"industry":       client.Industry,
			"contact_person": client.ContactPerson,
			"email":          client.Email,
			"phone":          client.Phone,
			"updated_at":     time.Now(),
		}).Error
}

// Delete removes a client
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Client{}, "id = ?", id).Error
}
