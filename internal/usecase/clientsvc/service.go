package clientsvc

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/repositories"
)

// Service owns the client book CRUD surface.
type Service struct {
	clientRepo repositories.ClientRepository
	logger     *zap.Logger
}

// NewService creates a client service.
func NewService(clientRepo repositories.ClientRepository, logger *zap.Logger) *Service {
	return &Service{clientRepo: clientRepo, logger: logger}
}

// CreateInput carries the fields for a new client record.
type CreateInput struct {
	Name          string
	Surname       string
	CompanyName   string
	Industry      string
	ContactPerson string
	Email         string
	Phone         string
	CreatedBy     uuid.UUID
}

// Create adds a client to the book.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entities.Client, error) {
	client := entities.NewClient(input.Name, input.CreatedBy)
	client.Surname = input.Surname
	client.CompanyName = input.CompanyName
	client.Industry = input.Industry
	client.ContactPerson = input.ContactPerson
	client.Email = input.Email
	client.Phone = input.Phone

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	return client, nil
}

// Get returns a client by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if client == nil {
		return nil, errors.ErrNotFound("client")
	}
	return client, nil
}

// List returns all clients.
func (s *Service) List(ctx context.Context) ([]*entities.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	return clients, nil
}

// UpdateInput carries the editable client fields. Nil pointers leave
// the current value untouched.
type UpdateInput struct {
	Name          *string
	Surname       *string
	CompanyName   *string
	Industry      *string
	ContactPerson *string
	Email         *string
	Phone         *string
}

// Update edits a client record.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*entities.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if client == nil {
		return nil, errors.ErrNotFound("client")
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Surname != nil {
		client.Surname = *input.Surname
	}
	if input.CompanyName != nil {
		client.CompanyName = *input.CompanyName
	}
	if input.Industry != nil {
		client.Industry = *input.Industry
	}
	if input.ContactPerson != nil {
		client.ContactPerson = *input.ContactPerson
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	return client, nil
}

// Delete removes a client record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return errors.ErrDBFailed(err)
	}
	if client == nil {
		return errors.ErrNotFound("client")
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return errors.ErrDBFailed(err)
	}
	return nil
}
