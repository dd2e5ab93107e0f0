package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
)

// UserSettingRepository defines the interface for per-user settings access
type UserSettingRepository interface {
	// FindByUserID finds a user's settings row (nil when none saved yet)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSetting, error)

	// Save inserts or overwrites the user's settings row
	Save(ctx context.Context, setting *entities.UserSetting) error
}
