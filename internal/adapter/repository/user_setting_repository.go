package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
)

// UserSettingRepository handles per-user settings data operations
type UserSettingRepository struct {
	db *gorm.DB
}

// NewUserSettingRepository creates a new user settings repository
func NewUserSettingRepository(db *gorm.DB) *UserSettingRepository {
	return &UserSettingRepository{db: db}
}

// FindByUserID retrieves a user's settings row
func (r *UserSettingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSetting, error) {
	var setting entities.UserSetting
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Save inserts the settings row or overwrites the existing one for the
// same user, keyed on the user_id unique index.
func (r *UserSettingRepository) Save(ctx context.Context, setting *entities.UserSetting) error {
	if setting == nil {
		return errors.New("setting cannot be nil")
	}
	setting.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"transcription_service",
				"transcription_api_key",
				"llm_service",
				"llm_api_key",
				"updated_at",
			}),
		}).
		Create(setting).Error
}
