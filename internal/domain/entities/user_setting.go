package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserSetting stores a user's provider selection and API keys. Keys are
// write-only through the HTTP surface; reads expose the selected
// services only.
type UserSetting struct {
	ID                   uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID               uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	TranscriptionService string    `json:"transcription_service" gorm:"column:transcription_service;type:varchar(100)"`
	TranscriptionAPIKey  string    `json:"-" gorm:"column:transcription_api_key;type:text"`
	LLMService           string    `json:"llm_service" gorm:"column:llm_service;type:varchar(100)"`
	LLMAPIKey            string    `json:"-" gorm:"column:llm_api_key;type:text"`
	CreatedAt            time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (UserSetting) TableName() string {
	return "user_settings"
}

// NewUserSetting creates a setting row with the default providers.
func NewUserSetting(userID uuid.UUID) *UserSetting {
	return &UserSetting{
		ID:                   uuid.New(),
		UserID:               userID,
		TranscriptionService: "openai",
		LLMService:           "openai",
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}
}
