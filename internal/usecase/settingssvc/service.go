package settingssvc

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/advanced-insight/advisory-backoffice/errors"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/repositories"
)

// Service owns the account settings surface: password changes and the
// per-user provider configuration.
type Service struct {
	userRepo    repositories.UserRepository
	settingRepo repositories.UserSettingRepository
	logger      *zap.Logger
}

// NewService creates a settings service.
func NewService(userRepo repositories.UserRepository, settingRepo repositories.UserSettingRepository, logger *zap.Logger) *Service {
	return &Service{userRepo: userRepo, settingRepo: settingRepo, logger: logger}
}

// ChangePassword verifies the current password and stores a hash of the
// new one.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return errors.ErrDBFailed(err)
	}
	if user == nil {
		return errors.ErrNotFound("user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.ErrInvalidCredentials()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.ErrInternal(err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return errors.ErrDBFailed(err)
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

// APISettings carries the provider selection and keys as submitted.
type APISettings struct {
	TranscriptionService string
	TranscriptionAPIKey  string
	LLMService           string
	LLMAPIKey            string
}

// Selection is the readable part of a user's provider configuration.
// API keys never leave the service.
type Selection struct {
	TranscriptionService string
	LLMService           string
}

// SaveAPISettings inserts or overwrites the user's provider configuration.
func (s *Service) SaveAPISettings(ctx context.Context, userID uuid.UUID, in APISettings) error {
	setting, err := s.settingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return errors.ErrDBFailed(err)
	}
	if setting == nil {
		setting = entities.NewUserSetting(userID)
	}

	setting.TranscriptionService = in.TranscriptionService
	setting.TranscriptionAPIKey = in.TranscriptionAPIKey
	setting.LLMService = in.LLMService
	setting.LLMAPIKey = in.LLMAPIKey

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return errors.ErrDBFailed(err)
	}
	return nil
}

// GetAPISettings returns the user's provider selection, falling back to
// the defaults when nothing has been saved yet.
func (s *Service) GetAPISettings(ctx context.Context, userID uuid.UUID) (*Selection, error) {
	setting, err := s.settingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if setting == nil {
		return &Selection{TranscriptionService: "openai", LLMService: "openai"}, nil
	}
	return &Selection{
		TranscriptionService: setting.TranscriptionService,
		LLMService:           setting.LLMService,
	}, nil
}
