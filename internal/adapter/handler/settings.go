package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	dto "github.com/advanced-insight/advisory-backoffice/internal/adapter/dto/settings"
	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/http/middleware"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/settingssvc"
)

// Settings handles account settings endpoints
type Settings struct {
	settingsService *settingssvc.Service
	logger          *zap.Logger
}

// NewSettings creates a settings handler
func NewSettings(settingsService *settingssvc.Service, logger *zap.Logger) *Settings {
	return &Settings{settingsService: settingsService, logger: logger}
}

// ChangePassword verifies the current password and replaces it
func (h *Settings) ChangePassword(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if err := h.settingsService.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"message": "password updated"})
}

// GetAPISettings returns the user's provider selection
func (h *Settings) GetAPISettings(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	sel, err := h.settingsService.GetAPISettings(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.APISettingsResponse{
		TranscriptionService: sel.TranscriptionService,
		LLMService:           sel.LLMService,
	})
}

// SaveAPISettings stores the user's provider selection and keys
func (h *Settings) SaveAPISettings(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req dto.APISettingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	err := h.settingsService.SaveAPISettings(c.Request().Context(), userID, settingssvc.APISettings{
		TranscriptionService: req.TranscriptionService,
		TranscriptionAPIKey:  req.TranscriptionAPIKey,
		LLMService:           req.LLMService,
		LLMAPIKey:            req.LLMAPIKey,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"message": "settings saved"})
}
