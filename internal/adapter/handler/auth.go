package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	dto "github.com/advanced-insight/advisory-backoffice/internal/adapter/dto/auth"
	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/http/middleware"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/auth"
)

// Auth handles login and session endpoints
type Auth struct {
	authService *auth.Service
	logger      *zap.Logger
}

// NewAuth creates an auth handler
func NewAuth(authService *auth.Service, logger *zap.Logger) *Auth {
	return &Auth{authService: authService, logger: logger}
}

// Login authenticates with email and password
func (h *Auth) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	user, tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.LoginResponse{User: user, Tokens: tokens})
}

// Refresh exchanges a refresh token for a new pair
func (h *Auth) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, tokens)
}

// Me returns the authenticated user's profile
func (h *Auth) Me(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, user)
}
