package auth

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/advanced-insight/advisory-backoffice/errors"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/repositories"
	"github.com/advanced-insight/advisory-backoffice/pkg/jwt"
)

// Service handles credential login and token issuance.
type Service struct {
	userRepo repositories.UserRepository
	tokens   *jwt.Manager
	logger   *zap.Logger
}

// NewService creates an auth service.
func NewService(userRepo repositories.UserRepository, tokens *jwt.Manager, logger *zap.Logger) *Service {
	return &Service{userRepo: userRepo, tokens: tokens, logger: logger}
}

// TokenPair is an issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login verifies the credentials and issues a token pair. Unknown email
// and wrong password return the same error so the endpoint does not
// leak which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (*entities.User, *TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, errors.ErrDBFailed(err)
	}
	if user == nil || !user.IsActive {
		return nil, nil, errors.ErrInvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, errors.ErrInvalidCredentials()
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, errors.ErrInternal(err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to record last login",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.ErrInvalidToken()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if user == nil || !user.IsActive {
		return nil, errors.ErrInvalidToken()
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return pair, nil
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if user == nil {
		return nil, errors.ErrNotFound("user")
	}
	return user, nil
}

func (s *Service) issueTokens(user *entities.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.GetAccessExpiry().Seconds()),
	}, nil
}

// HashPassword produces a bcrypt hash for seeding and registration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
