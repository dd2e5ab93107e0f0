package auth

import (
	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	usecase "github.com/advanced-insight/advisory-backoffice/internal/usecase/auth"
)

// LoginResponse bundles the profile with the issued tokens
type LoginResponse struct {
	User   *entities.User     `json:"user"`
	Tokens *usecase.TokenPair `json:"tokens"`
}
