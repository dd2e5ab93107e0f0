package auth

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail    map[string]*entities.User
	byID       map[uuid.UUID]*entities.User
	lastLogins int
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entities.User) error { return nil }
func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.byID[id], nil
}
func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.byEmail[email], nil
}
func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	r.lastLogins++
	return nil
}
func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return nil
}

func newTestSetup(t *testing.T, password string) (*Service, *fakeUserRepo, *entities.User) {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := entities.NewUser("advisor@example.com", "Ryan McCarlie", hash)
	repo := &fakeUserRepo{
		byEmail: map[string]*entities.User{user.Email: user},
		byID:    map[uuid.UUID]*entities.User{user.ID: user},
	}

	tokens := jwt.NewManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	svc := NewService(repo, tokens, zap.NewNop())
	return svc, repo, user
}

func TestLogin_Success(t *testing.T) {
	svc, repo, user := newTestSetup(t, "correct horse")

	got, pair, err := svc.Login(context.Background(), user.Email, "correct horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != user.ID {
		t.Error("unexpected user returned")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected both tokens issued")
	}
	if repo.lastLogins != 1 {
		t.Error("expected last login recorded")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, user := newTestSetup(t, "correct horse")

	_, _, err := svc.Login(context.Background(), user.Email, "battery staple")
	var appErr errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_AUTH_INVALID_CREDENTIALS {
		t.Errorf("expected AUTH_INVALID_CREDENTIALS, got %v", err)
	}
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _, _ := newTestSetup(t, "correct horse")

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "anything")
	var appErr errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_AUTH_INVALID_CREDENTIALS {
		t.Errorf("expected AUTH_INVALID_CREDENTIALS, got %v", err)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, repo, user := newTestSetup(t, "correct horse")
	repo.byEmail[user.Email].IsActive = false

	_, _, err := svc.Login(context.Background(), user.Email, "correct horse")
	var appErr errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_AUTH_INVALID_CREDENTIALS {
		t.Errorf("expected AUTH_INVALID_CREDENTIALS, got %v", err)
	}
}

func TestRefresh_RoundTrip(t *testing.T) {
	svc, _, user := newTestSetup(t, "correct horse")

	_, pair, err := svc.Login(context.Background(), user.Email, "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if fresh.AccessToken == "" {
		t.Error("expected a new access token")
	}
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _, _ := newTestSetup(t, "pw")

	_, err := svc.Refresh(context.Background(), "not-a-token")
	var appErr errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_AUTH_INVALID_TOKEN {
		t.Errorf("expected AUTH_INVALID_TOKEN, got %v", err)
	}
}
