package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/repository"
	"peppertree/internal/session"
)

// AuthService handles login, session checks, and logout.
type AuthService interface {
	Login(ctx context.Context, username, password string) (user *model.User, token string, err error)
	Check(ctx context.Context, token string) (*session.Session, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users    repository.UserRepository
	sessions session.Store
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, sessions session.Store) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		now:      time.Now,
	}
}

// credentialMatch compares the submitted password against the stored secret.
// New users are stored with bcrypt hashes; directories migrated from the old
// site still hold plaintext, which is compared in constant time.
func credentialMatch(stored, password string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// Login authenticates a user and establishes a session. A successful login
// stamps lastLogin on the matched record before the session is created.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !credentialMatch(user.Password, password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := s.users.RecordLogin(ctx, user.ID, s.now()); err != nil {
		return nil, "", fmt.Errorf("record login: %w", err)
	}

	token, err := s.sessions.Create(ctx, &session.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	redacted := user.Redacted()
	return &redacted, token, nil
}

// Check resolves a session token. It is a pure read: unknown or expired
// tokens yield (nil, nil), never an error the caller has to branch on.
func (s *authService) Check(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessions.Get(ctx, token)
}

// Logout ends the session. Logging out an unknown token still succeeds.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
