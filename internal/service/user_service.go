package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/repository"
	"peppertree/internal/session"
)

const bcryptCost = 10

// UserService exposes the admin user-directory operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, username, password, email, role string) (*model.User, error)
	DeleteUser(ctx context.Context, id string, actor *session.Session) error
}

type userService struct {
	users repository.UserRepository
	now   func() time.Time
}

// NewUserService builds a UserService over the user directory.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users, now: time.Now}
}

// ListUsers returns every user with the password stripped.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, len(users))
	for i, u := range users {
		out[i] = u.Redacted()
	}
	return out, nil
}

// CreateUser adds a user to the directory. The role defaults to "user"; the
// id is assigned by the store. Returns the created user without the password.
func (s *userService) CreateUser(ctx context.Context, username, password, email, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return nil, apperrors.ErrMissingFields
	}
	if role == "" {
		role = model.RoleUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:  username,
		Password:  string(hashed),
		Email:     email,
		Role:      role,
		CreatedAt: s.now().Format(time.RFC3339),
		LastLogin: nil,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	redacted := created.Redacted()
	return &redacted, nil
}

// DeleteUser removes a user. Deleting the account behind the acting session
// is forbidden.
func (s *userService) DeleteUser(ctx context.Context, id string, actor *session.Session) error {
	if id == "" {
		return apperrors.ErrMissingFields
	}
	if actor != nil && actor.UserID == id {
		return apperrors.ErrSelfDelete
	}
	return s.users.Delete(ctx, id)
}
