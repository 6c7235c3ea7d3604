package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/session"
)

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		email         string
		role          string
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedRole  string
	}{
		{
			name:     "creates user with explicit role",
			username: "alice",
			password: "secret",
			email:    "alice@example.com",
			role:     model.RoleAdministrator,
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(&model.User{
					ID:       "1",
					Username: "alice",
					Password: "$2a$10$hash",
					Email:    "alice@example.com",
					Role:     model.RoleAdministrator,
				}, nil)
			},
			expectedRole: model.RoleAdministrator,
		},
		{
			name:     "role defaults to user",
			username: "bob",
			password: "secret",
			email:    "bob@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleUser
				})).Return(&model.User{ID: "2", Username: "bob", Role: model.RoleUser}, nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:          "missing username",
			username:      "   ",
			password:      "secret",
			email:         "x@example.com",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:          "missing password",
			username:      "carol",
			email:         "carol@example.com",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:     "duplicate username surfaces conflict",
			username: "alice",
			password: "secret",
			email:    "alice@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(nil, apperrors.ErrDuplicateUsername)
			},
			expectedError: apperrors.ErrDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			user, err := svc.CreateUser(context.Background(), tt.username, tt.password, tt.email, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.Empty(t, user.Password)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_CreateUserHashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	var stored *model.User
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.User)
		}).
		Return(&model.User{ID: "1", Username: "alice"}, nil)

	svc := NewUserService(mockRepo)
	_, err := svc.CreateUser(context.Background(), "alice", "secret", "alice@example.com", "")
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")))
	assert.NotEmpty(t, stored.CreatedAt)
	_, err = time.Parse(time.RFC3339, stored.CreatedAt)
	assert.NoError(t, err)
}

func TestUserService_DeleteUser(t *testing.T) {
	actor := &session.Session{UserID: "1", Username: "admin", Role: model.RoleAdministrator}

	t.Run("deletes another user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Delete", mock.Anything, "2").Return(nil)

		svc := NewUserService(mockRepo)
		assert.NoError(t, svc.DeleteUser(context.Background(), "2", actor))
		mockRepo.AssertExpectations(t)
	})

	t.Run("refuses self-delete", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		svc := NewUserService(mockRepo)
		err := svc.DeleteUser(context.Background(), "1", actor)
		assert.ErrorIs(t, err, apperrors.ErrSelfDelete)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown id surfaces not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Delete", mock.Anything, "999").Return(apperrors.ErrUserNotFound)

		svc := NewUserService(mockRepo)
		assert.ErrorIs(t, svc.DeleteUser(context.Background(), "999", actor), apperrors.ErrUserNotFound)
	})
}

func TestUserService_ListUsersRedactsPasswords(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{
		{ID: "1", Username: "alice", Password: "$2a$10$hash", Email: "a@example.com", Role: model.RoleAdministrator},
		{ID: "2", Username: "bob", Password: "plaintext", Email: "b@example.com", Role: model.RoleUser},
	}, nil)

	svc := NewUserService(mockRepo)
	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
	assert.Equal(t, "alice", users[0].Username)
}
