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

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) RecordLogin(ctx context.Context, id string, when time.Time) error {
	args := m.Called(ctx, id, when)
	return args.Error(0)
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login with hashed password",
			username: "admin",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID:       "1",
					Username: "admin",
					Password: string(hashed),
					Role:     model.RoleAdministrator,
				}, nil)
				m.On("RecordLogin", mock.Anything, "1", mock.AnythingOfType("time.Time")).Return(nil)
			},
		},
		{
			name:     "successful login with legacy plaintext password",
			username: "admin",
			password: "letmein",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID:       "1",
					Username: "admin",
					Password: "letmein",
					Role:     model.RoleAdministrator,
				}, nil)
				m.On("RecordLogin", mock.Anything, "1", mock.AnythingOfType("time.Time")).Return(nil)
			},
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID:       "1",
					Username: "admin",
					Password: string(hashed),
					Role:     model.RoleAdministrator,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "password comparison is case-sensitive",
			username: "admin",
			password: "LETMEIN",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID:       "1",
					Username: "admin",
					Password: "letmein",
					Role:     model.RoleAdministrator,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			sessions := session.NewMemoryStore(time.Hour)

			svc := NewAuthService(mockRepo, sessions)
			user, token, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Empty(t, user.Password, "login response must not carry the password")

				// the session resolves back to the user
				sess, err := sessions.Get(context.Background(), token)
				require.NoError(t, err)
				require.NotNil(t, sess)
				assert.Equal(t, user.ID, sess.UserID)
				assert.Equal(t, user.Role, sess.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginTrimsUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
		ID:       "1",
		Username: "admin",
		Password: "pw",
		Role:     model.RoleAdministrator,
	}, nil)
	mockRepo.On("RecordLogin", mock.Anything, "1", mock.AnythingOfType("time.Time")).Return(nil)

	svc := NewAuthService(mockRepo, session.NewMemoryStore(time.Hour))
	_, _, err := svc.Login(context.Background(), "  admin  ", "pw")
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_CheckAndLogout(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
		ID:       "1",
		Username: "admin",
		Password: "pw",
		Role:     model.RoleAdministrator,
	}, nil)
	mockRepo.On("RecordLogin", mock.Anything, "1", mock.AnythingOfType("time.Time")).Return(nil)

	sessions := session.NewMemoryStore(time.Hour)
	svc := NewAuthService(mockRepo, sessions)
	ctx := context.Background()

	// no token: anonymous, not an error
	sess, err := svc.Check(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, sess)

	_, token, err := svc.Login(ctx, "admin", "pw")
	require.NoError(t, err)

	sess, err = svc.Check(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "admin", sess.Username)

	require.NoError(t, svc.Logout(ctx, token))

	sess, err = svc.Check(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, sess)

	// logging out again is still fine
	assert.NoError(t, svc.Logout(ctx, token))
}
