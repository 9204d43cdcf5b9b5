package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aihubacademy/backend/services/portal-service/internal/models"
	"github.com/aihubacademy/backend/services/portal-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	createFunc        func(ctx context.Context, user *models.User) error
	getByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	existsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.createFunc(ctx, user)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.existsByEmailFunc(ctx, email)
}

// mockAuthProgressRepository is a mock implementation of AuthProgressRepository
type mockAuthProgressRepository struct {
	upsertFunc func(ctx context.Context, progress *models.Progress) error
}

func (m *mockAuthProgressRepository) Upsert(ctx context.Context, progress *models.Progress) error {
	return m.upsertFunc(ctx, progress)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var createdUser *models.User
		var upsertedProgress *models.Progress

		userRepo := &mockUserRepository{
			existsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
				assert.Equal(t, "new@example.com", email)
				return false, nil
			},
			createFunc: func(ctx context.Context, user *models.User) error {
				createdUser = user
				return nil
			},
		}
		progressRepo := &mockAuthProgressRepository{
			upsertFunc: func(ctx context.Context, progress *models.Progress) error {
				upsertedProgress = progress
				return nil
			},
		}
		service := NewAuthService(userRepo, progressRepo, zap.NewNop())

		user, err := service.Register(context.Background(), &models.RegisterRequest{
			Email:    "  New@Example.COM ",
			Password: "secret123",
			Name:     " New User ",
		})

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, "New User", user.Name)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.NotEmpty(t, user.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))

		require.NotNil(t, createdUser)
		assert.Equal(t, user, createdUser)

		require.NotNil(t, upsertedProgress)
		assert.Equal(t, user.ID, upsertedProgress.UserID)
		assert.Empty(t, upsertedProgress.CompletedTutorials)
	})

	t.Run("progress write failure does not fail registration", func(t *testing.T) {
		userRepo := &mockUserRepository{
			existsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
				return false, nil
			},
			createFunc: func(ctx context.Context, user *models.User) error {
				return nil
			},
		}
		progressRepo := &mockAuthProgressRepository{
			upsertFunc: func(ctx context.Context, progress *models.Progress) error {
				return errors.New("database error")
			},
		}
		service := NewAuthService(userRepo, progressRepo, zap.NewNop())

		user, err := service.Register(context.Background(), &models.RegisterRequest{
			Email:    "new@example.com",
			Password: "secret123",
			Name:     "New User",
		})

		require.NoError(t, err)
		assert.NotNil(t, user)
	})

	validationTests := []struct {
		name          string
		request       *models.RegisterRequest
		expectedError string
	}{
		{
			name: "invalid email format",
			request: &models.RegisterRequest{
				Email:    "not-an-email",
				Password: "secret123",
				Name:     "New User",
			},
			expectedError: "invalid email format",
		},
		{
			name: "empty name",
			request: &models.RegisterRequest{
				Email:    "new@example.com",
				Password: "secret123",
				Name:     "   ",
			},
			expectedError: "name cannot be empty",
		},
		{
			name: "empty password",
			request: &models.RegisterRequest{
				Email:    "new@example.com",
				Password: "",
				Name:     "New User",
			},
			expectedError: "password cannot be empty",
		},
	}

	for _, tt := range validationTests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewAuthService(&mockUserRepository{}, &mockAuthProgressRepository{}, zap.NewNop())

			user, err := service.Register(context.Background(), tt.request)

			assert.Nil(t, user)
			assert.EqualError(t, err, tt.expectedError)
		})
	}

	t.Run("duplicate email is case-insensitive", func(t *testing.T) {
		userRepo := &mockUserRepository{
			existsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
				assert.Equal(t, "taken@example.com", email)
				return true, nil
			},
		}
		service := NewAuthService(userRepo, &mockAuthProgressRepository{}, zap.NewNop())

		user, err := service.Register(context.Background(), &models.RegisterRequest{
			Email:    "TAKEN@Example.com",
			Password: "secret123",
			Name:     "New User",
		})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("exists check error", func(t *testing.T) {
		userRepo := &mockUserRepository{
			existsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
				return false, errors.New("database error")
			},
		}
		service := NewAuthService(userRepo, &mockAuthProgressRepository{}, zap.NewNop())

		user, err := service.Register(context.Background(), &models.RegisterRequest{
			Email:    "new@example.com",
			Password: "secret123",
			Name:     "New User",
		})

		assert.Nil(t, user)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("create error", func(t *testing.T) {
		userRepo := &mockUserRepository{
			existsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
				return false, nil
			},
			createFunc: func(ctx context.Context, user *models.User) error {
				return errors.New("database error")
			},
		}
		service := NewAuthService(userRepo, &mockAuthProgressRepository{}, zap.NewNop())

		user, err := service.Register(context.Background(), &models.RegisterRequest{
			Email:    "new@example.com",
			Password: "secret123",
			Name:     "New User",
		})

		assert.Nil(t, user)
		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           "user-1",
		Email:        "test@example.com",
		PasswordHash: string(passwordHash),
		Name:         "Test User",
		Role:         models.RoleUser,
	}

	tests := []struct {
		name          string
		request       *models.LoginRequest
		getByEmail    func(ctx context.Context, email string) (*models.User, error)
		expectedUser  *models.User
		expectedError error
	}{
		{
			name: "success",
			request: &models.LoginRequest{
				Email:    "test@example.com",
				Password: "secret123",
			},
			getByEmail: func(ctx context.Context, email string) (*models.User, error) {
				return storedUser, nil
			},
			expectedUser: storedUser,
		},
		{
			name: "email is normalized before lookup",
			request: &models.LoginRequest{
				Email:    "  Test@EXAMPLE.com ",
				Password: "secret123",
			},
			getByEmail: func(ctx context.Context, email string) (*models.User, error) {
				if email != "test@example.com" {
					return nil, repositories.ErrUserNotFound
				}
				return storedUser, nil
			},
			expectedUser: storedUser,
		},
		{
			name: "unknown email",
			request: &models.LoginRequest{
				Email:    "missing@example.com",
				Password: "secret123",
			},
			getByEmail: func(ctx context.Context, email string) (*models.User, error) {
				return nil, repositories.ErrUserNotFound
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			request: &models.LoginRequest{
				Email:    "test@example.com",
				Password: "wrongpassword",
			},
			getByEmail: func(ctx context.Context, email string) (*models.User, error) {
				return storedUser, nil
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "empty email",
			request: &models.LoginRequest{
				Email:    "   ",
				Password: "secret123",
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "repository error",
			request: &models.LoginRequest{
				Email:    "test@example.com",
				Password: "secret123",
			},
			getByEmail: func(ctx context.Context, email string) (*models.User, error) {
				return nil, errors.New("database error")
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{getByEmailFunc: tt.getByEmail}
			service := NewAuthService(userRepo, &mockAuthProgressRepository{}, zap.NewNop())

			user, err := service.Login(context.Background(), tt.request)

			if tt.expectedError != nil {
				assert.Nil(t, user)
				assert.Error(t, err)
				if errors.Is(tt.expectedError, ErrInvalidCredentials) {
					assert.ErrorIs(t, err, ErrInvalidCredentials)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}
		})
	}
}
