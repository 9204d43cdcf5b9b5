package credentials

import (
	"testing"
	"time"

	"github.com/aihubacademy/backend/services/portal-client/internal/models"
	"github.com/aihubacademy/backend/services/portal-client/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestStore creates a credential store over a fresh in-memory storage
func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(storage.NewMemoryStore(), zap.NewNop())
}

func TestStore_SeedsDemoAccounts(t *testing.T) {
	store := newTestStore(t)

	admin, err := store.Authenticate("admin@aihub.dev", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsDemo)

	demo, err := store.Authenticate("demo@aihub.dev", "demo123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, demo.Role)
	assert.True(t, demo.IsDemo)
}

func TestStore_ReseedsAfterCorruptCollection(t *testing.T) {
	st := storage.NewMemoryStore()
	st.Set(usersKey, "not json")
	store := NewStore(st, zap.NewNop())

	user, err := store.Authenticate("demo@aihub.dev", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "demo@aihub.dev", user.Email)
}

func TestStore_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := newTestStore(t)

		user, err := store.Register("New@Example.com", "secret123", " New User ")

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, "New User", user.Name)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.False(t, user.IsDemo)
		assert.NotEmpty(t, user.ID)

		// The new account can log in
		loggedIn, err := store.Authenticate("new@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)
	})

	t.Run("duplicate email is case-insensitive", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.Register("new@example.com", "secret123", "New User")
		require.NoError(t, err)

		user, err := store.Register("NEW@Example.COM", "other456", "Someone Else")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("demo email cannot be reused", func(t *testing.T) {
		store := newTestStore(t)

		user, err := store.Register("Demo@aihub.dev", "secret123", "Impostor")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestStore_Authenticate(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		expectedError error
	}{
		{
			name:     "success",
			email:    "demo@aihub.dev",
			password: "demo123",
		},
		{
			name:     "email match is case-insensitive",
			email:    "  DEMO@Aihub.DEV ",
			password: "demo123",
		},
		{
			name:          "password match is exact",
			email:         "demo@aihub.dev",
			password:      "DEMO123",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "unknown email",
			email:         "missing@example.com",
			password:      "demo123",
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)

			user, err := store.Authenticate(tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Nil(t, user)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "demo@aihub.dev", user.Email)
			}
		})
	}
}

func TestStore_PasswordReset(t *testing.T) {
	t.Run("token resets the password", func(t *testing.T) {
		store := newTestStore(t)

		token := store.RequestPasswordReset("demo@aihub.dev")
		require.NotEmpty(t, token)

		require.NoError(t, store.ResetPassword(token, "newpassword"))

		_, err := store.Authenticate("demo@aihub.dev", "demo123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		user, err := store.Authenticate("demo@aihub.dev", "newpassword")
		require.NoError(t, err)
		assert.Equal(t, "demo@aihub.dev", user.Email)
	})

	t.Run("unknown email reports success with empty token", func(t *testing.T) {
		store := newTestStore(t)

		token := store.RequestPasswordReset("missing@example.com")
		assert.Empty(t, token)
	})

	t.Run("empty token is invalid", func(t *testing.T) {
		store := newTestStore(t)

		assert.ErrorIs(t, store.ResetPassword("", "newpassword"), ErrInvalidToken)
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		store := newTestStore(t)

		assert.ErrorIs(t, store.ResetPassword("nope", "newpassword"), ErrInvalidToken)
	})

	t.Run("token is single-use", func(t *testing.T) {
		store := newTestStore(t)

		token := store.RequestPasswordReset("demo@aihub.dev")
		require.NoError(t, store.ResetPassword(token, "newpassword"))

		assert.ErrorIs(t, store.ResetPassword(token, "anotherpassword"), ErrInvalidToken)
	})

	t.Run("expired token leaves the password unchanged", func(t *testing.T) {
		store := newTestStore(t)

		token := store.RequestPasswordReset("demo@aihub.dev")
		require.NotEmpty(t, token)

		// Jump past the token's validity window
		store.now = func() time.Time {
			return time.Now().Add(resetTokenTTL + time.Minute)
		}

		assert.ErrorIs(t, store.ResetPassword(token, "newpassword"), ErrTokenExpired)

		user, err := store.Authenticate("demo@aihub.dev", "demo123")
		require.NoError(t, err)
		assert.Equal(t, "demo@aihub.dev", user.Email)
	})
}

func TestStore_UpdateProfile(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		store := newTestStore(t)
		name := " Renamed "

		user, err := store.UpdateProfile("2", models.ProfileUpdate{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", user.Name)
		assert.Equal(t, "demo@aihub.dev", user.Email)
		assert.Empty(t, user.Avatar)
	})

	t.Run("updates the avatar", func(t *testing.T) {
		store := newTestStore(t)
		avatar := "https://example.com/avatar.png"

		user, err := store.UpdateProfile("2", models.ProfileUpdate{Avatar: &avatar})

		require.NoError(t, err)
		assert.Equal(t, avatar, user.Avatar)
		assert.Equal(t, "Demo", user.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		store := newTestStore(t)
		name := "Renamed"

		user, err := store.UpdateProfile("missing", models.ProfileUpdate{Name: &name})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestStore_ChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.ChangePassword("2", "demo123", "newpassword"))

		_, err := store.Authenticate("demo@aihub.dev", "newpassword")
		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		store := newTestStore(t)

		err := store.ChangePassword("2", "wrongpassword", "newpassword")
		assert.ErrorIs(t, err, ErrIncorrectPassword)

		_, authErr := store.Authenticate("demo@aihub.dev", "demo123")
		assert.NoError(t, authErr)
	})

	t.Run("unknown user", func(t *testing.T) {
		store := newTestStore(t)

		err := store.ChangePassword("missing", "demo123", "newpassword")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
