// Package credentials manages the locally persisted user collection: the
// seeded demo accounts plus any account registered while the portal service
// is unreachable or unconfigured.
package credentials

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/aihubacademy/backend/services/portal-client/internal/models"
	"github.com/aihubacademy/backend/services/portal-client/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Errors returned by credential operations. Callers (typically a form)
// display them; they are result values, never panics.
var (
	// ErrDuplicateEmail is returned when the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned when the email or password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when no account holds the reset token
	ErrInvalidToken = errors.New("invalid reset token")
	// ErrTokenExpired is returned when the reset token is past its validity window
	ErrTokenExpired = errors.New("reset token expired")
	// ErrUserNotFound is returned when no account matches the user ID
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword is returned when the current password does not match
	ErrIncorrectPassword = errors.New("incorrect password")
)

// usersKey is the storage key holding the serialized user collection
const usersKey = "aihub_users"

// resetTokenTTL is the validity window of a password reset token
const resetTokenTTL = time.Hour

// demoUsers are seeded on first use so the portal is explorable without
// registration. They behave like regular accounts except that IsDemo routes
// their progress to local storage instead of the portal service.
var demoUsers = []models.UserRecord{
	{
		User: models.User{
			ID:     "1",
			Email:  "admin@aihub.dev",
			Name:   "Admin",
			Role:   models.RoleAdmin,
			IsDemo: true,
		},
		Password: "admin123",
	},
	{
		User: models.User{
			ID:     "2",
			Email:  "demo@aihub.dev",
			Name:   "Demo",
			Role:   models.RoleUser,
			IsDemo: true,
		},
		Password: "demo123",
	},
}

// Store manages the local user collection
type Store struct {
	storage storage.Store
	logger  *zap.Logger
	now     func() time.Time
}

// NewStore creates a new credential store
func NewStore(st storage.Store, logger *zap.Logger) *Store {
	return &Store{
		storage: st,
		logger:  logger,
		now:     time.Now,
	}
}

// load reads the user collection, seeding the demo accounts on first use.
// A corrupt collection is treated the same as a missing one.
func (s *Store) load() []models.UserRecord {
	raw, ok := s.storage.Get(usersKey)
	if ok {
		var users []models.UserRecord
		if err := json.Unmarshal([]byte(raw), &users); err == nil {
			return users
		}
		s.logger.Warn("discarding corrupt local user collection, reseeding demo accounts")
	}

	users := make([]models.UserRecord, len(demoUsers))
	copy(users, demoUsers)
	s.save(users)
	return users
}

// save writes the full user collection in one record
func (s *Store) save(users []models.UserRecord) {
	raw, err := json.Marshal(users)
	if err != nil {
		s.logger.Error("failed to encode user collection", zap.Error(err))
		return
	}
	s.storage.Set(usersKey, string(raw))
}

// normalizeEmail trims and lowercases an email for case-insensitive matching
func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Register creates a new local account with role "user" and a fresh ID.
// Email uniqueness is case-insensitive: exactly one record per email.
func (s *Store) Register(email, password, name string) (*models.User, error) {
	normalized := normalizeEmail(email)
	users := s.load()

	for _, u := range users {
		if normalizeEmail(u.Email) == normalized {
			return nil, ErrDuplicateEmail
		}
	}

	record := models.UserRecord{
		User: models.User{
			ID:    uuid.NewString(),
			Email: normalized,
			Name:  strings.TrimSpace(name),
			Role:  models.RoleUser, // Default role
		},
		Password: password,
	}

	users = append(users, record)
	s.save(users)

	user := record.User
	return &user, nil
}

// Authenticate checks a case-insensitive email and exact-password match and
// returns the account's public projection, never the stored record.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	normalized := normalizeEmail(email)

	for _, u := range s.load() {
		if normalizeEmail(u.Email) == normalized && u.Password == password {
			user := u.User
			return &user, nil
		}
	}

	return nil, ErrInvalidCredentials
}

// RequestPasswordReset issues a single-use reset token valid for one hour.
// It always reports success so callers cannot probe which emails are
// registered; the token is empty when the email is unknown.
func (s *Store) RequestPasswordReset(email string) string {
	normalized := normalizeEmail(email)
	users := s.load()

	for i := range users {
		if normalizeEmail(users[i].Email) != normalized {
			continue
		}

		token := uuid.NewString()
		expiry := s.now().Add(resetTokenTTL)
		users[i].ResetToken = token
		users[i].ResetTokenExpiry = &expiry
		s.save(users)
		return token
	}

	return ""
}

// ResetPassword consumes a reset token and overwrites the password.
// An expired token is rejected and leaves the password unchanged.
func (s *Store) ResetPassword(token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}

	users := s.load()
	for i := range users {
		if users[i].ResetToken != token {
			continue
		}

		if users[i].ResetTokenExpiry == nil || s.now().After(*users[i].ResetTokenExpiry) {
			return ErrTokenExpired
		}

		users[i].Password = newPassword
		users[i].ResetToken = ""
		users[i].ResetTokenExpiry = nil
		s.save(users)
		return nil
	}

	return ErrInvalidToken
}

// UpdateProfile applies the non-nil fields of the update to the account
func (s *Store) UpdateProfile(userID string, update models.ProfileUpdate) (*models.User, error) {
	users := s.load()

	for i := range users {
		if users[i].ID != userID {
			continue
		}

		if update.Name != nil {
			users[i].Name = strings.TrimSpace(*update.Name)
		}
		if update.Avatar != nil {
			users[i].Avatar = *update.Avatar
		}
		s.save(users)

		user := users[i].User
		return &user, nil
	}

	return nil, ErrUserNotFound
}

// ChangePassword overwrites the password after checking the current one
func (s *Store) ChangePassword(userID, currentPassword, newPassword string) error {
	users := s.load()

	for i := range users {
		if users[i].ID != userID {
			continue
		}

		if users[i].Password != currentPassword {
			return ErrIncorrectPassword
		}

		users[i].Password = newPassword
		s.save(users)
		return nil
	}

	return ErrUserNotFound
}
