package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aihubacademy/backend/services/portal-service/internal/models"
	"github.com/aihubacademy/backend/services/portal-service/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Errors returned to handlers so they can pick the right status code
var (
	// ErrDuplicateEmail is returned when the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned when the email or password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// "email" parameter is expected to be already normalized (trimmed, lowercased).
	//
	// If user with such email does not exist, repositories.ErrUserNotFound will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is expected to be already normalized (trimmed, lowercased).
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AuthProgressRepository is the interface that wraps the progress write used during registration
type AuthProgressRepository interface {
	// Method Upsert writes the full progress record for a user.
	//
	// "progress" parameter holds the record to write.
	//
	// If some error occurs during the write, the error will be returned.
	Upsert(ctx context.Context, progress *models.Progress) error
}

// authService implements AuthService
type authService struct {
	userRepo     UserRepository
	progressRepo AuthProgressRepository
	logger       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, progressRepo AuthProgressRepository, logger *zap.Logger) *authService {
	return &authService{
		userRepo:     userRepo,
		progressRepo: progressRepo,
		logger:       logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Register creates a new user account with an empty progress record
//
// Email uniqueness is case-insensitive: the email is normalized (trimmed,
// lowercased) before both the duplicate check and the insert, so there is
// exactly one user record per email regardless of how it was typed.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(req.Email))

	if !emailRegex.MatchString(normalizedEmail) {
		return nil, fmt.Errorf("invalid email format")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		Name:         strings.TrimSpace(req.Name),
		Role:         models.RoleUser, // Default role
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Create the empty progress record so the first GET returns a row
	if err := s.progressRepo.Upsert(ctx, models.NewEmptyProgress(user.ID)); err != nil {
		s.logger.Warn("failed to create empty progress record",
			zap.String("user_id", user.ID), zap.Error(err))
	}

	return user, nil
}

// Login authenticates a user by email and password
//
// Lookup failures and password mismatches both collapse into
// ErrInvalidCredentials so the response does not reveal which emails exist.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(req.Email))
	if normalizedEmail == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizedEmail)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
