package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aihubacademy/backend/services/portal-service/internal/models"
	"github.com/aihubacademy/backend/services/portal-service/internal/repositories"
)

// ProgressRepository is the interface that wraps methods for Progress table data access
type ProgressRepository interface {
	// Method GetByUserID retrieves the progress record for a user.
	//
	// "userID" parameter is used to identify the user.
	//
	// If the user has no progress row yet, repositories.ErrProgressNotFound will be returned together with "nil" value.
	GetByUserID(ctx context.Context, userID string) (*models.Progress, error)
	// Method Upsert writes the full progress record for a user in one statement.
	//
	// "progress" parameter holds the record to write.
	//
	// If some error occurs during the write, the error will be returned.
	Upsert(ctx context.Context, progress *models.Progress) error
}

// progressService implements ProgressService
type progressService struct {
	progressRepo ProgressRepository
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo ProgressRepository) *progressService {
	return &progressService{
		progressRepo: progressRepo,
	}
}

// Get returns the progress record for a user, defaulting to an empty record
// when the user has none yet. Progress rows are created lazily, so a missing
// row is a normal state, not an error.
func (s *progressService) Get(ctx context.Context, userID string) (*models.Progress, error) {
	progress, err := s.progressRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrProgressNotFound) {
		return models.NewEmptyProgress(userID), nil
	}
	if err != nil {
		return nil, err
	}

	return progress, nil
}

// Save persists the full progress record for a user
func (s *progressService) Save(ctx context.Context, userID string, progress *models.Progress) error {
	if progress.CompletedTutorials == nil {
		progress.CompletedTutorials = []int{}
	}
	progress.UserID = userID

	if err := s.progressRepo.Upsert(ctx, progress); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	return nil
}
