package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aihubacademy/backend/services/portal-service/internal/models"
)

// ErrProgressNotFound is returned when a user has no progress row yet
var ErrProgressNotFound = errors.New("progress not found")

// progressRepository implements ProgressRepository
type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// GetByUserID retrieves the progress record for a user
func (r *progressRepository) GetByUserID(ctx context.Context, userID string) (*models.Progress, error) {
	query := `
		SELECT user_id, completed_tutorials, last_visited
		FROM progress
		WHERE user_id = ?
		LIMIT 1
	`

	progress := &models.Progress{}
	var completedJSON []byte
	var lastVisited sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&progress.UserID,
		&completedJSON,
		&lastVisited,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress by user id: %w", err)
	}

	if err := json.Unmarshal(completedJSON, &progress.CompletedTutorials); err != nil {
		return nil, fmt.Errorf("failed to decode completed tutorials: %w", err)
	}
	if progress.CompletedTutorials == nil {
		progress.CompletedTutorials = []int{}
	}

	if lastVisited.Valid {
		visited := int(lastVisited.Int64)
		progress.LastVisited = &visited
	}

	return progress, nil
}

// Upsert writes the full progress record for a user in a single statement.
// The progress table has a unique key on user_id, so the record is either
// inserted or replaced as a whole, never updated field by field.
func (r *progressRepository) Upsert(ctx context.Context, progress *models.Progress) error {
	completedJSON, err := json.Marshal(progress.CompletedTutorials)
	if err != nil {
		return fmt.Errorf("failed to encode completed tutorials: %w", err)
	}

	var lastVisited sql.NullInt64
	if progress.LastVisited != nil {
		lastVisited = sql.NullInt64{Int64: int64(*progress.LastVisited), Valid: true}
	}

	query := `
		INSERT INTO progress (user_id, completed_tutorials, last_visited)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			completed_tutorials = VALUES(completed_tutorials),
			last_visited = VALUES(last_visited)
	`

	_, err = r.db.ExecContext(ctx, query, progress.UserID, completedJSON, lastVisited)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	return nil
}
