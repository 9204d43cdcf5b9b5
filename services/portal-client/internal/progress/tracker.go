package progress

import (
	"context"
	"math"
	"slices"

	"github.com/aihubacademy/backend/services/portal-client/internal/models"
)

// Tracker holds the authoritative in-memory progress record for the current
// identity and writes it through its backend on every mutation. The backend
// is chosen once when the tracker is built, not re-checked per call.
type Tracker struct {
	backend Backend
	record  *models.Progress
}

// NewTracker builds a tracker for a backend, loading the persisted record
func NewTracker(ctx context.Context, backend Backend) *Tracker {
	return &Tracker{
		backend: backend,
		record:  backend.Load(ctx),
	}
}

// MarkCompleted adds a tutorial to the completed set. Marking an already
// completed tutorial again is a no-op, so nothing is persisted twice.
func (t *Tracker) MarkCompleted(ctx context.Context, tutorialID int) {
	if slices.Contains(t.record.CompletedTutorials, tutorialID) {
		return
	}

	t.record.CompletedTutorials = append(t.record.CompletedTutorials, tutorialID)
	t.backend.Save(ctx, t.record)
}

// MarkVisited unconditionally overwrites the last visited tutorial
func (t *Tracker) MarkVisited(ctx context.Context, tutorialID int) {
	visited := tutorialID
	t.record.LastVisited = &visited
	t.backend.Save(ctx, t.record)
}

// IsCompleted reports whether a tutorial is in the completed set
func (t *Tracker) IsCompleted(tutorialID int) bool {
	return slices.Contains(t.record.CompletedTutorials, tutorialID)
}

// Completed returns a copy of the completed tutorial IDs
func (t *Tracker) Completed() []int {
	return slices.Clone(t.record.CompletedTutorials)
}

// LastVisited returns the last visited tutorial ID and whether one is set
func (t *Tracker) LastVisited() (int, bool) {
	if t.record.LastVisited == nil {
		return 0, false
	}
	return *t.record.LastVisited, true
}

// Percentage returns the rounded completion percentage for a catalog of
// totalTutorials tutorials. A zero total yields 0, never a division by zero.
func (t *Tracker) Percentage(totalTutorials int) int {
	if totalTutorials <= 0 {
		return 0
	}

	ratio := float64(len(t.record.CompletedTutorials)) / float64(totalTutorials)
	return int(math.Round(ratio * 100))
}
