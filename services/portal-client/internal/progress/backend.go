// Package progress holds per-identity tutorial progress: an in-memory record
// saved through one of two interchangeable backends.
package progress

import (
	"context"
	"encoding/json"

	"github.com/aihubacademy/backend/services/portal-client/internal/api"
	"github.com/aihubacademy/backend/services/portal-client/internal/models"
	"github.com/aihubacademy/backend/services/portal-client/internal/storage"
	"go.uber.org/zap"
)

// localProgressKey is the storage key for the shared anonymous progress record
const localProgressKey = "aihub_progress_local"

// userProgressKeyPrefix prefixes per-user local progress keys
const userProgressKeyPrefix = "aihub_progress_"

// Backend loads and saves one identity's progress record. Backends absorb
// their own failures: Load falls back to an empty record and Save is
// fire-and-forget, so infrastructure trouble never blocks the learner.
type Backend interface {
	// Load returns the persisted record, or an empty one on any failure
	Load(ctx context.Context) *models.Progress
	// Save persists the full record; failures are logged and dropped
	Save(ctx context.Context, progress *models.Progress)
}

// localBackend persists progress through the local storage adapter,
// used for demo users and anonymous browsing
type localBackend struct {
	storage storage.Store
	key     string
	logger  *zap.Logger
}

// NewLocalBackend creates a backend writing to the per-user local key,
// or to the shared anonymous key when userID is empty
func NewLocalBackend(st storage.Store, userID string, logger *zap.Logger) *localBackend {
	key := localProgressKey
	if userID != "" {
		key = userProgressKeyPrefix + userID
	}

	return &localBackend{
		storage: st,
		key:     key,
		logger:  logger,
	}
}

// Load returns the persisted record, or an empty one on any failure
func (b *localBackend) Load(_ context.Context) *models.Progress {
	raw, ok := b.storage.Get(b.key)
	if !ok {
		return models.NewEmptyProgress()
	}

	progress := &models.Progress{}
	if err := json.Unmarshal([]byte(raw), progress); err != nil {
		b.logger.Warn("discarding corrupt local progress record", zap.Error(err))
		return models.NewEmptyProgress()
	}

	if progress.CompletedTutorials == nil {
		progress.CompletedTutorials = []int{}
	}
	return progress
}

// Save persists the full record in one write
func (b *localBackend) Save(_ context.Context, progress *models.Progress) {
	raw, err := json.Marshal(progress)
	if err != nil {
		b.logger.Error("failed to encode progress record", zap.Error(err))
		return
	}
	b.storage.Set(b.key, string(raw))
}

// remoteBackend persists progress through the portal service,
// used for registered (non-demo) users
type remoteBackend struct {
	client *api.Client
	userID string
	logger *zap.Logger
}

// NewRemoteBackend creates a backend calling the portal service for a user
func NewRemoteBackend(client *api.Client, userID string, logger *zap.Logger) *remoteBackend {
	return &remoteBackend{
		client: client,
		userID: userID,
		logger: logger,
	}
}

// Load fetches the record from the portal service; any failure degrades to
// the empty default so the learning experience is never blocked
func (b *remoteBackend) Load(ctx context.Context) *models.Progress {
	progress, err := b.client.GetProgress(ctx, b.userID)
	if err != nil {
		b.logger.Warn("failed to fetch remote progress, using empty record",
			zap.String("user_id", b.userID), zap.Error(err))
		return models.NewEmptyProgress()
	}
	return progress
}

// Save writes the record to the portal service, fire-and-forget. The
// in-memory state the UI reflects stays authoritative; a failed save is
// logged and retried implicitly on the next mutation.
func (b *remoteBackend) Save(ctx context.Context, progress *models.Progress) {
	if err := b.client.SaveProgress(ctx, b.userID, progress); err != nil {
		b.logger.Warn("failed to save remote progress",
			zap.String("user_id", b.userID), zap.Error(err))
	}
}
