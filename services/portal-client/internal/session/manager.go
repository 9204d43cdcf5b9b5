// Package session tracks the current user as a single stored session record.
package session

import (
	"encoding/json"

	"github.com/aihubacademy/backend/services/portal-client/internal/models"
	"github.com/aihubacademy/backend/services/portal-client/internal/storage"
)

// sessionKey is the storage key holding the current session record
const sessionKey = "aihub_session"

// Manager owns the single session record. At most one session is active at a
// time; logging in replaces it and logging out removes it.
type Manager struct {
	storage storage.Store
}

// NewManager creates a new session manager
func NewManager(st storage.Store) *Manager {
	return &Manager{
		storage: st,
	}
}

// Set writes the session record for a user
func (m *Manager) Set(user *models.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	m.storage.Set(sessionKey, string(raw))
}

// Current returns the current user, or nil when no session exists.
// A corrupt session record is treated as "no session", never an error.
func (m *Manager) Current() *models.User {
	raw, ok := m.storage.Get(sessionKey)
	if !ok {
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}

	return &user
}

// Clear removes the session record. Clearing an absent session is a no-op,
// so logging out twice is safe.
func (m *Manager) Clear() {
	m.storage.Remove(sessionKey)
}
