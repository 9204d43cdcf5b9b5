// Package storage provides the local key/value store backing sessions,
// the local user collection and local progress records.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Store is the key/value persistence contract. No method ever fails: when
// the underlying file cannot be used, values live in memory for the lifetime
// of the process. Degradation is a capability loss, not an error condition.
type Store interface {
	// Get returns the value for a key and whether it was present
	Get(key string) (string, bool)
	// Set stores a value under a key
	Set(key, value string)
	// Remove deletes a key
	Remove(key string)
	// Clear deletes all keys
	Clear()
}

// fileStore implements Store on top of a single JSON file
type fileStore struct {
	mu      sync.Mutex
	path    string
	data    map[string]string
	persist bool
	logger  *zap.Logger
}

// NewFileStore creates a store backed by the JSON file at path. Availability
// is probed once with a write/delete cycle; if the probe fails, the store
// silently runs in memory only.
func NewFileStore(path string, logger *zap.Logger) *fileStore {
	s := &fileStore{
		path:   path,
		data:   make(map[string]string),
		logger: logger,
	}

	s.persist = s.probe()
	if s.persist {
		s.load()
	} else {
		s.logger.Debug("local storage unavailable, falling back to in-memory store",
			zap.String("path", path))
	}

	return s
}

// probe checks that the storage location accepts a write/delete cycle
func (s *fileStore) probe() bool {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false
	}

	probePath := s.path + ".probe"
	if err := os.WriteFile(probePath, []byte("probe"), 0o600); err != nil {
		return false
	}
	if err := os.Remove(probePath); err != nil {
		return false
	}

	return true
}

// load reads the existing file into memory, ignoring a missing or corrupt file
func (s *fileStore) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Debug("discarding corrupt local storage file", zap.Error(err))
		return
	}

	s.data = data
}

// flush writes the full map to disk, caller must hold the lock
func (s *fileStore) flush() {
	if !s.persist {
		return
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		s.logger.Debug("failed to encode local storage", zap.Error(err))
		return
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		s.logger.Debug("failed to write local storage", zap.Error(err))
	}
}

// Get returns the value for a key and whether it was present
func (s *fileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]
	return value, ok
}

// Set stores a value under a key
func (s *fileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	s.flush()
}

// Remove deletes a key
func (s *fileStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	s.flush()
}

// Clear deletes all keys
func (s *fileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]string)
	s.flush()
}

// memoryStore implements Store with a plain map, used in tests and as an
// explicit in-memory store
type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStore creates a purely in-memory store
func NewMemoryStore() *memoryStore {
	return &memoryStore{
		data: make(map[string]string),
	}
}

// Get returns the value for a key and whether it was present
func (s *memoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]
	return value, ok
}

// Set stores a value under a key
func (s *memoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
}

// Remove deletes a key
func (s *memoryStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
}

// Clear deletes all keys
func (s *memoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]string)
}
