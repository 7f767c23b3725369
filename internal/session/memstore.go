package session

import "sync"

// MemoryStore keeps the session in process memory. Used for tests and for
// ephemeral runs where nothing should touch disk.
type MemoryStore struct {
	notifier
	mu      sync.RWMutex
	token   string
	profile Profile
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token returns the stored token, if any.
func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken stores the token, skipping empty values.
func (s *MemoryStore) SetToken(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.broadcast()
}

// Profile returns the cached profile, if any.
func (s *MemoryStore) Profile() (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, s.profile != nil
}

// SetProfile caches the profile.
func (s *MemoryStore) SetProfile(profile Profile) {
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	s.broadcast()
}

// Clear drops both fields. Idempotent.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	cleared := s.token != "" || s.profile != nil
	s.token = ""
	s.profile = nil
	s.mu.Unlock()
	if cleared {
		s.broadcast()
	}
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error { return nil }
