// Package auth implements the client-side token lifecycle: the in-memory
// access-token store and the single-flight refresh coordinator.
//
// The access token lives only in process memory. It is destroyed on logout,
// on refresh failure, and implicitly on process restart. The refresh token is
// never visible to this code at all: it travels as an HttpOnly cookie managed
// by the HTTP client's cookie jar.
package auth

import "sync"

// Store holds the current access token. All reads and writes go through the
// store, so concurrent callers never observe a torn value.
type Store struct {
	mu    sync.RWMutex
	token string
}

// NewStore returns an empty token store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the current access token.
func (s *Store) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Get returns the current access token, or the empty string if none is held.
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear drops the current access token.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Has reports whether a token is currently held.
func (s *Store) Has() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}
