package credstore

// Package credstore implements the Credential Store: a process-wide holder
// of the current bearer credential pair. It performs no network calls and
// no token validation; tokens are opaque blobs. Every write is mirrored
// into durable local storage so a restart re-hydrates credentials before
// the first outbound request.

import (
	"sync"

	"golang.org/x/oauth2"

	"github.com/BRENHINES/SUPRSS/internal/ports"
)

// Canonical storage keys. Divergent legacy key schemes are consolidated
// on these two.
const (
	AccessKey  = "suprss.access"
	RefreshKey = "suprss.refresh"
)

// Store holds the credential pair in memory and mirrors it into a
// StateStore. The in-memory copy is authoritative within the process;
// a persistence failure is reported but never rolls back the memory state,
// so the running session keeps working even on a read-only disk.
type Store struct {
	mu      sync.RWMutex
	access  string
	refresh string
	durable ports.StateStore
}

var _ ports.CredentialStore = (*Store)(nil)

// New creates a credential store backed by durable, hydrating any tokens
// persisted by a previous run.
func New(durable ports.StateStore) *Store {
	s := &Store{durable: durable}
	if v, ok := durable.Get(AccessKey); ok {
		s.access = v
	}
	if v, ok := durable.Get(RefreshKey); ok {
		s.refresh = v
	}
	return s
}

// Access returns the current access token, or "" when unauthenticated.
func (s *Store) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// Refresh returns the current refresh token, or "" when none is held.
func (s *Store) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// SetAccess stores the access token; an empty token removes it.
func (s *Store) SetAccess(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = token
	return s.mirror(AccessKey, token)
}

// SetRefresh stores the refresh token; an empty token removes it.
func (s *Store) SetRefresh(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh = token
	return s.mirror(RefreshKey, token)
}

// Clear removes both tokens from memory and durable storage.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = ""
	s.refresh = ""

	errAccess := s.durable.Delete(AccessKey)
	errRefresh := s.durable.Delete(RefreshKey)
	if errAccess != nil {
		return errAccess
	}
	return errRefresh
}

// Token returns the held pair as an oauth2.Token for interop with
// oauth2-aware tooling, or nil when unauthenticated.
func (s *Store) Token() *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.access == "" {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  s.access,
		RefreshToken: s.refresh,
		TokenType:    "bearer",
	}
}

// mirror persists or removes a key. Callers must hold the write lock.
func (s *Store) mirror(key, value string) error {
	if value == "" {
		return s.durable.Delete(key)
	}
	return s.durable.Set(key, value)
}
