package filestate

// Package filestate provides a file-backed StateStore, the durable
// client-local storage behind the Credential Store and Onboarding Ledger.
//
// State is a flat string key/value map serialized as JSON into a single
// file. Writes go through a temp file plus rename so a crash mid-write
// never leaves a torn state file. Files are created 0600 and the state
// directory 0700 because the map holds bearer credentials.

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFileName is the state file name inside the configured state directory.
const DefaultFileName = "state.json"

// Store is a file-backed StateStore. The in-memory map is the source of
// truth after Open; every mutation is flushed to disk before returning.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// Open loads (or initializes) the state file under dir. A missing file is
// not an error; it simply means empty state.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	s := &Store{
		path:   filepath.Join(dir, DefaultFileName),
		values: make(map[string]string),
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}
	return s, nil
}

// Get returns the value for key, with ok=false when the key is absent.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and flushes to disk.
func (s *Store) Set(key, value string) error {
	if key == "" {
		return errors.New("state key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flushLocked()
}

// Delete removes key and flushes to disk. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flushLocked()
}

// flushLocked writes the map atomically. Callers must hold the write lock.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
