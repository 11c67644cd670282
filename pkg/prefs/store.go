// Package prefs persists user choices between runs as JSON-encoded key/value
// pairs.
package prefs

import (
	"encoding/json"
	"fmt"

	"github.com/sambabib/ncu-helper/pkg/logger"
)

// Backend is a durable string key/value medium.
type Backend interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Store encodes values as JSON on top of a Backend and notifies listeners
// after every successful write.
type Store struct {
	backend   Backend
	listeners []func(key string)
}

// NewStore creates a Store over the given backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// OnChange registers fn to be called with the key of every value written or
// removed.
func (s *Store) OnChange(fn func(key string)) {
	s.listeners = append(s.listeners, fn)
}

// Has reports whether a value is stored under key.
func (s *Store) Has(key string) bool {
	_, ok, err := s.backend.GetItem(key)
	return err == nil && ok
}

// Remove deletes the value stored under key.
func (s *Store) Remove(key string) error {
	if err := s.backend.RemoveItem(key); err != nil {
		return fmt.Errorf("failed to remove preference %s: %w", key, err)
	}
	s.notify(key)
	return nil
}

func (s *Store) notify(key string) {
	for _, fn := range s.listeners {
		fn(key)
	}
}

// Get returns the value stored under key, or def when nothing is stored or the
// stored value cannot be decoded into T.
func Get[T any](s *Store, key string, def T) T {
	if value, ok := lookup[T](s, key); ok {
		return value
	}
	return def
}

// lookup decodes the value stored under key. ok is false when nothing is
// stored or the value cannot be decoded into T.
func lookup[T any](s *Store, key string) (value T, ok bool) {
	raw, found, err := s.backend.GetItem(key)
	if err != nil {
		logger.Warnf("prefs: failed to read %s: %v", key, err)
		return value, false
	}
	if !found {
		return value, false
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Warnf("prefs: ignoring undecodable %s=%s: %v", key, raw, err)
		return value, false
	}
	return value, true
}

// Set stores value under key.
func Set[T any](s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode preference %s: %w", key, err)
	}
	if err := s.backend.SetItem(key, string(data)); err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	logger.Debugf("prefs: %s=%s", key, data)
	s.notify(key)
	return nil
}
