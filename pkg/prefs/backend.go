package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sambabib/ncu-helper/pkg/logger"
)

// ErrStoreCorrupted is returned when the preferences file is not a JSON object.
var ErrStoreCorrupted = errors.New("preferences file is corrupted")

// MemoryBackend keeps values in memory only.
type MemoryBackend struct {
	items map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string]string)}
}

func (m *MemoryBackend) GetItem(key string) (string, bool, error) {
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryBackend) SetItem(key, value string) error {
	m.items[key] = value
	return nil
}

func (m *MemoryBackend) RemoveItem(key string) error {
	delete(m.items, key)
	return nil
}

// FileBackend stores all values in a single JSON object on disk. The file is
// read on first access and rewritten after every change.
type FileBackend struct {
	path   string
	items  map[string]json.RawMessage
	loaded bool
	mu     sync.Mutex
}

// NewFileBackend creates a backend persisting to path. Nothing is read or
// written until the first access.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file path.
func (f *FileBackend) Path() string {
	return f.path
}

// DefaultPath returns $XDG_CONFIG_HOME/ncu-helper/preferences.json, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "ncu-helper", "preferences.json"), nil
}

func (f *FileBackend) GetItem(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.loadUnsafe(); err != nil {
		return "", false, err
	}
	raw, ok := f.items[key]
	return string(raw), ok, nil
}

func (f *FileBackend) SetItem(key, value string) error {
	if !json.Valid([]byte(value)) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.loadUnsafe(); err != nil && !errors.Is(err, ErrStoreCorrupted) {
		return err
	}
	f.items[key] = json.RawMessage(value)
	return f.saveUnsafe()
}

func (f *FileBackend) RemoveItem(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.loadUnsafe(); err != nil && !errors.Is(err, ErrStoreCorrupted) {
		return err
	}
	if _, ok := f.items[key]; !ok {
		return nil
	}
	delete(f.items, key)
	return f.saveUnsafe()
}

// loadUnsafe reads the file once. A missing file is an empty store; a
// corrupted one is reported but replaced by an empty store so the next write
// repairs it. Caller must hold the lock.
func (f *FileBackend) loadUnsafe() error {
	if f.loaded {
		return nil
	}
	f.items = make(map[string]json.RawMessage)

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read preferences file: %w", err)
	}

	f.loaded = true
	if err := json.Unmarshal(data, &f.items); err != nil {
		f.items = make(map[string]json.RawMessage)
		return fmt.Errorf("%w: %v", ErrStoreCorrupted, err)
	}
	if f.items == nil {
		f.items = make(map[string]json.RawMessage)
	}
	return nil
}

// saveUnsafe writes to a temp file and renames it over the target. Caller
// must hold the lock.
func (f *FileBackend) saveUnsafe() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(f.items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename preferences file: %w", err)
	}
	return nil
}

// ReadOnlyBackend serves reads from the wrapped backend and discards writes.
type ReadOnlyBackend struct {
	Backend
}

func (r ReadOnlyBackend) SetItem(key, value string) error {
	logger.Debugf("prefs: not saving %s=%s", key, value)
	return nil
}

func (r ReadOnlyBackend) RemoveItem(key string) error {
	logger.Debugf("prefs: not removing %s", key)
	return nil
}
