package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Clock supplies the current time; injected so tests can advance it
type Clock func() time.Time

// Store owns the data directory holding the three JSON documents
// (users, sessions, searches). Every mutation rewrites its document in
// full via a temp-file rename, so a crash leaves either the previous
// or the new state on disk, never a partial write.
type Store struct {
	dir   string
	clock Clock
}

// Config holds store configuration
type Config struct {
	Dir   string
	Clock Clock
}

// Open prepares the data directory and returns the store root
func Open(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Store{dir: cfg.Dir, clock: clock}, nil
}

// Now returns the store's notion of the current time
func (s *Store) Now() time.Time {
	return s.clock()
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// writeDocument atomically replaces the named JSON document
func (s *Store) writeDocument(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// readDocument loads the named JSON document into v. A missing file is
// not an error; v is left untouched and ok is false.
func (s *Store) readDocument(name string, v interface{}) (bool, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return true, nil
}
