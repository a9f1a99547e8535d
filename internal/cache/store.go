// Package cache persists post-processed parse results per document, keyed by
// a schema-version-qualified name derived from the document's filename, and
// judges staleness purely by filesystem modification time.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store is the persistence capability the cache layer needs. It is injected
// so tests can substitute an in-memory store and drive the staleness logic
// without real file timestamps.
type Store interface {
	Exists(key string) bool
	Mtime(key string) (time.Time, error)
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// Directory permissions for the on-disk store.
const dirPerm = 0o750

// FSStore keeps blobs as files under one directory.
type FSStore struct {
	dir string
}

// NewFSStore creates a store rooted at dir. The directory is created on the
// first write.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

// Exists implements Store.
func (s *FSStore) Exists(key string) bool {
	_, err := os.Stat(filepath.Join(s.dir, key))
	return err == nil
}

// Mtime implements Store.
func (s *FSStore) Mtime(key string) (time.Time, error) {
	info, err := os.Stat(filepath.Join(s.dir, key))
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot stat cache blob %s: %w", key, err)
	}
	return info.ModTime(), nil
}

// Read implements Store.
func (s *FSStore) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return nil, fmt.Errorf("cannot read cache blob %s: %w", key, err)
	}
	return data, nil
}

// Write implements Store. Directory creation is idempotent so concurrent
// writers to distinct keys never race on it.
func (s *FSStore) Write(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil && !os.IsExist(err) {
		return fmt.Errorf("cannot create cache directory %s: %w", s.dir, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return fmt.Errorf("cannot write cache blob %s: %w", key, err)
	}
	return nil
}
