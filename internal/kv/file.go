package kv

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

var _ types.Storage = (*FileStore)(nil)

// fileExt is appended to every key to form its file name.
const fileExt = ".json"

// FileStore persists each key as a file in a data directory.
type FileStore struct {
	mu     sync.RWMutex
	dir    string
	closed bool
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// FileName returns the file name that holds key.
func FileName(key string) string {
	return key + fileExt
}

// validKey rejects keys that would escape the data directory or collide
// with temp files.
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, ".") {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}

// Get reads the file for key. A missing file reports ok=false.
func (s *FileStore) Get(key string) (string, bool, error) {
	if !validKey(key) {
		return "", false, types.ErrInvalidKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, types.ErrStorageClosed
	}
	data, err := os.ReadFile(filepath.Join(s.dir, FileName(key)))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the file for key.
func (s *FileStore) Set(key, value string) error {
	if !validKey(key) {
		return types.ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStorageClosed
	}
	return writeAtomic(filepath.Join(s.dir, FileName(key)), value)
}

// Remove deletes the file for key. A missing file is not an error.
func (s *FileStore) Remove(key string) error {
	if !validKey(key) {
		return types.ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStorageClosed
	}
	err := os.Remove(filepath.Join(s.dir, FileName(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Close marks the store closed. Idempotent.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// writeAtomic writes value to path using the temp-file, fsync, rename
// pattern.
func writeAtomic(path, value string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".kv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing value: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
