package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when a stored file doesn't exist
var ErrNotFound = errors.New("not found")

// Store reads and writes named blobs such as savefiles
type Store interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

// FileStore keeps blobs as files under a base directory
type FileStore struct {
	basePath string
}

// NewFileStore creates a store rooted at basePath
func NewFileStore(basePath string) *FileStore {
	return &FileStore{basePath: basePath}
}

// Path returns the file path for name
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.basePath, name)
}

// Read returns the content of name
func (s *FileStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Write replaces name atomically through a temp file
func (s *FileStore) Write(name string, data []byte) error {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// MemoryStore keeps blobs in memory
type MemoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

// Read returns a copy of the content of name
func (s *MemoryStore) Read(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data under name
func (s *MemoryStore) Write(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
	return nil
}
