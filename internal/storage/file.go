package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileStore keeps the best score as a decimal integer in a plain text file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path.
// The file is created on the first save.
func NewFileStore(path string) (*FileStore, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New("storage: empty best-score file path")
	}
	return &FileStore{path: path}, nil
}

// Path returns the resolved file path.
func (f *FileStore) Path() string {
	return f.path
}

// LoadBest returns the stored score. A missing, unreadable, malformed, or
// negative value reads as 0.
func (f *FileStore) LoadBest() int {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0
	}
	best, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || best < 0 {
		return 0
	}
	return best
}

// SaveBest replaces the file contents atomically via a temp file and rename.
func (f *FileStore) SaveBest(best int) error {
	if best < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeScore, best)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".best-*")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.Itoa(best) + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write best score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write best score: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// ResetBest removes the file. A missing file is not an error.
func (f *FileStore) ResetBest() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: cannot remove %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles.
func (f *FileStore) Close() error {
	return nil
}
