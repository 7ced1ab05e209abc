package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/keydrill/internal/lessonlist"
)

// FileStore keeps the snapshot in one JSON file that is overwritten whole on
// every save.
type FileStore struct {
	path string
}

// OpenFile returns a FileStore for path. The file need not exist.
func OpenFile(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("state path is empty")
	}
	return &FileStore{path: path}, nil
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot.
func (s *FileStore) Load(_ context.Context) (lessonlist.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lessonlist.Snapshot{}, ErrNotFound
		}
		return lessonlist.Snapshot{}, fmt.Errorf("failed to read state: %w", err)
	}
	var snap lessonlist.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return lessonlist.Snapshot{}, fmt.Errorf("failed to decode state %s: %w", s.path, err)
	}
	return snap, nil
}

// Save writes the snapshot to a temp file and renames it into place.
func (s *FileStore) Save(_ context.Context, snap lessonlist.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close state: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace state: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}
