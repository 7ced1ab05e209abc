// Package store persists the lesson list between runs.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/keydrill/internal/lessonlist"
)

// ErrNotFound is returned by Load when no state was saved yet.
var ErrNotFound = errors.New("no saved state")

// Backend names a storage implementation.
type Backend string

const (
	// BackendJSON stores a single JSON snapshot file.
	BackendJSON Backend = "json"
	// BackendSQLite stores the snapshot in a SQLite database.
	BackendSQLite Backend = "sqlite"
)

// Store loads and saves lesson list snapshots.
type Store interface {
	Load(ctx context.Context) (lessonlist.Snapshot, error)
	Save(ctx context.Context, snap lessonlist.Snapshot) error
	Close() error
}

// ParseBackend validates a backend name.
func ParseBackend(value string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(value))) {
	case BackendJSON:
		return BackendJSON, nil
	case BackendSQLite:
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q (want %q or %q)", value, BackendJSON, BackendSQLite)
	}
}

// Open opens the store for backend at path.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendJSON:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
