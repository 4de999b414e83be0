package gallery

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// SnapshotVersion tags persisted snapshots. There is no migration between
// versions; an unknown version is read as empty.
const SnapshotVersion = 1

// ErrStorage is wrapped by every store read or write failure
var ErrStorage = errors.New("gallery storage")

// Snapshot is the persisted gallery: every image plus the selected id. The
// selected id may name an image that no longer exists.
type Snapshot struct {
	Version  int     `json:"version"`
	Images   []Image `json:"images"`
	Selected string  `json:"selected,omitempty"`
}

// Store persists gallery snapshots. Implementations overwrite on Save; the
// last write wins.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Close() error
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

// Open picks a store implementation by backend name ("json" or "sqlite")
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", "json":
		return NewFileStore(filepath.Join(dir, "gallery.json")), nil
	case "sqlite":
		return NewSQLiteStore(filepath.Join(dir, "gallery.db"))
	}
	return nil, fmt.Errorf("unknown gallery backend %q", backend)
}
