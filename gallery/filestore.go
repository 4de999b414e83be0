package gallery

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore keeps the snapshot in a single JSON file
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{Version: SnapshotVersion}, nil
		}
		return Snapshot{}, storageErr("read", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, storageErr("decode", err)
	}
	if snap.Version != SnapshotVersion {
		return Snapshot{Version: SnapshotVersion}, nil
	}
	return snap, nil
}

// Save writes to a temp file and renames it over the old snapshot so a crash
// never leaves a half-written file.
func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap.Version = SnapshotVersion

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return storageErr("mkdir", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return storageErr("encode", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return storageErr("write", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return storageErr("rename", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
