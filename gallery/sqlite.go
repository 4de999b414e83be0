package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS images (
	id         TEXT PRIMARY KEY,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	image_data TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS gallery_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteStore keeps the gallery in a SQLite database, one row per image
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, storageErr("mkdir", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, storageErr("open", err)
	}

	// single writer; the persister serializes saves anyway
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, storageErr("configure", err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, storageErr("migrate", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Version: SnapshotVersion}

	version, err := s.meta(ctx, "version")
	if err != nil {
		return Snapshot{}, err
	}
	if version != "" && version != strconv.Itoa(SnapshotVersion) {
		return snap, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, image_data, created_at FROM images ORDER BY position`)
	if err != nil {
		return Snapshot{}, storageErr("query images", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img Image
		var created int64
		if err := rows.Scan(&img.ID, &img.Name, &img.Data, &created); err != nil {
			return Snapshot{}, storageErr("scan image", err)
		}
		img.CreatedAt = time.Unix(0, created).UTC()
		snap.Images = append(snap.Images, img)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, storageErr("read images", err)
	}

	snap.Selected, err = s.meta(ctx, "selected")
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *SQLiteStore) meta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM gallery_meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", storageErr("read "+key, err)
	}
	return value, nil
}

// Save replaces the stored gallery with snap in one transaction
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM images`); err != nil {
		return storageErr("clear images", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO images (id, position, name, image_data, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return storageErr("prepare", err)
	}
	defer stmt.Close()

	for i, img := range snap.Images {
		if _, err := stmt.ExecContext(ctx, img.ID, i, img.Name, img.Data, img.CreatedAt.UnixNano()); err != nil {
			return storageErr(fmt.Sprintf("insert image %s", img.ID), err)
		}
	}

	upsert := `INSERT INTO gallery_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, "version", strconv.Itoa(SnapshotVersion)); err != nil {
		return storageErr("write version", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, "selected", snap.Selected); err != nil {
		return storageErr("write selected", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
