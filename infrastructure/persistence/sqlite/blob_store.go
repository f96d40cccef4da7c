// Package sqlite backs the blob store port with a single-file SQLite
// database, giving saved scenes durability across restarts without an
// external service.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"designcanvas/application/ports"
	pkgerrors "designcanvas/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// BlobStore persists blobs in a SQLite table keyed by name
type BlobStore struct {
	db *sql.DB
}

// NewBlobStore opens (or creates) the database file and ensures the schema
func NewBlobStore(path string) (*BlobStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, pkgerrors.NewStorageError("failed to open sqlite database").WithCause(err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, pkgerrors.NewStorageError("failed to create blobs table").WithCause(err)
	}
	return &BlobStore{db: db}, nil
}

var _ ports.BlobStore = (*BlobStore)(nil)

// Put upserts a blob under the key
func (s *BlobStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blobs (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC(),
	)
	if err != nil {
		return pkgerrors.NewStorageError("failed to write blob").WithCause(err)
	}
	return nil
}

// Get reads a blob, reporting whether the key existed
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, pkgerrors.NewStorageError("failed to read blob").WithCause(err)
	}
	return data, true, nil
}

// Delete removes a blob
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return pkgerrors.NewStorageError("failed to delete blob").WithCause(err)
	}
	return nil
}

// Close releases the underlying database handle
func (s *BlobStore) Close() error {
	return s.db.Close()
}
