// Package kv is a single-file sqlite document store for client state
package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS blobs (
    name       TEXT PRIMARY KEY,
    data       BLOB NOT NULL,
    updated_at TEXT NOT NULL
)`

// opTimeout bounds each Load/Save, which carry no caller context
const opTimeout = 5 * time.Second

// KV stores named byte documents in one sqlite table
type KV struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path; ":memory:" is accepted for tests
func Open(path string) (*KV, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("kv: mkdir %s: %w", filepath.Dir(path), err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("kv: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // single writer

	for _, stmt := range []string{"PRAGMA busy_timeout=5000", schema} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("kv: init schema: %w", err)
		}
	}
	return &KV{db: db, now: time.Now}, nil
}

// Get returns the document stored under name
func (k *KV) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if k == nil || k.db == nil {
		return nil, false, errors.New("kv: not open")
	}
	var data []byte
	err := k.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv: get %s: %w", name, err)
	}
	return data, true, nil
}

// Put upserts the document stored under name
func (k *KV) Put(ctx context.Context, name string, data []byte) error {
	if k == nil || k.db == nil {
		return errors.New("kv: not open")
	}
	_, err := k.db.ExecContext(ctx, `
		INSERT INTO blobs (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, data, k.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("kv: put %s: %w", name, err)
	}
	return nil
}

// Load satisfies stores.Blob
func (k *KV) Load(name string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return k.Get(ctx, name)
}

// Save satisfies stores.Blob
func (k *KV) Save(name string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return k.Put(ctx, name, data)
}

// Close closes the database
func (k *KV) Close() error {
	if k == nil || k.db == nil {
		return nil
	}
	return k.db.Close()
}
