// Package cache implements a content-addressed translation cache
// backed by SQLite (modernc.org/sqlite, pure Go — no cgo), grounded on
// the pack's funxy teacher's fondness for a local persistent store
// for repeated work, generalized here from "module resolution cache"
// to "skip re-translating a source file whose bytes and options
// haven't changed since the last Parse call".
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ivylang/ivyc/internal/config"
)

// Cache wraps one SQLite connection holding translation results keyed
// by Key (one SHA-256 digest over the source bytes and the
// JSON-encoded options).
type Cache struct {
	db *sql.DB
}

// Open opens (creating if absent) a cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	const schema = `
CREATE TABLE IF NOT EXISTS translations (
	key TEXT PRIMARY KEY,
	output TEXT NOT NULL,
	created_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key computes the content-addressed cache key for a (source, options)
// pair: a source byte-for-byte change, or any option change, is a
// cache miss.
func Key(source []byte, opts config.Options) (string, error) {
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write(source)
	h.Write([]byte{0})
	h.Write(optsJSON)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get looks up a previously stored translation by key.
func (c *Cache) Get(key string) (output string, ok bool, err error) {
	row := c.db.QueryRow(`SELECT output FROM translations WHERE key = ?`, key)
	err = row.Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return output, true, nil
}

// Put stores (or replaces) the translation output for key.
func (c *Cache) Put(key, output string) error {
	_, err := c.db.Exec(
		`INSERT INTO translations (key, output) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET output = excluded.output`,
		key, output)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}
