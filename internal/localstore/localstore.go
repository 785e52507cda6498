// Package localstore is the client-side persistent key-value store, the
// terminal equivalent of the browser's localStorage. Auth state lives under
// the "token" and "user" keys, the cart under "cart"; values are plain
// serialized text with no encryption.
package localstore

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sql.DB
}

// Well-known keys shared by the state managers. Auth and cart use disjoint
// keys, so no coordination between them is needed.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyCart  = "cart"
)

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Store{DB: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.DB.Exec(query)
	return err
}

// Get returns the stored value for key. A missing key is not an error; the
// second return value reports presence.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	query := `INSERT INTO kv (key, value) VALUES (?, ?)
	          ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	_, err := s.DB.Exec(query, key, value)
	return err
}

func (s *Store) Delete(key string) error {
	_, err := s.DB.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (s *Store) Close() error {
	return s.DB.Close()
}
