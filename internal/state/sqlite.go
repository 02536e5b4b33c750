package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStorage persists named state records in a local SQLite file, so
// cart and auth state survive restarts of the client.
type SQLiteStorage struct {
	db *sqlx.DB
}

// OpenSQLite opens (or creates) the state database at the given path.
func OpenSQLite(path string) (*SQLiteStorage, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStorage{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS client_state(
  name TEXT PRIMARY KEY,
  state TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteStorage) Load(name string) (json.RawMessage, bool, error) {
	var raw string
	err := s.db.Get(&raw, `SELECT state FROM client_state WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load state %q: %w", name, err)
	}
	return json.RawMessage(raw), true, nil
}

func (s *SQLiteStorage) Save(name string, state json.RawMessage) error {
	_, err := s.db.Exec(`
		INSERT INTO client_state(name, state, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`, name, string(state), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save state %q: %w", name, err)
	}
	return nil
}

func (s *SQLiteStorage) Delete(name string) error {
	if _, err := s.db.Exec(`DELETE FROM client_state WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete state %q: %w", name, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
