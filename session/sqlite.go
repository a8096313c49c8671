package session

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const (
	keyToken    = "token"
	keyUsername = "username"
)

// SQLiteStore keeps the session as key/value rows in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the session database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save writes both keys in a single transaction.
func (s *SQLiteStore) Save(rec Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)"
	for key, value := range map[string]string{keyToken: rec.Token, keyUsername: rec.Username} {
		if _, err := tx.Exec(query, key, value); err != nil {
			return fmt.Errorf("failed to save session %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

// Load reads the saved record. Missing keys read as empty strings.
func (s *SQLiteStore) Load() (Record, error) {
	var rec Record
	var err error
	if rec.Token, err = s.get(keyToken); err != nil {
		return Record{}, err
	}
	if rec.Username, err = s.get(keyUsername); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *SQLiteStore) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session %s: %w", key, err)
	}
	return value, nil
}

// Clear deletes the saved record.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM session"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
