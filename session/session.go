// Package session persists the login token and username between runs.
package session

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownKind is returned by Open for an unsupported store type.
var ErrUnknownKind = errors.New("unknown session store type")

// Record is a saved login. Both fields are empty when nobody is logged in.
type Record struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Empty reports whether the record is missing either credential.
func (r Record) Empty() bool {
	return r.Token == "" || r.Username == ""
}

// Store saves and restores a Record. Load returns whatever was saved, possibly
// an empty record, and never checks the token against the server.
type Store interface {
	Save(rec Record) error
	Load() (Record, error)
	Clear() error
	Close() error
}

// Store kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindFile   = "file"
	KindMemory = "memory"
)

// Open creates the store named by kind. dsn is the database or file path and
// is ignored for the memory store.
func Open(kind, dsn string) (Store, error) {
	switch kind {
	case KindSQLite:
		return NewSQLiteStore(dsn)
	case KindFile:
		return NewFileStore(dsn)
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// MemoryStore keeps the record in process memory.
type MemoryStore struct {
	mu  sync.Mutex
	rec Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = rec
	return nil
}

func (m *MemoryStore) Load() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec, nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = Record{}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
