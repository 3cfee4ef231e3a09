package storage

import "errors"

var (
	// ErrNotFound is returned by Get when a key has never been written
	ErrNotFound = errors.New("key not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'daybook init' first")
	// ErrNotLoaded is returned when a store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a key-value store of whole documents. Every Put replaces the
// document stored under key.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Versioned is implemented by SQL backed stores that track a schema version.
type Versioned interface {
	SchemaVersion() (current, latest int, err error)
}

var (
	_ Provider  = (*JSONStore)(nil)
	_ Provider  = (*SQLiteStore)(nil)
	_ Provider  = (*PostgresStore)(nil)
	_ Provider  = (*DiskvStore)(nil)
	_ Provider  = (*MemoryStore)(nil)
	_ Versioned = (*SQLiteStore)(nil)
	_ Versioned = (*PostgresStore)(nil)
)
