package storage

import (
	"errors"
	"os"
	"strings"

	"github.com/julianstephens/daybook/internal/logger"
)

const (
	MemoryLocation = ":memory:"
	DirScheme      = "dir://"
)

// Open returns the Provider for location without touching it:
//
//	postgres://...   PostgresStore (connection string resolved via env/keyring)
//	dir://path       DiskvStore
//	:memory:         MemoryStore
//	*.json           JSONStore
//	anything else    SQLiteStore, or DiskvStore if it is an existing directory
func Open(location string) (Provider, error) {
	switch {
	case IsPostgres(location):
		if HasEmbeddedCredentials(location) {
			return nil, ErrEmbeddedCredentials
		}
		return NewPostgresStore(ResolveConnectionString(location)), nil
	case strings.HasPrefix(location, DirScheme):
		return NewDiskvStore(strings.TrimPrefix(location, DirScheme)), nil
	case location == MemoryLocation:
		return NewMemoryStore(), nil
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return NewJSONStore(location), nil
	}

	if info, err := os.Stat(location); err == nil && info.IsDir() {
		return NewDiskvStore(location), nil
	}
	return NewSQLiteStore(location), nil
}

// LoadOrInit loads p, initializing it first if it has never been created.
func LoadOrInit(p Provider) error {
	err := p.Load()
	if errors.Is(err, ErrNotInitialized) {
		logger.Info("Initializing new store", "location", p.GetConfigPath())
		return p.Init()
	}
	return err
}
