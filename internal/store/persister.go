package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// ErrUnknownBackend is returned for a backend name other than sqlite or json.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend names accepted by OpenPersister.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Persister loads and saves the whole store.
type Persister interface {
	// Load reads every stored month. An absent store is not an error.
	Load(ctx context.Context) (Months, error)
	// Save replaces everything persisted with m.
	Save(ctx context.Context, m Months) error
	Close() error
}

// OpenPersister opens the backend's file inside dataDir.
func OpenPersister(backend, dataDir string) (Persister, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(filepath.Join(dataDir, "tally.db"))
	case BackendJSON:
		return NewJSONFile(filepath.Join(dataDir, "tally.json")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
