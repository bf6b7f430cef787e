package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/piggy/internal/service"
)

// Supported storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open creates the store for backend at path. SQLite stores are migrated
// before they are returned.
func Open(ctx context.Context, backend, path string) (service.Storage, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONStorage(path)

	case BackendSQLite:
		store, err := NewSQLiteStorage(path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, backend)
	}
}
