package store

import (
	"context"
	"fmt"
)

// NewStore creates a store based on the given store type.
// Supported types: "file", "memory", "postgres".
func NewStore(ctx context.Context, storeType, rulesPath, dbDSN string) (Store, error) {
	switch storeType {
	case "file":
		return NewFileStore(rulesPath)
	case "memory":
		return NewMemoryStore(), nil
	case "postgres":
		return NewPostgresStore(ctx, dbDSN)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}
