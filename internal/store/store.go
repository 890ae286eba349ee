// Package store provides the rule-set persistence backends.
package store

import (
	"context"
	"errors"

	"github.com/licomply/licomply/internal/rules"
)

// ErrReadOnly is returned by backends that cannot accept rule writes.
var ErrReadOnly = errors.New("store is read-only")

// Store defines the interface for rule persistence operations.
// Implementations must be safe for concurrent use.
type Store interface {
	// GetAllRules retrieves every rule in source order.
	// Returns an empty slice, not an error, when no rules exist.
	GetAllRules(ctx context.Context) ([]rules.Rule, error)

	// UpsertRule creates or updates a rule by ID. Backends that cannot
	// persist writes return ErrReadOnly.
	UpsertRule(ctx context.Context, r rules.Rule) error

	// SourceFile reports the human-readable origin of the rule data,
	// empty when the backend has none.
	SourceFile() string

	// Close releases any resources held by the store.
	Close() error
}
