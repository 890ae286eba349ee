package store

import (
	"context"
	"sync"

	"github.com/licomply/licomply/internal/rules"
)

// MemoryStore is an in-memory implementation of the Store interface, suitable
// for development and tests. It preserves insertion order, which the matcher
// relies on for stable-sort determinism.
type MemoryStore struct {
	mu    sync.RWMutex
	rules []rules.Rule
	index map[string]int // rule ID -> position in rules
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]int)}
}

// NewMemoryStoreWithRules creates an in-memory store seeded with rules.
func NewMemoryStoreWithRules(rs []rules.Rule) *MemoryStore {
	m := NewMemoryStore()
	for _, r := range rs {
		_ = m.UpsertRule(context.Background(), r)
	}
	return m
}

// GetAllRules returns a copy of the stored rules in insertion order.
func (m *MemoryStore) GetAllRules(ctx context.Context) ([]rules.Rule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]rules.Rule, len(m.rules))
	copy(out, m.rules)
	return out, nil
}

// UpsertRule replaces the rule with the same ID in place, or appends it.
func (m *MemoryStore) UpsertRule(ctx context.Context, r rules.Rule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i, ok := m.index[r.ID]; ok && r.ID != "" {
		m.rules[i] = r
		return nil
	}
	m.index[r.ID] = len(m.rules)
	m.rules = append(m.rules, r)
	return nil
}

// SourceFile returns an empty string; memory stores have no origin document.
func (m *MemoryStore) SourceFile() string { return "" }

// Close is a no-op for MemoryStore.
func (m *MemoryStore) Close() error { return nil }
