package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/licomply/licomply/internal/rules"
)

// FileStore reads rules from a processed-rules JSON document on disk. Writes
// go through the admin API only for mutable backends; the file backend is
// read-only and reports ErrReadOnly instead.
type FileStore struct {
	path string

	mu  sync.RWMutex
	doc rules.Document
}

// NewFileStore opens and parses the rule document at path. A missing or
// unparsable file is an error so the caller can fail fast at startup; a file
// with zero rules is valid and only logged.
func NewFileStore(path string) (*FileStore, error) {
	f := &FileStore{path: path}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reload re-reads the backing file, replacing the in-memory document.
// It is called at startup and by the file watcher on change events.
func (f *FileStore) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read rules file: %w", err)
	}

	var doc rules.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse rules file %s: %w", f.path, err)
	}
	if len(doc.Rules) == 0 {
		log.Warn().Str("path", f.path).Msg("no rules found in rules file")
	}

	f.mu.Lock()
	f.doc = doc
	f.mu.Unlock()
	return nil
}

// GetAllRules returns the parsed rules in document order.
func (f *FileStore) GetAllRules(ctx context.Context) ([]rules.Rule, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]rules.Rule, len(f.doc.Rules))
	copy(out, f.doc.Rules)
	return out, nil
}

// UpsertRule is not supported for the file backend.
func (f *FileStore) UpsertRule(ctx context.Context, r rules.Rule) error {
	return ErrReadOnly
}

// SourceFile returns the origin recorded in the document, falling back to the
// file path.
func (f *FileStore) SourceFile() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.doc.SourceFile != "" {
		return f.doc.SourceFile
	}
	return f.path
}

// Path returns the watched file path.
func (f *FileStore) Path() string { return f.path }

// Close is a no-op for FileStore.
func (f *FileStore) Close() error { return nil }
