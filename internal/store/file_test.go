package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "processed_rules.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileStore_Load(t *testing.T) {
	path := writeRulesFile(t, `{
		"source_file": "18-07-2022_4.2A.pdf",
		"rules_found": [
			{"id": "1_0", "category": "בשר", "obligation": "טקסט",
			 "conditions": {"servesMeat": true}, "priority": 1},
			{"id": "1_1", "conditions": {"any_business": true}}
		]
	}`)

	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	rs, err := fs.GetAllRules(context.Background())
	if err != nil {
		t.Fatalf("GetAllRules() error = %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("rules = %d, want 2", len(rs))
	}
	if !rs[0].Conditions.ServesMeat {
		t.Error("alias condition not resolved at load time")
	}
	if fs.SourceFile() != "18-07-2022_4.2A.pdf" {
		t.Errorf("SourceFile() = %q", fs.SourceFile())
	}
}

func TestFileStore_EmptyRuleListIsValid(t *testing.T) {
	path := writeRulesFile(t, `{"rules_found": []}`)

	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	rs, err := fs.GetAllRules(context.Background())
	if err != nil {
		t.Fatalf("GetAllRules() error = %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("rules = %d, want 0", len(rs))
	}
}

func TestFileStore_MissingFile(t *testing.T) {
	if _, err := NewFileStore(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing file must be an error")
	}
}

func TestFileStore_MalformedFile(t *testing.T) {
	path := writeRulesFile(t, `{not json`)
	if _, err := NewFileStore(path); err == nil {
		t.Fatal("malformed file must be an error")
	}
}

func TestFileStore_ReadOnly(t *testing.T) {
	path := writeRulesFile(t, `{"rules_found": []}`)
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	err = fs.UpsertRule(context.Background(), rulesFixture())
	if !errors.Is(err, ErrReadOnly) {
		t.Fatalf("UpsertRule() error = %v, want ErrReadOnly", err)
	}
}

func TestFileStore_Reload(t *testing.T) {
	path := writeRulesFile(t, `{"rules_found": [{"id": "a"}]}`)
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(`{"rules_found": [{"id": "a"}, {"id": "b"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fs.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	rs, _ := fs.GetAllRules(context.Background())
	if len(rs) != 2 {
		t.Fatalf("rules after reload = %d, want 2", len(rs))
	}
}
