package store

import (
	"context"
	"testing"

	"github.com/licomply/licomply/internal/rules"
)

func TestMemoryStore_UpsertAndGet(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	rs, err := m.GetAllRules(ctx)
	if err != nil {
		t.Fatalf("GetAllRules() error = %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("new store has %d rules", len(rs))
	}

	if err := m.UpsertRule(ctx, rules.Rule{ID: "a", Obligation: "אחת"}); err != nil {
		t.Fatalf("UpsertRule() error = %v", err)
	}
	if err := m.UpsertRule(ctx, rules.Rule{ID: "b", Obligation: "שתיים"}); err != nil {
		t.Fatalf("UpsertRule() error = %v", err)
	}

	rs, _ = m.GetAllRules(ctx)
	if len(rs) != 2 || rs[0].ID != "a" || rs[1].ID != "b" {
		t.Fatalf("rules = %+v, want a then b in insertion order", rs)
	}

	// updating keeps position
	if err := m.UpsertRule(ctx, rules.Rule{ID: "a", Obligation: "מעודכנת"}); err != nil {
		t.Fatalf("UpsertRule() error = %v", err)
	}
	rs, _ = m.GetAllRules(ctx)
	if len(rs) != 2 || rs[0].Obligation != "מעודכנת" {
		t.Fatalf("update changed order or was lost: %+v", rs)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	m := NewMemoryStoreWithRules([]rules.Rule{{ID: "a"}})
	ctx := context.Background()

	rs, _ := m.GetAllRules(ctx)
	rs[0].ID = "mutated"

	again, _ := m.GetAllRules(ctx)
	if again[0].ID != "a" {
		t.Fatal("GetAllRules leaked internal state")
	}
}
