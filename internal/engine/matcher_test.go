package engine

import (
	"testing"

	"github.com/licomply/licomply/internal/rules"
)

// fixtureRuleSet mirrors the canonical two-rule scenario: one universal
// fire-safety rule and one meat-gated health rule.
func fixtureRuleSet() []rules.Rule {
	return []rules.Rule{
		{
			ID:         "fire-1",
			Category:   "בטיחות אש",
			Obligation: "להתקין מטף כיבוי",
			Priority:   intPtr(1),
			Conditions: rules.Conditions{AnyBusiness: true},
		},
		{
			ID:         "health-1",
			Category:   "בריאות",
			Obligation: "רישיון וטרינרי להגשת בשר",
			Priority:   intPtr(2),
			Conditions: rules.Conditions{ServesMeat: true},
		},
	}
}

func TestMatch_MeatGating(t *testing.T) {
	ruleSet := fixtureRuleSet()

	// no meat service: only the universal rule applies
	got := Match(ruleSet, rules.BusinessProfile{Area: 50, Seats: 20})
	if len(got) != 1 || got[0].ID != "fire-1" {
		t.Fatalf("Match() = %v, want only fire-1", ids(got))
	}

	// meat and deliveries: both rules apply
	got = Match(ruleSet, rules.BusinessProfile{Area: 50, Seats: 20, ServesMeat: true, Deliveries: true})
	if len(got) != 2 {
		t.Fatalf("Match() = %v, want both rules", ids(got))
	}
}

func TestMatch_PrioritySorted(t *testing.T) {
	p1, p5 := 1, 5
	ruleSet := []rules.Rule{
		{ID: "late", Priority: &p5, Conditions: rules.Conditions{AnyBusiness: true}},
		{ID: "unprioritized", Conditions: rules.Conditions{AnyBusiness: true}}, // defaults to 99
		{ID: "early", Priority: &p1, Conditions: rules.Conditions{AnyBusiness: true}},
	}

	got := Match(ruleSet, rules.BusinessProfile{})
	want := []string{"early", "late", "unprioritized"}
	if g := ids(got); !equal(g, want) {
		t.Fatalf("Match() order = %v, want %v", g, want)
	}

	for i := 1; i < len(got); i++ {
		if got[i-1].EffectivePriority() > got[i].EffectivePriority() {
			t.Fatalf("priorities not ascending at %d: %v", i, got)
		}
	}
}

func TestMatch_StableForEqualPriority(t *testing.T) {
	p := 3
	ruleSet := []rules.Rule{
		{ID: "a", Priority: &p, Conditions: rules.Conditions{AnyBusiness: true}},
		{ID: "b", Priority: &p, Conditions: rules.Conditions{AnyBusiness: true}},
		{ID: "c", Priority: &p, Conditions: rules.Conditions{AnyBusiness: true}},
	}

	got := Match(ruleSet, rules.BusinessProfile{})
	if g := ids(got); !equal(g, []string{"a", "b", "c"}) {
		t.Fatalf("equal-priority rules reordered: %v", g)
	}
}

func TestMatch_EmptyRuleSet(t *testing.T) {
	got := Match(nil, rules.BusinessProfile{Area: 500, Seats: 100, ServesMeat: true})
	if got == nil {
		t.Fatal("Match() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Fatalf("Match() = %v, want empty", ids(got))
	}
}

func TestMatch_DoesNotMutateInput(t *testing.T) {
	p2, p1 := 2, 1
	ruleSet := []rules.Rule{
		{ID: "x", Priority: &p2, Conditions: rules.Conditions{AnyBusiness: true}},
		{ID: "y", Priority: &p1, Conditions: rules.Conditions{AnyBusiness: true}},
	}

	_ = Match(ruleSet, rules.BusinessProfile{})
	if ruleSet[0].ID != "x" || ruleSet[1].ID != "y" {
		t.Fatal("Match() reordered the source rule set")
	}
}

func ids(rs []rules.Rule) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
