package engine

import (
	"sort"

	"github.com/licomply/licomply/internal/rules"
)

// Match filters the rule set by Matches and returns the applicable rules
// sorted ascending by effective priority. The sort is stable: rules with
// equal priority keep their source order, which in turn fixes the category
// order of the composed report. An empty result is a valid outcome, never an
// error.
func Match(ruleSet []rules.Rule, profile rules.BusinessProfile) []rules.Rule {
	matched := make([]rules.Rule, 0, len(ruleSet))
	for _, r := range ruleSet {
		if Matches(r.Conditions, profile) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].EffectivePriority() < matched[j].EffectivePriority()
	})
	return matched
}
