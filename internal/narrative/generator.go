// Package narrative produces free-form obligation reports through an external
// text-generation service. It is an optional collaborator: every failure path
// ends in the deterministic composer, never in a caller-visible error.
package narrative

import (
	"context"

	"github.com/licomply/licomply/internal/rules"
)

// Generator turns a profile and its matched rules into a natural-language
// report. Implementations must respect ctx cancellation; callers bound every
// call with a timeout.
type Generator interface {
	Generate(ctx context.Context, profile rules.BusinessProfile, matched []rules.Rule) (string, error)
}
