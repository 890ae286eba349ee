// Package engine decides which licensing rules apply to a business profile.
package engine

import (
	"github.com/licomply/licomply/internal/rules"
	"github.com/licomply/licomply/internal/targeting"
)

// Matches reports whether a rule's conditions hold for the given profile.
//
// Checks run in a fixed order and short-circuit:
//  1. any_business matches unconditionally, regardless of other fields.
//  2. meat-service requirement
//  3. delivery requirement
//  4. seat cap (inclusive)
//  5. area lower bound (strict)
//  6. area upper bound (strict)
//  7. optional JSON Logic expression
//
// Absent fields impose no constraint. Matches is pure and never fails:
// an expression that does not evaluate is skipped rather than treated as a
// mismatch, matching the permissive handling of malformed rules elsewhere.
func Matches(cond rules.Conditions, profile rules.BusinessProfile) bool {
	if cond.AnyBusiness {
		return true
	}
	if cond.ServesMeat && !profile.ServesMeat {
		return false
	}
	if cond.DeliveriesRequired && !profile.Deliveries {
		return false
	}
	if cond.MaxSeats != nil && profile.Seats > *cond.MaxSeats {
		return false
	}
	if cond.AreaGT != nil && profile.Area <= *cond.AreaGT {
		return false
	}
	if cond.AreaLT != nil && profile.Area >= *cond.AreaLT {
		return false
	}
	if cond.Expression != "" {
		ok, err := targeting.Evaluate(cond.Expression, profile.ContextMap())
		if err == nil && !ok {
			return false
		}
	}
	return true
}
