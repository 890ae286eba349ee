package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by ValidateRule.
var (
	ErrInvalidRule      = errors.New("invalid rule")
	ErrInvalidCondition = errors.New("invalid condition")
)

// ValidateRule checks a rule submitted through the admin API. The matching
// engine itself stays permissive about loaded rules; this stricter check only
// guards writes, so obviously broken rules never enter the store.
// It is a pure function: it never mutates r and has no side effects.
func ValidateRule(r Rule) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidRule)
	}
	if r.Priority != nil && *r.Priority < 0 {
		return fmt.Errorf("%w: priority must not be negative", ErrInvalidRule)
	}
	if r.Conditions.MaxSeats != nil && *r.Conditions.MaxSeats < 0 {
		return fmt.Errorf("%w: max_seats_less_or_equal must not be negative", ErrInvalidCondition)
	}
	if r.Conditions.AreaGT != nil && *r.Conditions.AreaGT < 0 {
		return fmt.Errorf("%w: area_gt must not be negative", ErrInvalidCondition)
	}
	if r.Conditions.AreaLT != nil && *r.Conditions.AreaLT <= 0 {
		return fmt.Errorf("%w: area_lt must be positive", ErrInvalidCondition)
	}
	if r.Conditions.AreaGT != nil && r.Conditions.AreaLT != nil && *r.Conditions.AreaGT >= *r.Conditions.AreaLT {
		return fmt.Errorf("%w: area_gt must be below area_lt", ErrInvalidCondition)
	}
	return nil
}
