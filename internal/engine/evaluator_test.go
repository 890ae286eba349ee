package engine

import (
	"testing"

	"github.com/licomply/licomply/internal/rules"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		cond    rules.Conditions
		profile rules.BusinessProfile
		want    bool
	}{
		{
			name:    "empty conditions match everything",
			cond:    rules.Conditions{},
			profile: rules.BusinessProfile{},
			want:    true,
		},
		{
			name:    "any_business matches unconditionally",
			cond:    rules.Conditions{AnyBusiness: true},
			profile: rules.BusinessProfile{},
			want:    true,
		},
		{
			name: "any_business overrides failing constraints on the same rule",
			cond: rules.Conditions{
				AnyBusiness: true,
				ServesMeat:  true,
				MaxSeats:    intPtr(1),
			},
			profile: rules.BusinessProfile{Seats: 500},
			want:    true,
		},
		{
			name:    "meat requirement unmet",
			cond:    rules.Conditions{ServesMeat: true},
			profile: rules.BusinessProfile{ServesMeat: false},
			want:    false,
		},
		{
			name:    "meat requirement met",
			cond:    rules.Conditions{ServesMeat: true},
			profile: rules.BusinessProfile{ServesMeat: true},
			want:    true,
		},
		{
			name:    "delivery requirement unmet",
			cond:    rules.Conditions{DeliveriesRequired: true},
			profile: rules.BusinessProfile{},
			want:    false,
		},
		{
			name:    "seat cap exceeded",
			cond:    rules.Conditions{MaxSeats: intPtr(50)},
			profile: rules.BusinessProfile{Seats: 51},
			want:    false,
		},
		{
			name:    "seat cap boundary is inclusive",
			cond:    rules.Conditions{MaxSeats: intPtr(50)},
			profile: rules.BusinessProfile{Seats: 50},
			want:    true,
		},
		{
			name:    "area_gt boundary is strict",
			cond:    rules.Conditions{AreaGT: floatPtr(100)},
			profile: rules.BusinessProfile{Area: 100},
			want:    false,
		},
		{
			name:    "area_gt satisfied above boundary",
			cond:    rules.Conditions{AreaGT: floatPtr(100)},
			profile: rules.BusinessProfile{Area: 101},
			want:    true,
		},
		{
			name:    "area_lt boundary is strict",
			cond:    rules.Conditions{AreaLT: floatPtr(200)},
			profile: rules.BusinessProfile{Area: 200},
			want:    false,
		},
		{
			name:    "area_lt satisfied below boundary",
			cond:    rules.Conditions{AreaLT: floatPtr(200)},
			profile: rules.BusinessProfile{Area: 199.5},
			want:    true,
		},
		{
			name: "all constraints satisfied together",
			cond: rules.Conditions{
				ServesMeat:         true,
				DeliveriesRequired: true,
				MaxSeats:           intPtr(100),
				AreaGT:             floatPtr(50),
				AreaLT:             floatPtr(500),
			},
			profile: rules.BusinessProfile{Area: 120, Seats: 80, ServesMeat: true, Deliveries: true},
			want:    true,
		},
		{
			name:    "expression matches",
			cond:    rules.Conditions{Expression: `{">": [{"var": "seats"}, 10]}`},
			profile: rules.BusinessProfile{Seats: 20},
			want:    true,
		},
		{
			name:    "expression rejects",
			cond:    rules.Conditions{Expression: `{">": [{"var": "seats"}, 10]}`},
			profile: rules.BusinessProfile{Seats: 5},
			want:    false,
		},
		{
			name:    "broken expression is skipped, not a mismatch",
			cond:    rules.Conditions{Expression: `not json at all`},
			profile: rules.BusinessProfile{},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.cond, tt.profile); got != tt.want {
				t.Fatalf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
