package rules

import "encoding/json"

// DefaultCategory is the grouping label for rules that carry none.
const DefaultCategory = "כללי"

// DefaultPriority is the precedence assigned to rules without an explicit
// priority. Lower value means higher precedence.
const DefaultPriority = 99

// Conditions holds the optional applicability predicates of a rule.
// A nil field means "not a constraint". All present fields are combined with
// AND semantics except AnyBusiness, which short-circuits everything else.
type Conditions struct {
	// AnyBusiness makes the rule match every profile unconditionally.
	AnyBusiness bool `json:"any_business,omitempty"`

	// ServesMeat requires the profile's meat-service flag.
	ServesMeat bool `json:"serves_meat,omitempty"`

	// DeliveriesRequired requires the profile's delivery flag.
	DeliveriesRequired bool `json:"deliveries_required,omitempty"`

	// MaxSeats requires profile seats <= the given value (inclusive bound).
	MaxSeats *int `json:"max_seats_less_or_equal,omitempty"`

	// AreaGT requires profile area strictly greater than the given value.
	AreaGT *float64 `json:"area_gt,omitempty"`

	// AreaLT requires profile area strictly less than the given value.
	AreaLT *float64 `json:"area_lt,omitempty"`

	// Expression is an optional JSON Logic expression evaluated against the
	// profile. Empty means no constraint.
	Expression string `json:"expression,omitempty"`
}

// conditionsJSON mirrors Conditions plus the legacy aliases found in rule
// files produced by the extraction pipeline (servesMeat, deliveries).
// Aliases are resolved here, once at load time, so the evaluation path never
// has to check them.
type conditionsJSON struct {
	AnyBusiness        bool     `json:"any_business"`
	ServesMeat         bool     `json:"serves_meat"`
	ServesMeatAlias    bool     `json:"servesMeat"`
	DeliveriesRequired bool     `json:"deliveries_required"`
	DeliveriesAlias    bool     `json:"deliveries"`
	MaxSeats           *int     `json:"max_seats_less_or_equal"`
	AreaGT             *float64 `json:"area_gt"`
	AreaLT             *float64 `json:"area_lt"`
	Expression         string   `json:"expression"`
}

// UnmarshalJSON resolves field aliases and tolerates unrecognized fields.
func (c *Conditions) UnmarshalJSON(data []byte) error {
	var raw conditionsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Conditions{
		AnyBusiness:        raw.AnyBusiness,
		ServesMeat:         raw.ServesMeat || raw.ServesMeatAlias,
		DeliveriesRequired: raw.DeliveriesRequired || raw.DeliveriesAlias,
		MaxSeats:           raw.MaxSeats,
		AreaGT:             raw.AreaGT,
		AreaLT:             raw.AreaLT,
		Expression:         raw.Expression,
	}
	return nil
}

// Rule pairs applicability conditions with a categorized legal obligation.
// Title and Page come from the extraction pipeline and are carried through
// opaquely.
type Rule struct {
	ID         string     `json:"id,omitempty"`
	Title      string     `json:"title,omitempty"`
	Category   string     `json:"category,omitempty"`
	Page       int        `json:"page,omitempty"`
	Obligation string     `json:"obligation,omitempty"`
	Priority   *int       `json:"priority,omitempty"`
	Conditions Conditions `json:"conditions"`
}

// EffectivePriority returns the rule's priority, or DefaultPriority when the
// source rule carried none.
func (r Rule) EffectivePriority() int {
	if r.Priority == nil {
		return DefaultPriority
	}
	return *r.Priority
}

// EffectiveCategory returns the rule's category, or DefaultCategory when the
// source rule carried none.
func (r Rule) EffectiveCategory() string {
	if r.Category == "" {
		return DefaultCategory
	}
	return r.Category
}

// Document is the on-disk rule file layout.
type Document struct {
	SourceFile string `json:"source_file,omitempty"`
	Rules      []Rule `json:"rules_found"`
}
