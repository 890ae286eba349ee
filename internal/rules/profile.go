package rules

import (
	"encoding/json"
	"strconv"
	"strings"
)

// BusinessProfile is the strongly-typed, already-coerced description of a
// business used for rule matching.
type BusinessProfile struct {
	Area       float64 `json:"area"`
	Seats      int     `json:"seats"`
	ServesMeat bool    `json:"serves_meat"`
	Deliveries bool    `json:"deliveries"`
}

// ProfileInput is the duck-typed request body as clients actually send it:
// numbers may arrive as strings, booleans as anything truthy. All the
// leniency policy lives in Coerce so it stays one reviewable unit.
type ProfileInput struct {
	Area       any `json:"area"`
	Seats      any `json:"seats"`
	ServesMeat any `json:"serves_meat"`
	Deliveries any `json:"deliveries"`
}

// Coerce converts the raw input into a BusinessProfile. Missing or invalid
// numeric fields become 0, booleans follow JavaScript-like truthiness.
// Coerce never fails; leniency here is a compatibility requirement, not an
// accident.
func (in ProfileInput) Coerce() BusinessProfile {
	area := toNumber(in.Area)
	if area < 0 {
		area = 0
	}
	seats := int(toNumber(in.Seats))
	if seats < 0 {
		seats = 0
	}
	return BusinessProfile{
		Area:       area,
		Seats:      seats,
		ServesMeat: isTruthy(in.ServesMeat),
		Deliveries: isTruthy(in.Deliveries),
	}
}

// ContextMap exposes the profile as a generic map for expression evaluation.
func (p BusinessProfile) ContextMap() map[string]any {
	return map[string]any{
		"area":        p.Area,
		"seats":       p.Seats,
		"serves_meat": p.ServesMeat,
		"deliveries":  p.Deliveries,
	}
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// isTruthy follows JavaScript-like truthiness rules: non-zero numbers,
// non-empty strings (except "false" and "0"), and true booleans count.
func isTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		s := strings.TrimSpace(strings.ToLower(val))
		return s != "" && s != "false" && s != "0"
	case float64, float32, int, int32, int64, json.Number:
		return toNumber(v) != 0
	default:
		return false
	}
}
