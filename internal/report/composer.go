// Package report turns matched licensing rules into a categorized
// obligations report.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/licomply/licomply/internal/rules"
)

// ReportTitle is the first header line of every composed report.
const ReportTitle = "דו\"ח דרישות רישוי לעסק"

// Characteristic labels shown in the report header.
const (
	labelServesMeat = "הגשת בשר"
	labelDeliveries = "משלוחים"
)

// Category is one named section of a report with its obligations in rule
// order.
type Category struct {
	Name        string   `json:"name"`
	Obligations []string `json:"obligations"`
}

// Report is the structured, machine-consumable composition result. Categories
// is a slice rather than a map so the first-seen category order survives
// serialization.
type Report struct {
	Header     string     `json:"header"`
	Categories []Category `json:"categories"`
}

// Compose builds a report from the matcher's output. Matched rules are
// expected in priority-sorted order; the report's category order is the order
// of each category's first matching rule in that sequence.
//
// A matched rule without obligation text still establishes its category but
// contributes no line. That quirk is load-bearing for output parity with the
// original rule files and is pinned by tests.
func Compose(profile rules.BusinessProfile, matched []rules.Rule) Report {
	rep := Report{Header: composeHeader(profile)}

	index := make(map[string]int, len(matched))
	for _, r := range matched {
		cat := r.EffectiveCategory()
		i, ok := index[cat]
		if !ok {
			i = len(rep.Categories)
			index[cat] = i
			rep.Categories = append(rep.Categories, Category{Name: cat})
		}
		if r.Obligation != "" {
			rep.Categories[i].Obligations = append(rep.Categories[i].Obligations, Normalize(r.Obligation))
		}
	}
	return rep
}

func composeHeader(profile rules.BusinessProfile) string {
	var characteristics []string
	if profile.ServesMeat {
		characteristics = append(characteristics, labelServesMeat)
	}
	if profile.Deliveries {
		characteristics = append(characteristics, labelDeliveries)
	}

	line := fmt.Sprintf("שטח: %s מ\"ר, מספר מושבים: %s", formatNumber(profile.Area), formatCount(profile.Seats))
	if len(characteristics) > 0 {
		line += ", " + strings.Join(characteristics, ", ")
	}
	return ReportTitle + "\n" + line
}

// Render flattens the report into display text: the header, then each
// category as a name line followed by a numbered obligation list, with a
// blank separator line after every category block.
func (r Report) Render() string {
	var b strings.Builder
	b.WriteString(r.Header)
	b.WriteString("\n\n")
	for _, cat := range r.Categories {
		b.WriteString(cat.Name)
		b.WriteString(":\n")
		for i, obligation := range cat.Obligations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, obligation)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Zero values render as "-" in the header, same as the original report.
func formatNumber(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCount(v int) string {
	if v == 0 {
		return "-"
	}
	return strconv.Itoa(v)
}
