// Package cli holds shared output helpers for the licomply command.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/licomply/licomply/internal/rules"
)

// OutputFormat specifies the output format for CLI commands.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// PrintRules outputs rules in the specified format.
func PrintRules(rs []rules.Rule, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(rs)
	case FormatYAML:
		return printYAML(rs)
	case FormatTable:
		return printTable(rs)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if rs, ok := data.([]rules.Rule); ok {
		return encoder.Encode(map[string][]rules.Rule{"rules": rs})
	}
	return encoder.Encode(data)
}

func printYAML(data any) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printTable(rs []rules.Rule) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Category", "Priority", "Conditions", "Obligation"})
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, r := range rs {
		table.Append([]string{
			r.ID,
			r.EffectiveCategory(),
			strconv.Itoa(r.EffectivePriority()),
			summarizeConditions(r.Conditions),
			truncate(r.Obligation, 60),
		})
	}
	table.Render()
	return nil
}

func summarizeConditions(c rules.Conditions) string {
	if c.AnyBusiness {
		return "any business"
	}
	out := ""
	add := func(s string) {
		if out != "" {
			out += ", "
		}
		out += s
	}
	if c.ServesMeat {
		add("serves meat")
	}
	if c.DeliveriesRequired {
		add("deliveries")
	}
	if c.MaxSeats != nil {
		add(fmt.Sprintf("seats<=%d", *c.MaxSeats))
	}
	if c.AreaGT != nil {
		add(fmt.Sprintf("area>%g", *c.AreaGT))
	}
	if c.AreaLT != nil {
		add(fmt.Sprintf("area<%g", *c.AreaLT))
	}
	if c.Expression != "" {
		add("expression")
	}
	if out == "" {
		return "-"
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
