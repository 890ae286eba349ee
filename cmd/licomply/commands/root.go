package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	baseURL string
	apiKey  string
	format  string
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "licomply",
	Short: "CLI for the business-licensing obligations service",
	Long: `licomply is a command-line tool for querying the business-licensing service.

It evaluates business profiles against the loaded regulatory rule set and
prints matched rules or composed obligation reports.

Examples:
  licomply match --area 120 --seats 40 --serves-meat
  licomply report --area 120 --seats 40 --deliveries
  licomply rules list --format table`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "http://localhost:3000", "Base URL of the licensing API")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Admin API key (write operations)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
}
