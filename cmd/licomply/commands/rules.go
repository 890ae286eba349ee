package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/licomply/licomply/internal/cli"
	"github.com/licomply/licomply/internal/client"
	"github.com/licomply/licomply/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and manage the loaded rule set",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all loaded rules",
	Long: `List every rule in the server's current snapshot.

Examples:
  licomply rules list
  licomply rules list --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(baseURL, apiKey)

		snap, err := c.Snapshot(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch snapshot: %w", err)
		}

		if len(snap.Rules) == 0 {
			fmt.Println("No rules loaded")
			return nil
		}
		return cli.PrintRules(snap.Rules, cli.OutputFormat(format))
	},
}

var rulesUpsertCmd = &cobra.Command{
	Use:   "upsert <rule.json>",
	Short: "Create or update a rule from a JSON file",
	Long: `Read a single rule definition from a JSON file and upsert it through the
admin API. Requires --api-key.

Example:
  licomply rules upsert fire-safety.json --api-key $ADMIN_API_KEY`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read rule file: %w", err)
		}

		var rule rules.Rule
		if err := json.Unmarshal(data, &rule); err != nil {
			return fmt.Errorf("failed to parse rule file: %w", err)
		}

		c := client.NewClient(baseURL, apiKey)
		if err := c.UpsertRule(context.Background(), rule); err != nil {
			return err
		}
		fmt.Printf("Rule %s upserted\n", rule.ID)
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesUpsertCmd)
	rootCmd.AddCommand(rulesCmd)
}
