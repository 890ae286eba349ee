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

var (
	matchArea       float64
	matchSeats      int
	matchServesMeat bool
	matchDeliveries bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "List the rules that apply to a business profile",
	Long: `Evaluate a business profile against the server's rule set and print the
matched rules in priority order.

Examples:
  licomply match --area 120 --seats 40
  licomply match --area 80 --seats 20 --serves-meat --deliveries --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(baseURL, apiKey)

		res, err := c.Match(context.Background(), rules.BusinessProfile{
			Area:       matchArea,
			Seats:      matchSeats,
			ServesMeat: matchServesMeat,
			Deliveries: matchDeliveries,
		})
		if err != nil {
			return fmt.Errorf("match request failed: %w", err)
		}

		if len(res.Matched) == 0 {
			fmt.Println("No rules matched")
			return nil
		}
		return cli.PrintRules(res.Matched, cli.OutputFormat(format))
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compose an obligations report for a business profile",
	Long: `Request an obligations report for a business profile. When the server has
narrative generation enabled the report is free-form text, otherwise the
deterministic categorized rendering is returned.

Examples:
  licomply report --area 120 --seats 40 --serves-meat
  licomply report --area 55 --seats 12 --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(baseURL, apiKey)
		profile := rules.BusinessProfile{
			Area:       matchArea,
			Seats:      matchSeats,
			ServesMeat: matchServesMeat,
			Deliveries: matchDeliveries,
		}

		if cli.OutputFormat(format) == cli.FormatJSON {
			res, err := c.Report(context.Background(), profile)
			if err != nil {
				return fmt.Errorf("report request failed: %w", err)
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(res.Report)
		}

		res, err := c.GenerateReport(context.Background(), profile)
		if err != nil {
			return fmt.Errorf("report request failed: %w", err)
		}
		fmt.Println(res.Report)
		return nil
	},
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&matchArea, "area", 0, "Floor area in square meters")
	cmd.Flags().IntVar(&matchSeats, "seats", 0, "Seat count")
	cmd.Flags().BoolVar(&matchServesMeat, "serves-meat", false, "Business serves meat")
	cmd.Flags().BoolVar(&matchDeliveries, "deliveries", false, "Business makes deliveries")
}

func init() {
	addProfileFlags(matchCmd)
	addProfileFlags(reportCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(reportCmd)
}
