package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ozgurk/ledgerlens/internal/ledger"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the sales/purchases/VAT summary card",
	Long: `Computes the aggregate summary for one tenant over an optional
date range and prints it as a table.

Example:
  go run ./cmd/ledgerlens summary
  go run ./cmd/ledgerlens summary --firm 113 --period 1
  go run ./cmd/ledgerlens summary --from 2026-01-01 --to 2026-06-30`,
	RunE: runSummary,
}

var (
	summaryFrom string
	summaryTo   string
)

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVar(&summaryFrom, "from", "", "start date (YYYY-MM-DD, inclusive)")
	summaryCmd.Flags().StringVar(&summaryTo, "to", "", "end date (YYYY-MM-DD, inclusive)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	e, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	tc, err := e.tenantContext()
	if err != nil {
		return err
	}
	dr, err := parseRange(summaryFrom, summaryTo)
	if err != nil {
		return err
	}

	summary, err := e.svc.Summary(context.Background(), tc, dr)
	if err != nil {
		return fmt.Errorf("compute summary: %w", err)
	}

	fmt.Printf("=== Summary %s ===\n", tc.String())
	printRange(dr)
	fmt.Printf("%-18s %15s\n", "Total Sales", summary.TotalSales.StringFixed(2))
	fmt.Printf("%-18s %15s\n", "Total Purchases", summary.TotalPurchases.StringFixed(2))
	fmt.Printf("%-18s %15s\n", "Total VAT", summary.TotalVAT.StringFixed(2))
	fmt.Printf("%-18s %15s\n", "Gross Total", summary.GrossTotal.StringFixed(2))
	fmt.Println()
	fmt.Printf("%-18s %15d\n", "Sales", summary.SaleCount)
	fmt.Printf("%-18s %15d\n", "Purchases", summary.PurchaseCount)
	fmt.Printf("%-18s %15d\n", "Payments In", summary.PaymentInCount)
	fmt.Printf("%-18s %15d\n", "Payments Out", summary.PaymentOutCount)
	fmt.Printf("%-18s %15d\n", "Lines", summary.LineCount)
	if summary.UnclassifiedCount > 0 {
		fmt.Printf("%-18s %15d (total %s)\n", "Unclassified",
			summary.UnclassifiedCount, summary.UnclassifiedTotal.StringFixed(2))
	}
	return nil
}

// printRange prints the active date range, if any.
func printRange(dr ledger.DateRange) {
	if dr.IsZero() {
		return
	}
	from, to := "(open)", "(open)"
	if !dr.From.IsZero() {
		from = dr.From.Format("2006-01-02")
	}
	if !dr.To.IsZero() {
		to = dr.To.Format("2006-01-02")
	}
	fmt.Printf("Range: %s .. %s\n", from, to)
}
