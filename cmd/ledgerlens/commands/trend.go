package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ozgurk/ledgerlens/internal/timebucket"
)

// trendCmd represents the trend command
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Print the bucketed inflow/outflow series",
	Long: `Buckets transaction lines by day, week, month or year and
prints one inflow/outflow row per bucket, in chronological order.
Buckets with no activity are omitted.

Example:
  go run ./cmd/ledgerlens trend
  go run ./cmd/ledgerlens trend --granularity weekly
  go run ./cmd/ledgerlens trend --granularity daily --from 2026-06-01 --to 2026-06-30`,
	RunE: runTrend,
}

var (
	trendGranularity string
	trendFrom        string
	trendTo          string
)

func init() {
	rootCmd.AddCommand(trendCmd)

	trendCmd.Flags().StringVar(&trendGranularity, "granularity", "monthly", "bucket size: daily, weekly, monthly or yearly")
	trendCmd.Flags().StringVar(&trendFrom, "from", "", "start date (YYYY-MM-DD, inclusive)")
	trendCmd.Flags().StringVar(&trendTo, "to", "", "end date (YYYY-MM-DD, inclusive)")
}

func runTrend(cmd *cobra.Command, args []string) error {
	g, err := timebucket.Parse(trendGranularity)
	if err != nil {
		return err
	}

	e, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	tc, err := e.tenantContext()
	if err != nil {
		return err
	}
	dr, err := parseRange(trendFrom, trendTo)
	if err != nil {
		return err
	}

	points, err := e.svc.Trend(context.Background(), tc, g, dr)
	if err != nil {
		return fmt.Errorf("compute trend: %w", err)
	}

	fmt.Printf("=== Trend (%s) %s ===\n", g, tc.String())
	printRange(dr)
	fmt.Printf("%-12s %15s %15s %15s\n", "Bucket", "Inflow", "Outflow", "Net")
	for _, p := range points {
		net := p.Inflow.Sub(p.Outflow)
		fmt.Printf("%-12s %15s %15s %15s\n",
			p.BucketKey, p.Inflow.StringFixed(2), p.Outflow.StringFixed(2), net.StringFixed(2))
	}
	fmt.Printf("\nTotal: %d buckets\n", len(points))
	return nil
}
