package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ozgurk/ledgerlens/internal/stats"
)

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:   "top [customers|suppliers|products]",
	Short: "Print a top-N turnover ranking",
	Long: `Ranks customers, suppliers or products by turnover over an
optional date range. Ties are broken by entity code, so repeated runs
over the same data print the same order.

Example:
  go run ./cmd/ledgerlens top customers
  go run ./cmd/ledgerlens top products --n 10
  go run ./cmd/ledgerlens top suppliers --from 2026-01-01 --to 2026-03-31`,
	Args: cobra.ExactArgs(1),
	RunE: runTop,
}

var (
	topN    int
	topFrom string
	topTo   string
)

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().IntVar(&topN, "n", 5, "number of entries to print")
	topCmd.Flags().StringVar(&topFrom, "from", "", "start date (YYYY-MM-DD, inclusive)")
	topCmd.Flags().StringVar(&topTo, "to", "", "end date (YYYY-MM-DD, inclusive)")
}

func runTop(cmd *cobra.Command, args []string) error {
	kind, err := stats.ParseRankKind(args[0])
	if err != nil {
		return err
	}
	if topN < 1 {
		return fmt.Errorf("--n must be a positive integer, got %d", topN)
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
	dr, err := parseRange(topFrom, topTo)
	if err != nil {
		return err
	}

	entries, err := e.svc.TopN(context.Background(), tc, kind, topN, dr)
	if err != nil {
		return fmt.Errorf("compute ranking: %w", err)
	}

	fmt.Printf("=== Top %d %s %s ===\n", topN, kind, tc.String())
	printRange(dr)
	fmt.Printf("%-4s %-16s %-32s %15s\n", "#", "Code", "Name", "Turnover")
	for i, entry := range entries {
		fmt.Printf("%-4d %-16s %-32s %15s\n",
			i+1, entry.Code, entry.Name, entry.Turnover.StringFixed(2))
	}
	if len(entries) < topN {
		fmt.Printf("\n(only %d entities had turnover in this window)\n", len(entries))
	}
	return nil
}
