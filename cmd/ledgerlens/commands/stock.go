package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// stockCmd represents the stock command
var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Print derived per-product stock figures",
	Long: `Derives stock levels and sales figures per product from goods
movement lines. Only goods lines move stock; service and discount
lines contribute money but never quantity.

Example:
  go run ./cmd/ledgerlens stock
  go run ./cmd/ledgerlens stock --from 2026-01-01 --to 2026-06-30`,
	RunE: runStock,
}

var (
	stockFrom string
	stockTo   string
)

func init() {
	rootCmd.AddCommand(stockCmd)

	stockCmd.Flags().StringVar(&stockFrom, "from", "", "start date (YYYY-MM-DD, inclusive)")
	stockCmd.Flags().StringVar(&stockTo, "to", "", "end date (YYYY-MM-DD, inclusive)")
}

func runStock(cmd *cobra.Command, args []string) error {
	e, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	tc, err := e.tenantContext()
	if err != nil {
		return err
	}
	dr, err := parseRange(stockFrom, stockTo)
	if err != nil {
		return err
	}

	levels, err := e.svc.StockLevels(context.Background(), tc, dr)
	if err != nil {
		return fmt.Errorf("compute stock levels: %w", err)
	}

	fmt.Printf("=== Stock %s ===\n", tc.String())
	printRange(dr)
	fmt.Printf("%-16s %-32s %12s %12s %15s\n", "Code", "Name", "Level", "Sold Qty", "Sales")
	for _, st := range levels {
		fmt.Printf("%-16s %-32s %12s %12s %15s\n",
			st.Code, st.Name,
			st.StockLevel.StringFixed(2),
			st.SalesQuantity.StringFixed(2),
			st.SalesAmount.StringFixed(2))
	}
	fmt.Printf("\nTotal: %d products\n", len(levels))
	return nil
}
