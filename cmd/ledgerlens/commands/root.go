package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	firmNo   string
	periodNo string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ledgerlens",
	Short: "Financial and inventory analytics over a partitioned ledger store",
	Long: `ledgerlens derives balances, trends, rankings and stock figures
from the firm/period partitioned ledger tables of an external
accounting backend. The store is read-only to this tool; every figure
is recomputed from source rows on each request.

Usage:
  go run ./cmd/ledgerlens [command]

Examples:
  go run ./cmd/ledgerlens api
  go run ./cmd/ledgerlens summary --firm 113 --period 1
  go run ./cmd/ledgerlens top customers --n 10`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags: partition selection, falling back to the
	// configured defaults when unset.
	rootCmd.PersistentFlags().StringVar(&firmNo, "firm", "", "firm number (default from LEDGER_FIRM_NO)")
	rootCmd.PersistentFlags().StringVar(&periodNo, "period", "", "period number (default from LEDGER_PERIOD_NO)")
}
