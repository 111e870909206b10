package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// balanceCmd represents the balance command
var balanceCmd = &cobra.Command{
	Use:   "balance [accountID]",
	Short: "Print derived account balances",
	Long: `Derives account balances from the transaction lines. With an
account ID the balance of that single account is printed; without one,
every account of the tenant is listed with its balance.

Example:
  go run ./cmd/ledgerlens balance
  go run ./cmd/ledgerlens balance 1042
  go run ./cmd/ledgerlens balance 1042 --from 2026-01-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBalance,
}

var (
	balanceFrom string
	balanceTo   string
)

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().StringVar(&balanceFrom, "from", "", "start date (YYYY-MM-DD, inclusive)")
	balanceCmd.Flags().StringVar(&balanceTo, "to", "", "end date (YYYY-MM-DD, inclusive)")
}

func runBalance(cmd *cobra.Command, args []string) error {
	e, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	tc, err := e.tenantContext()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if len(args) == 1 {
		accountID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account ID %q: %w", args[0], err)
		}
		dr, err := parseRange(balanceFrom, balanceTo)
		if err != nil {
			return err
		}

		bal, err := e.svc.Balance(ctx, tc, accountID, dr)
		if err != nil {
			return fmt.Errorf("compute balance: %w", err)
		}

		fmt.Printf("=== Balance %s / account %d ===\n", tc.String(), accountID)
		printRange(dr)
		fmt.Printf("Balance: %s\n", bal.StringFixed(2))
		return nil
	}

	balances, err := e.svc.AccountBalances(ctx, tc)
	if err != nil {
		return fmt.Errorf("compute balances: %w", err)
	}

	fmt.Printf("=== Account Balances %s ===\n", tc.String())
	fmt.Printf("%-10s %-16s %-32s %15s\n", "ID", "Code", "Name", "Balance")
	for _, ab := range balances {
		fmt.Printf("%-10d %-16s %-32s %15s\n",
			ab.Account.ID, ab.Account.Code, ab.Account.Name, ab.Balance.StringFixed(2))
	}
	fmt.Printf("\nTotal: %d accounts\n", len(balances))
	return nil
}
