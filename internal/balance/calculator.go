// Package balance computes signed running balances from raw
// transaction lines.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/ozgurk/ledgerlens/internal/ledger"
)

// Sum reduces a set of lines belonging to one account to its signed
// balance. Debit lines (sign 0) contribute positively, credit lines
// (sign 1) negatively; this polarity is pinned against reference
// balances from the source system. Cancelled lines contribute nothing
// and an empty input sums to zero.
//
// Sum is a pure reduction over its argument; it keeps no state across
// calls, so concurrent use for different accounts is safe.
func Sum(lines []ledger.TransactionLine) decimal.Decimal {
	total := decimal.Zero
	for _, ln := range lines {
		if ln.Cancelled {
			continue
		}
		total = total.Add(Contribution(ln))
	}
	return total
}

// Contribution returns the signed amount a single line adds to its
// account's balance.
func Contribution(ln ledger.TransactionLine) decimal.Decimal {
	if ln.Sign == ledger.SignCredit {
		return ln.Total.Neg()
	}
	return ln.Total
}

// ByAccount groups lines by counterparty account and reduces each
// group with Sum. Used for account listings where every balance is
// derived in one pass.
func ByAccount(lines []ledger.TransactionLine) map[int64]decimal.Decimal {
	balances := make(map[int64]decimal.Decimal)
	for _, ln := range lines {
		if ln.Cancelled {
			continue
		}
		balances[ln.AccountRef] = balances[ln.AccountRef].Add(Contribution(ln))
	}
	return balances
}
