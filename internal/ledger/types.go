// Package ledger defines the read-only projections of the backing
// store's partitioned ledger tables and the repository that fetches
// them. Nothing here mutates the store.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sign flag values as stored on a transaction line. The pinned
// convention, matched against reference balances from the source
// system: 0 is a debit and contributes positively to a balance,
// 1 is a credit and contributes negatively.
const (
	SignDebit  = 0
	SignCredit = 1
)

// TransactionLine is one immutable, signed ledger line. Monetary
// fields are decimals; summing thousands of lines in binary floating
// point would drift.
type TransactionLine struct {
	Date       time.Time
	TypeCode   int  // business event kind, see classify package
	Sign       int  // SignDebit or SignCredit
	LineType   int  // goods, service or discount line
	Amount     decimal.Decimal // stock quantity, zero for non-stock lines
	Total      decimal.Decimal // monetary value
	VAT        decimal.Decimal
	Cancelled  bool  // cancelled lines contribute to no aggregate
	AccountRef int64 // counterparty account id
	StockRef   int64 // product id, zero when no product is involved
}

// CardType distinguishes counterparty roles on the account master.
type CardType int

const (
	CardCustomer CardType = 1
	CardSupplier CardType = 2
	CardMixed    CardType = 3 // both customer and supplier
)

// IsCustomer reports whether the account can appear in customer
// rankings.
func (c CardType) IsCustomer() bool { return c == CardCustomer || c == CardMixed }

// IsSupplier reports whether the account can appear in supplier
// rankings.
func (c CardType) IsSupplier() bool { return c == CardSupplier || c == CardMixed }

// Account is a counterparty master record. Its balance is never
// stored; it is always recomputed from transaction lines.
type Account struct {
	ID       int64
	Code     string
	Name     string
	CardType CardType
}

// Product is a product master record. Stock level and sales figures
// are derived per request, never stored.
type Product struct {
	ID   int64
	Code string
	Name string
}

// DateRange bounds a query to [From, To] inclusive. A zero time on
// either side leaves that side unbounded; the zero DateRange selects
// the whole period partition.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether the range is unbounded on both sides.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// EndOfDay returns the last instant of t's calendar day in t's own
// location. Date-only range bounds go through this so a "to" date
// keeps the whole day's intraday lines inside the range.
func EndOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Nanosecond)
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}
