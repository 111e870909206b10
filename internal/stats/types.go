package stats

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ozgurk/ledgerlens/internal/ledger"
)

// RankKind selects what a top-N ranking is computed over.
type RankKind string

const (
	RankCustomers RankKind = "customers"
	RankSuppliers RankKind = "suppliers"
	RankProducts  RankKind = "products"
)

// ParseRankKind validates a ranking kind string from a request.
func ParseRankKind(s string) (RankKind, error) {
	switch RankKind(s) {
	case RankCustomers, RankSuppliers, RankProducts:
		return RankKind(s), nil
	default:
		return "", fmt.Errorf("unknown ranking kind %q (want customers, suppliers or products)", s)
	}
}

// TrendPoint is one time bucket of the inflow/outflow series. Points
// are returned sorted by bucket key, which is chronological order.
type TrendPoint struct {
	BucketKey string          `json:"bucket"`
	Inflow    decimal.Decimal `json:"inflow"`
	Outflow   decimal.Decimal `json:"outflow"`
}

// Summary is the aggregate card for one tenant and date range. Typed
// totals cover classified lines only; GrossTotal includes lines whose
// type code is outside the classification table, which are otherwise
// reported through the Unclassified counters.
type Summary struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	TotalVAT       decimal.Decimal `json:"total_vat"`
	GrossTotal     decimal.Decimal `json:"gross_total"`

	SaleCount         int             `json:"sale_count"`
	PurchaseCount     int             `json:"purchase_count"`
	PaymentInCount    int             `json:"payment_in_count"`
	PaymentOutCount   int             `json:"payment_out_count"`
	LineCount         int             `json:"line_count"`
	UnclassifiedCount int             `json:"unclassified_count"`
	UnclassifiedTotal decimal.Decimal `json:"unclassified_total"`
}

// AccountBalance pairs an account master record with its derived
// balance.
type AccountBalance struct {
	Account ledger.Account  `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

// StockStat is the derived stock view of one product over the
// requested window.
type StockStat struct {
	ProductID     int64           `json:"product_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	StockLevel    decimal.Decimal `json:"stock_level"`
	SalesQuantity decimal.Decimal `json:"sales_quantity"`
	SalesAmount   decimal.Decimal `json:"sales_amount"`
}
