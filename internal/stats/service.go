// Package stats composes tenant resolution, classification, balances,
// time bucketing and ranking into the figures the transport layer
// serves. The engine is stateless: every call fetches fresh rows and
// recomputes, so concurrent requests need no coordination.
package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ozgurk/ledgerlens/internal/balance"
	"github.com/ozgurk/ledgerlens/internal/classify"
	"github.com/ozgurk/ledgerlens/internal/ledger"
	"github.com/ozgurk/ledgerlens/internal/rank"
	"github.com/ozgurk/ledgerlens/internal/tenant"
	"github.com/ozgurk/ledgerlens/internal/timebucket"
	"github.com/ozgurk/ledgerlens/pkg/logger"
)

// Source is the read-only view of the backing store the service
// aggregates over. *ledger.Repository implements it.
type Source interface {
	Lines(ctx context.Context, tc tenant.Context, dr ledger.DateRange) ([]ledger.TransactionLine, error)
	AccountLines(ctx context.Context, tc tenant.Context, accountID int64, dr ledger.DateRange) ([]ledger.TransactionLine, error)
	Accounts(ctx context.Context, tc tenant.Context) ([]ledger.Account, error)
	Products(ctx context.Context, tc tenant.Context) ([]ledger.Product, error)
}

// Service derives analytics from one firm/period partition per call.
type Service struct {
	src Source
	log *logger.Logger
}

// New creates a new stats service.
func New(src Source, log *logger.Logger) *Service {
	return &Service{src: src, log: log}
}

// classifiedLine carries a line together with its one and only
// classification.
type classifiedLine struct {
	ledger.TransactionLine
	classify.Result
}

// classifyAll drops cancelled lines and classifies every remaining
// line exactly once. Every aggregate in this package consumes the set
// produced here, so figures that must agree (a summary card and the
// trend series behind it) cannot drift apart through re-derived
// classification rules.
func (s *Service) classifyAll(tc tenant.Context, lines []ledger.TransactionLine) []classifiedLine {
	out := make([]classifiedLine, 0, len(lines))
	gaps := 0
	for _, ln := range lines {
		if ln.Cancelled {
			continue
		}
		res := classify.Classify(ln.TypeCode, ln.Sign, ln.LineType)
		if res.Category == classify.Unclassified {
			gaps++
		}
		out = append(out, classifiedLine{TransactionLine: ln, Result: res})
	}

	if gaps > 0 {
		// Classification gaps are not fatal: the lines stay in gross
		// totals and drop out of typed breakdowns.
		s.log.WithFields(map[string]interface{}{
			"tenant": tc.String(),
			"count":  gaps,
		}).Debug("Lines with unknown transaction type code")
	}
	return out
}

// typedContribution is the signed amount a sale or purchase line adds
// to its category total: regular lines add, reversal (return) lines
// subtract.
func typedContribution(ln classifiedLine) decimal.Decimal {
	if ln.Reversed {
		return ln.Total.Neg()
	}
	return ln.Total
}

// Balance returns the signed balance of one account: the sum of
// directional line contributions over all non-cancelled lines within
// the optional range. No lines found is balance zero, not an error.
func (s *Service) Balance(ctx context.Context, tc tenant.Context, accountID int64, dr ledger.DateRange) (decimal.Decimal, error) {
	lines, err := s.src.AccountLines(ctx, tc, accountID, dr)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Sum(lines), nil
}

// AccountBalances lists every account of the firm with its derived
// balance over the complete period partition.
func (s *Service) AccountBalances(ctx context.Context, tc tenant.Context) ([]AccountBalance, error) {
	accounts, err := s.src.Accounts(ctx, tc)
	if err != nil {
		return nil, err
	}
	lines, err := s.src.Lines(ctx, tc, ledger.DateRange{})
	if err != nil {
		return nil, err
	}

	balances := balance.ByAccount(lines)

	out := make([]AccountBalance, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, AccountBalance{
			Account: acc,
			Balance: balances[acc.ID], // zero value for accounts without lines
		})
	}
	return out, nil
}

// Trend returns the inflow/outflow series bucketed at the requested
// granularity, ordered chronologically. Lines without a money
// direction (transfers, unclassified codes) do not appear in either
// column.
func (s *Service) Trend(ctx context.Context, tc tenant.Context, g timebucket.Granularity, dr ledger.DateRange) ([]TrendPoint, error) {
	lines, err := s.src.Lines(ctx, tc, dr)
	if err != nil {
		return nil, err
	}

	points := make(map[string]*TrendPoint)
	for _, ln := range s.classifyAll(tc, lines) {
		if ln.Direction == classify.DirectionNone {
			continue
		}

		key := g.Key(ln.Date)
		pt, ok := points[key]
		if !ok {
			pt = &TrendPoint{BucketKey: key}
			points[key] = pt
		}

		switch ln.Direction {
		case classify.Inflow:
			pt.Inflow = pt.Inflow.Add(ln.Total)
		case classify.Outflow:
			pt.Outflow = pt.Outflow.Add(ln.Total)
		}
	}

	out := make([]TrendPoint, 0, len(points))
	for _, pt := range points {
		out = append(out, *pt)
	}
	// Bucket keys sort lexicographically into chronological order,
	// never by first-seen order.
	sort.Slice(out, func(i, j int) bool { return out[i].BucketKey < out[j].BucketKey })
	return out, nil
}

// TopN ranks customers, suppliers or products by turnover over the
// requested window. The ranking is computed over the same classified
// set as every other aggregate: a cancelled or unclassified line never
// ranks.
func (s *Service) TopN(ctx context.Context, tc tenant.Context, kind RankKind, n int, dr ledger.DateRange) ([]rank.Entry, error) {
	lines, err := s.src.Lines(ctx, tc, dr)
	if err != nil {
		return nil, err
	}
	classified := s.classifyAll(tc, lines)

	switch kind {
	case RankProducts:
		return s.topProducts(ctx, tc, classified, n)
	case RankSuppliers:
		return s.topAccounts(ctx, tc, classified, n, classify.Purchase)
	case RankCustomers:
		return s.topAccounts(ctx, tc, classified, n, classify.Sale)
	default:
		return nil, fmt.Errorf("unknown ranking kind %q", kind)
	}
}

func (s *Service) topAccounts(ctx context.Context, tc tenant.Context, classified []classifiedLine, n int, cat classify.Category) ([]rank.Entry, error) {
	accounts, err := s.src.Accounts(ctx, tc)
	if err != nil {
		return nil, err
	}

	masters := make(map[int64]ledger.Account, len(accounts))
	for _, acc := range accounts {
		masters[acc.ID] = acc
	}

	turnovers := make(map[int64]decimal.Decimal)
	unknown := 0
	for _, ln := range classified {
		if ln.Category != cat {
			continue
		}
		acc, ok := masters[ln.AccountRef]
		if !ok {
			unknown++
			continue
		}
		if cat == classify.Sale && !acc.CardType.IsCustomer() {
			continue
		}
		if cat == classify.Purchase && !acc.CardType.IsSupplier() {
			continue
		}
		turnovers[ln.AccountRef] = turnovers[ln.AccountRef].Add(typedContribution(ln))
	}

	if unknown > 0 {
		s.log.WithFields(map[string]interface{}{
			"tenant": tc.String(),
			"count":  unknown,
		}).Warn("Lines referencing accounts missing from the master table")
	}

	entries := make([]rank.Entry, 0, len(turnovers))
	for id, turnover := range turnovers {
		acc := masters[id]
		entries = append(entries, rank.Entry{
			EntityID: id,
			Code:     acc.Code,
			Name:     acc.Name,
			Turnover: turnover,
		})
	}
	return rank.TopN(entries, n), nil
}

func (s *Service) topProducts(ctx context.Context, tc tenant.Context, classified []classifiedLine, n int) ([]rank.Entry, error) {
	products, err := s.src.Products(ctx, tc)
	if err != nil {
		return nil, err
	}

	masters := make(map[int64]ledger.Product, len(products))
	for _, p := range products {
		masters[p.ID] = p
	}

	turnovers := make(map[int64]decimal.Decimal)
	for _, ln := range classified {
		if ln.Category != classify.Sale || ln.StockRef == 0 {
			continue
		}
		if _, ok := masters[ln.StockRef]; !ok {
			continue
		}
		turnovers[ln.StockRef] = turnovers[ln.StockRef].Add(typedContribution(ln))
	}

	entries := make([]rank.Entry, 0, len(turnovers))
	for id, turnover := range turnovers {
		p := masters[id]
		entries = append(entries, rank.Entry{
			EntityID: id,
			Code:     p.Code,
			Name:     p.Name,
			Turnover: turnover,
		})
	}
	return rank.TopN(entries, n), nil
}

// Summary returns the aggregate card for the tenant and range. Its
// typed totals are derived from the same classified set as Trend and
// TopN, so the card always agrees with the series next to it.
func (s *Service) Summary(ctx context.Context, tc tenant.Context, dr ledger.DateRange) (Summary, error) {
	lines, err := s.src.Lines(ctx, tc, dr)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, ln := range s.classifyAll(tc, lines) {
		sum.LineCount++
		sum.GrossTotal = sum.GrossTotal.Add(balance.Contribution(ln.TransactionLine))

		switch ln.Category {
		case classify.Sale:
			sum.SaleCount++
			sum.TotalSales = sum.TotalSales.Add(typedContribution(ln))
			sum.TotalVAT = sum.TotalVAT.Add(vatContribution(ln))
		case classify.Purchase:
			sum.PurchaseCount++
			sum.TotalPurchases = sum.TotalPurchases.Add(typedContribution(ln))
			sum.TotalVAT = sum.TotalVAT.Add(vatContribution(ln))
		case classify.PaymentIn:
			sum.PaymentInCount++
		case classify.PaymentOut:
			sum.PaymentOutCount++
		case classify.Unclassified:
			sum.UnclassifiedCount++
			sum.UnclassifiedTotal = sum.UnclassifiedTotal.Add(balance.Contribution(ln.TransactionLine))
		}
	}
	return sum, nil
}

func vatContribution(ln classifiedLine) decimal.Decimal {
	if ln.Reversed {
		return ln.VAT.Neg()
	}
	return ln.VAT
}

// StockLevels returns the derived stock view per product: net goods
// quantity plus sales quantity and amount over the window. Only goods
// lines move quantity; service and discount lines never do.
func (s *Service) StockLevels(ctx context.Context, tc tenant.Context, dr ledger.DateRange) ([]StockStat, error) {
	lines, err := s.src.Lines(ctx, tc, dr)
	if err != nil {
		return nil, err
	}
	products, err := s.src.Products(ctx, tc)
	if err != nil {
		return nil, err
	}

	stats := make(map[int64]*StockStat, len(products))
	for _, p := range products {
		stats[p.ID] = &StockStat{ProductID: p.ID, Code: p.Code, Name: p.Name}
	}

	for _, ln := range s.classifyAll(tc, lines) {
		if !ln.MovesStock || ln.StockRef == 0 {
			continue
		}
		st, ok := stats[ln.StockRef]
		if !ok {
			continue
		}

		qty := ln.Amount
		if ln.Reversed {
			qty = qty.Neg()
		}

		switch ln.Category {
		case classify.Sale:
			st.StockLevel = st.StockLevel.Sub(qty)
			st.SalesQuantity = st.SalesQuantity.Add(qty)
			st.SalesAmount = st.SalesAmount.Add(typedContribution(ln))
		case classify.Purchase:
			st.StockLevel = st.StockLevel.Add(qty)
		}
	}

	out := make([]StockStat, 0, len(stats))
	for _, st := range stats {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
