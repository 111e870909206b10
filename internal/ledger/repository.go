package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ozgurk/ledgerlens/internal/tenant"
)

// Repository reads ledger projections from the partitioned tables of
// one backing store. It holds no per-request state; all partition
// selection comes in through the tenant context.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new ledger repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// lineColumns is the projection shared by every line fetch. Numeric
// columns come back as text and are parsed into decimals; scanning
// them through float64 would lose precision.
const lineColumns = `
	date_,
	trcode,
	sign,
	linetype,
	COALESCE(amount::text, '0'),
	COALESCE(total::text, '0'),
	COALESCE(vat::text, '0'),
	cancelled,
	clientref,
	COALESCE(stockref, 0)`

// linesQuery builds the parameterized line fetch for one partition.
// This is the only place line SQL is assembled: the table name comes
// from the tenant context (validated digits and prefix) and every
// filter value is a bind parameter.
func linesQuery(tc tenant.Context, accountID int64, dr DateRange) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	table := pgx.Identifier{tc.Table(tenant.KindLines)}.Sanitize()
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE cancelled = FALSE", lineColumns, table)

	if accountID != 0 {
		args = append(args, accountID)
		fmt.Fprintf(&sb, " AND clientref = $%d", len(args))
	}
	if !dr.From.IsZero() {
		args = append(args, dr.From)
		fmt.Fprintf(&sb, " AND date_ >= $%d", len(args))
	}
	if !dr.To.IsZero() {
		args = append(args, dr.To)
		fmt.Fprintf(&sb, " AND date_ <= $%d", len(args))
	}

	sb.WriteString(" ORDER BY date_ ASC")
	return sb.String(), args
}

// Lines fetches all non-cancelled transaction lines of the partition
// within the optional date range. No rows is a valid empty result.
func (r *Repository) Lines(ctx context.Context, tc tenant.Context, dr DateRange) ([]TransactionLine, error) {
	query, args := linesQuery(tc, 0, dr)
	return r.fetchLines(ctx, query, args)
}

// AccountLines fetches the non-cancelled lines of a single account.
func (r *Repository) AccountLines(ctx context.Context, tc tenant.Context, accountID int64, dr DateRange) ([]TransactionLine, error) {
	query, args := linesQuery(tc, accountID, dr)
	return r.fetchLines(ctx, query, args)
}

func (r *Repository) fetchLines(ctx context.Context, query string, args []interface{}) ([]TransactionLine, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, upstream("lines", err)
	}
	defer rows.Close()

	var lines []TransactionLine
	for rows.Next() {
		var (
			ln                      TransactionLine
			amountStr, totalStr, vatStr string
		)
		if err := rows.Scan(
			&ln.Date, &ln.TypeCode, &ln.Sign, &ln.LineType,
			&amountStr, &totalStr, &vatStr,
			&ln.Cancelled, &ln.AccountRef, &ln.StockRef,
		); err != nil {
			return nil, upstream("lines", err)
		}

		if ln.Amount, err = parseDecimal("amount", amountStr); err != nil {
			return nil, err
		}
		if ln.Total, err = parseDecimal("total", totalStr); err != nil {
			return nil, err
		}
		if ln.VAT, err = parseDecimal("vat", vatStr); err != nil {
			return nil, err
		}

		lines = append(lines, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("lines", err)
	}
	return lines, nil
}

func parseDecimal(column, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, upstream("lines", fmt.Errorf("malformed %s value %q: %w", column, s, err))
	}
	return d, nil
}

// Accounts fetches the firm's counterparty master records.
func (r *Repository) Accounts(ctx context.Context, tc tenant.Context) ([]Account, error) {
	table := pgx.Identifier{tc.Table(tenant.KindAccounts)}.Sanitize()
	query := fmt.Sprintf(`
		SELECT logicalref, code, definition_, cardtype
		FROM %s
		ORDER BY code ASC
	`, table)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, upstream("accounts", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		var cardType int
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &cardType); err != nil {
			return nil, upstream("accounts", err)
		}
		a.CardType = CardType(cardType)
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("accounts", err)
	}
	return accounts, nil
}

// Products fetches the firm's product master records.
func (r *Repository) Products(ctx context.Context, tc tenant.Context) ([]Product, error) {
	table := pgx.Identifier{tc.Table(tenant.KindProducts)}.Sanitize()
	query := fmt.Sprintf(`
		SELECT logicalref, code, definition_
		FROM %s
		ORDER BY code ASC
	`, table)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, upstream("products", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name); err != nil {
			return nil, upstream("products", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("products", err)
	}
	return products, nil
}
