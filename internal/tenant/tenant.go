// Package tenant resolves a firm/period selection into the physical
// table names of that partition in the backing store.
//
// The store keeps each company ("firm") and fiscal period in its own
// table group named <prefix>_<firmNo>[_<periodNo>]_<entityKind>.
// Transaction lines are split per period; account and product masters
// exist once per firm.
package tenant

import (
	"fmt"
	"strconv"
	"strings"
)

// EntityKind identifies one table within a firm/period partition.
type EntityKind string

const (
	// KindLines is the per-period transaction line table.
	KindLines EntityKind = "STLINE"
	// KindAccounts is the firm-wide counterparty master table.
	KindAccounts EntityKind = "CLCARD"
	// KindProducts is the firm-wide product master table.
	KindProducts EntityKind = "ITEMS"
)

// periodScoped reports whether the kind lives in a per-period table.
func (k EntityKind) periodScoped() bool {
	return k == KindLines
}

// Context identifies one firm/period partition. All aggregation within
// one request targets exactly one Context; cross-partition queries are
// never built.
type Context struct {
	FirmNo   string
	PeriodNo string // zero-padded to two digits
	prefix   string
}

// InvalidTenantError reports a firm/period selection that cannot name
// a partition. It is surfaced to the caller immediately, never retried.
type InvalidTenantError struct {
	FirmNo   string
	PeriodNo string
	Reason   string
}

func (e *InvalidTenantError) Error() string {
	return fmt.Sprintf("invalid tenant firm=%q period=%q: %s", e.FirmNo, e.PeriodNo, e.Reason)
}

// Resolve validates the firm and period numbers and returns the
// partition context. Resolution is pure formatting: whether the tables
// actually exist is not checked here, a missing partition surfaces
// later as a query error.
func Resolve(prefix, firmNo, periodNo string) (Context, error) {
	firmNo = strings.TrimSpace(firmNo)
	periodNo = strings.TrimSpace(periodNo)

	if prefix == "" {
		return Context{}, &InvalidTenantError{FirmNo: firmNo, PeriodNo: periodNo, Reason: "empty table prefix"}
	}
	if firmNo == "" {
		return Context{}, &InvalidTenantError{FirmNo: firmNo, PeriodNo: periodNo, Reason: "firm number is required"}
	}
	if periodNo == "" {
		return Context{}, &InvalidTenantError{FirmNo: firmNo, PeriodNo: periodNo, Reason: "period number is required"}
	}

	firm, err := strconv.Atoi(firmNo)
	if err != nil || firm <= 0 {
		return Context{}, &InvalidTenantError{FirmNo: firmNo, PeriodNo: periodNo, Reason: "firm number must be a positive integer"}
	}

	period, err := strconv.Atoi(periodNo)
	if err != nil || period <= 0 || period > 99 {
		return Context{}, &InvalidTenantError{FirmNo: firmNo, PeriodNo: periodNo, Reason: "period number must be between 1 and 99"}
	}

	return Context{
		FirmNo:   strconv.Itoa(firm),
		// The store names period tables with a fixed-width number:
		// period 1 lives in ..._01_... tables.
		PeriodNo: fmt.Sprintf("%02d", period),
		prefix:   prefix,
	}, nil
}

// Table builds the physical table name for one entity kind within this
// partition. Every query against the store goes through this method so
// the naming convention lives in exactly one place. Inputs are already
// validated to digits (firm, period) and alphanumerics (prefix), which
// keeps the generated identifier injection-safe.
func (c Context) Table(kind EntityKind) string {
	if kind.periodScoped() {
		return fmt.Sprintf("%s_%s_%s_%s", c.prefix, c.FirmNo, c.PeriodNo, kind)
	}
	return fmt.Sprintf("%s_%s_%s", c.prefix, c.FirmNo, kind)
}

// String implements fmt.Stringer for log fields.
func (c Context) String() string {
	return c.FirmNo + "/" + c.PeriodNo
}
