// Package rank produces stable top-N rankings over turnover figures.
package rank

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Entry pairs a ranked entity with its aggregated turnover. The input
// is expected to be already filtered and classified; this package only
// orders and truncates.
type Entry struct {
	EntityID int64           `json:"entity_id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Turnover decimal.Decimal `json:"turnover"`
}

// TopN returns the n largest entries by turnover, descending. Equal
// turnovers order by entity code ascending so repeated calls rank
// identically. Fewer than n entities returns all of them; an empty
// input returns an empty ranking, and n below zero clamps to zero.
// The input slice is not modified.
func TopN(entries []Entry, n int) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Turnover.Cmp(out[j].Turnover); cmp != 0 {
			return cmp > 0
		}
		return out[i].Code < out[j].Code
	})

	if n < 0 {
		n = 0
	}
	if n < len(out) {
		out = out[:n]
	}
	return out
}
