// Package timebucket maps timestamps to grouping keys for one of four
// granularities. Keys are strings whose lexicographic order is their
// chronological order, so callers can sort buckets without parsing
// them back.
package timebucket

import (
	"fmt"
	"time"
)

// Granularity selects the bucket width.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// Parse validates a granularity string from a request.
func Parse(s string) (Granularity, error) {
	switch Granularity(s) {
	case Daily, Weekly, Monthly, Yearly:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("unknown granularity %q (want daily, weekly, monthly or yearly)", s)
	}
}

// Key maps t to its bucket key for the granularity. Every timestamp
// maps to exactly one key per granularity and distinct periods never
// share a key. The timestamp's own location is authoritative; no zone
// conversion is performed, and a date without a time-of-day component
// is simply midnight in that location.
//
// Weekly keys pair the ISO week number with the ISO week-year rather
// than the calendar year, so the days of a year-boundary week all land
// in the same bucket instead of splitting across two.
func (g Granularity) Key(t time.Time) string {
	switch g {
	case Daily:
		return t.Format("2006-01-02")
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Monthly:
		return t.Format("2006-01")
	case Yearly:
		return t.Format("2006")
	default:
		return ""
	}
}
