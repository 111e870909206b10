package timebucket

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, s := range []string{"daily", "weekly", "monthly", "yearly"} {
		g, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, Granularity(s), g)
	}

	_, err := Parse("hourly")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	ts := time.Date(2026, 3, 9, 14, 30, 0, 0, time.Local)

	tests := []struct {
		granularity Granularity
		want        string
	}{
		{Daily, "2026-03-09"},
		{Weekly, "2026-W11"},
		{Monthly, "2026-03"},
		{Yearly, "2026"},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.granularity.Key(ts))
		})
	}
}

// Days of a week straddling the year boundary must share one weekly
// bucket, attributed to the ISO week-year.
func TestKeyWeeklyYearBoundary(t *testing.T) {
	// 2026-01-01 is a Thursday: ISO week 1 of 2026 starts Monday
	// 2025-12-29.
	dec29 := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)
	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W01", Weekly.Key(dec29))
	assert.Equal(t, Weekly.Key(dec29), Weekly.Key(jan1))

	// 2027-01-01 is a Friday, still ISO week 53 of 2026.
	jan1Next := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W53", Weekly.Key(jan1Next))
}

// A date without a time-of-day component is midnight in its own zone
// and buckets like any other instant of that day.
func TestKeyMidnight(t *testing.T) {
	midnight := time.Date(2026, 7, 15, 0, 0, 0, 0, time.Local)
	noon := time.Date(2026, 7, 15, 12, 0, 0, 0, time.Local)

	for _, g := range []Granularity{Daily, Weekly, Monthly, Yearly} {
		assert.Equal(t, g.Key(noon), g.Key(midnight), "granularity %s", g)
	}
}

// For 10k random timestamps within one year: every timestamp maps to
// exactly one key per granularity, and the union of all buckets equals
// the original set.
func TestKeyTotalityAndDisjointness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	yearSeconds := int64(365 * 24 * 60 * 60)

	timestamps := make([]time.Time, 10000)
	for i := range timestamps {
		timestamps[i] = start.Add(time.Duration(rng.Int63n(yearSeconds)) * time.Second)
	}

	for _, g := range []Granularity{Daily, Weekly, Monthly, Yearly} {
		buckets := make(map[string]int)
		for _, ts := range timestamps {
			key := g.Key(ts)
			require.NotEmpty(t, key, "granularity %s produced an empty key", g)

			// The key is a pure function of the timestamp: re-keying
			// must land in the same bucket.
			require.Equal(t, key, g.Key(ts))
			buckets[key]++
		}

		total := 0
		for _, n := range buckets {
			total += n
		}
		assert.Equal(t, len(timestamps), total, "granularity %s lost or duplicated lines", g)
	}
}

// Lexicographic order of keys equals chronological order of buckets.
func TestKeyOrdering(t *testing.T) {
	timestamps := []time.Time{
		time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC),
	}

	for _, g := range []Granularity{Daily, Weekly, Monthly, Yearly} {
		var keys []string
		seen := map[string]bool{}
		for _, ts := range timestamps {
			key := g.Key(ts)
			if !seen[key] {
				keys = append(keys, key)
				seen[key] = true
			}
		}
		assert.True(t, sort.StringsAreSorted(keys),
			"granularity %s keys out of order: %v", g, keys)
	}
}
