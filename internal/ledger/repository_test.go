package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgurk/ledgerlens/internal/tenant"
)

func TestLinesQuery(t *testing.T) {
	tc, err := tenant.Resolve("LG", "113", "1")
	require.NoError(t, err)

	t.Run("unfiltered", func(t *testing.T) {
		query, args := linesQuery(tc, 0, DateRange{})

		assert.Contains(t, query, `"LG_113_01_STLINE"`)
		assert.Contains(t, query, "cancelled = FALSE")
		assert.Contains(t, query, "ORDER BY date_ ASC")
		assert.NotContains(t, query, "clientref =")
		assert.Empty(t, args)
	})

	t.Run("account filter", func(t *testing.T) {
		query, args := linesQuery(tc, 42, DateRange{})

		assert.Contains(t, query, "clientref = $1")
		require.Len(t, args, 1)
		assert.Equal(t, int64(42), args[0])
	})

	t.Run("date range", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
		query, args := linesQuery(tc, 0, DateRange{From: from, To: to})

		assert.Contains(t, query, "date_ >= $1")
		assert.Contains(t, query, "date_ <= $2")
		require.Len(t, args, 2)
		assert.Equal(t, from, args[0])
		assert.Equal(t, to, args[1])
	})

	t.Run("account and range share parameter numbering", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		query, args := linesQuery(tc, 7, DateRange{From: from})

		assert.Contains(t, query, "clientref = $1")
		assert.Contains(t, query, "date_ >= $2")
		assert.Len(t, args, 2)
	})
}

func TestDateRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC) }

	assert.True(t, DateRange{}.IsZero())
	assert.True(t, DateRange{}.Contains(day(1)))

	r := DateRange{From: day(10), To: day(20)}
	assert.False(t, r.IsZero())
	assert.False(t, r.Contains(day(9)))
	assert.True(t, r.Contains(day(10)))
	assert.True(t, r.Contains(day(20)))
	assert.False(t, r.Contains(day(21)))

	open := DateRange{From: day(10)}
	assert.True(t, open.Contains(day(25)))
	assert.False(t, open.Contains(day(5)))
}

// A range whose To bound went through EndOfDay keeps every intraday
// instant of the to-date and still excludes the next day.
func TestDateRangeEndOfDay(t *testing.T) {
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	r := DateRange{To: EndOfDay(to)}

	assert.True(t, r.Contains(time.Date(2026, 1, 31, 14, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestUpstreamQueryError(t *testing.T) {
	inner := assert.AnError
	err := upstream("lines", inner)

	var upstreamErr *UpstreamQueryError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "lines", upstreamErr.Op)
	assert.ErrorIs(t, err, inner)
}
