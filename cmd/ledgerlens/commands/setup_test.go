package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	dr, err := parseRange("2026-01-01", "2026-01-31")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local), dr.From)
	// The to flag is inclusive: lines later that day stay in range.
	assert.True(t, dr.Contains(time.Date(2026, 1, 31, 14, 0, 0, 0, time.Local)))
	assert.False(t, dr.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)))
}

func TestParseRangeOpenEnds(t *testing.T) {
	dr, err := parseRange("", "")
	require.NoError(t, err)
	assert.True(t, dr.IsZero())

	dr, err = parseRange("2026-06-01", "")
	require.NoError(t, err)
	assert.True(t, dr.To.IsZero())
	assert.True(t, dr.Contains(time.Date(2027, 1, 1, 0, 0, 0, 0, time.Local)))
}

func TestParseRangeInvalid(t *testing.T) {
	_, err := parseRange("January 5", "")
	assert.Error(t, err)

	_, err = parseRange("", "2026-13-40")
	assert.Error(t, err)
}
