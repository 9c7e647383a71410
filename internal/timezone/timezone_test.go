package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer("Asia/Dubai")
	require.NoError(t, err)
	return n
}

func TestNewNormalizerInvalid(t *testing.T) {
	_, err := NewNormalizer("Not/AZone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not/AZone")
}

func TestNormalizePreservesInstant(t *testing.T) {
	n := newTestNormalizer(t)

	utc := time.Date(2025, 4, 23, 6, 0, 0, 0, time.UTC)
	got := n.Normalize(utc)

	// Same instant, different wall clock (+04:00).
	assert.True(t, got.Equal(utc))
	assert.Equal(t, 10, got.Hour())
	assert.Equal(t, "Asia/Dubai", got.Location().String())
}

func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer(t)

	once := n.Normalize(time.Date(2025, 4, 23, 6, 0, 0, 0, time.UTC))
	twice := n.Normalize(once)

	assert.Equal(t, once, twice)
}

func TestParseTimestampNaive(t *testing.T) {
	n := newTestNormalizer(t)

	// Zone-naive input is tagged with the operational zone, no instant shift.
	got, err := n.ParseTimestamp("2025-04-24T15:00:00")
	require.NoError(t, err)

	want := time.Date(2025, 4, 24, 15, 0, 0, 0, n.Location())
	assert.True(t, got.Equal(want))
	assert.Equal(t, 15, got.Hour())
}

func TestParseTimestampNaiveWithoutSeconds(t *testing.T) {
	n := newTestNormalizer(t)

	got, err := n.ParseTimestamp("2025-04-24T15:00")
	require.NoError(t, err)
	assert.Equal(t, 15, got.Hour())
	assert.Equal(t, 0, got.Minute())
}

func TestParseTimestampZoned(t *testing.T) {
	n := newTestNormalizer(t)

	// +04:00 matches the operational zone offset; wall clock is kept.
	got, err := n.ParseTimestamp("2025-04-24T15:00:00+04:00")
	require.NoError(t, err)
	assert.Equal(t, 15, got.Hour())

	// A different zone is shifted to the same instant.
	got, err = n.ParseTimestamp("2025-04-24T15:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 19, got.Hour())
	assert.True(t, got.Equal(time.Date(2025, 4, 24, 15, 0, 0, 0, time.UTC)))
}

func TestParseTimestampInvalid(t *testing.T) {
	n := newTestNormalizer(t)

	_, err := n.ParseTimestamp("next tuesday-ish")
	require.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	n := newTestNormalizer(t)

	// 22:30 UTC on the 23rd is already the 24th in Asia/Dubai.
	now := time.Date(2025, 4, 23, 22, 30, 0, 0, time.UTC)

	start := n.StartOfDay(now)
	end := n.EndOfDay(now)

	assert.Equal(t, time.Date(2025, 4, 24, 0, 0, 0, 0, n.Location()), start)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 24, end.Day())
	assert.True(t, end.After(start))
}
