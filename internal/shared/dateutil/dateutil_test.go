package dateutil_test

import (
	"testing"
	"time"

	"leavedesk/internal/shared/dateutil"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateDays(t *testing.T) {
	t.Run("same day is one day", func(t *testing.T) {
		d := date(2025, time.January, 1)
		assert.Equal(t, 1, dateutil.CalculateDays(d, d))
	})

	t.Run("consecutive days are two days", func(t *testing.T) {
		assert.Equal(t, 2, dateutil.CalculateDays(
			date(2025, time.January, 1),
			date(2025, time.January, 2),
		))
	})

	t.Run("inclusive five-day span", func(t *testing.T) {
		assert.Equal(t, 5, dateutil.CalculateDays(
			date(2025, time.January, 1),
			date(2025, time.January, 5),
		))
	})

	t.Run("symmetric for inverted arguments", func(t *testing.T) {
		a := date(2025, time.March, 10)
		b := date(2025, time.March, 3)
		assert.Equal(t, dateutil.CalculateDays(a, b), dateutil.CalculateDays(b, a))
		assert.Equal(t, 8, dateutil.CalculateDays(a, b))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		start := time.Date(2025, time.June, 1, 23, 59, 0, 0, time.UTC)
		end := time.Date(2025, time.June, 2, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, 2, dateutil.CalculateDays(start, end))
	})

	t.Run("stable across a DST transition zone", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		assert.NoError(t, err)
		// US spring-forward weekend 2025-03-08 .. 2025-03-10.
		start := time.Date(2025, time.March, 8, 12, 0, 0, 0, loc)
		end := time.Date(2025, time.March, 10, 12, 0, 0, 0, loc)
		assert.Equal(t, 3, dateutil.CalculateDays(start, end))
	})
}

func TestSpanContains(t *testing.T) {
	start := date(2025, time.January, 1)
	end := date(2025, time.January, 5)

	assert.True(t, dateutil.SpanContains(start, end, date(2025, time.January, 3)))
	assert.True(t, dateutil.SpanContains(start, end, start))
	assert.True(t, dateutil.SpanContains(start, end, end))
	assert.False(t, dateutil.SpanContains(start, end, date(2025, time.January, 6)))
	assert.False(t, dateutil.SpanContains(start, end, date(2024, time.December, 31)))

	// Time-of-day must be truncated on all three values.
	asOf := time.Date(2025, time.January, 5, 18, 30, 0, 0, time.UTC)
	assert.True(t, dateutil.SpanContains(start, end, asOf))
}

func TestSpansOverlap(t *testing.T) {
	assert.True(t, dateutil.SpansOverlap(
		date(2025, time.January, 1), date(2025, time.January, 5),
		date(2025, time.January, 5), date(2025, time.January, 9),
	))
	assert.False(t, dateutil.SpansOverlap(
		date(2025, time.January, 1), date(2025, time.January, 5),
		date(2025, time.January, 6), date(2025, time.January, 9),
	))
}

func TestParseDate(t *testing.T) {
	got, err := dateutil.ParseDate("2025-06-15")
	assert.NoError(t, err)
	assert.Equal(t, date(2025, time.June, 15), got)

	_, err = dateutil.ParseDate("15/06/2025")
	assert.Error(t, err)
}
