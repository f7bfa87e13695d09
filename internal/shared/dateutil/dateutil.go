package dateutil

import "time"

// DateLayout is the wire format for all calendar dates in the API.
const DateLayout = "2006-01-02"

// TruncateToDay drops the time-of-day component. All span math operates on
// calendar days in UTC so DST transitions cannot shift a count by one.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CalculateDays returns the inclusive day count between two calendar dates:
// same day -> 1, consecutive days -> 2. The count is symmetric; callers must
// reject an inverted range as a validation error before persisting it.
func CalculateDays(start, end time.Time) int {
	s := TruncateToDay(start)
	e := TruncateToDay(end)
	if e.Before(s) {
		s, e = e, s
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// SpanContains reports whether day falls within [start, end], comparing
// calendar dates only.
func SpanContains(start, end, day time.Time) bool {
	s := TruncateToDay(start)
	e := TruncateToDay(end)
	d := TruncateToDay(day)
	return !d.Before(s) && !d.After(e)
}

// SpansOverlap reports whether [aStart, aEnd] and [bStart, bEnd] intersect.
func SpansOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !TruncateToDay(aEnd).Before(TruncateToDay(bStart)) &&
		!TruncateToDay(aStart).After(TruncateToDay(bEnd))
}

// MonthLayout is the label format for calendar-month buckets.
const MonthLayout = "2006-01"

// MonthKey returns the calendar-month bucket label (YYYY-MM) for t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(v string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, v, time.UTC)
}
