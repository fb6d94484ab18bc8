package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// GuessStart resolves a month/day/hour/minute token with no year (the
// schedule page never prints one) into an absolute instant, anchored on now.
// A season spans the new year, so a naive combination far in the past belongs
// to next year, and one far in the future with a smaller month belongs to the
// previous year.
func GuessStart(now time.Time, month, day, hour, minute int) time.Time {
	dt := time.Date(now.Year(), time.Month(month), day, hour, minute, 0, 0, now.Location())
	// Strictly more than 180 days ago rolls forward; exactly 180 stays.
	if dt.Before(now.AddDate(0, 0, -180)) {
		dt = dt.AddDate(1, 0, 0)
	}
	if dt.After(now.AddDate(0, 0, 330)) && month < int(now.Month()) {
		dt = dt.AddDate(-1, 0, 0)
	}
	return dt
}
