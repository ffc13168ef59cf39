// Package clock holds millisecond time helpers shared by the retrieval code.
// Windows and range filters are expressed in epoch milliseconds, the resolution
// of the search service's @timestamp field
package clock

import "time"

// Day is 24 hours, the index partition width
const Day = 24 * time.Hour

// Millis returns t as epoch milliseconds
func Millis(t time.Time) int64 { return t.UnixMilli() }

// FromMillis returns the UTC instant for epoch milliseconds
func FromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// DurationMillis returns d in whole milliseconds, never below 1 for positive d
func DurationMillis(d time.Duration) int64 {
	ms := d.Milliseconds()
	if ms == 0 && d > 0 {
		return 1
	}
	return ms
}

// StartOfDayUTC truncates t to 00:00:00 UTC of its calendar day
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse accepts RFC3339 (with or without fractional seconds), a bare date
// (2006-01-02, read as UTC midnight) or epoch milliseconds
func Parse(s string) (time.Time, error) {
	if ms, ok := parseDigits(s); ok {
		return FromMillis(ms), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseDigits(s string) (int64, bool) {
	if s == "" || len(s) > 18 {
		return 0, false
	}
	var n int64
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int64(ch-'0')
	}
	return n, true
}
