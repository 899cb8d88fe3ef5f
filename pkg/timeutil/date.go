package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// LayoutDate is the wire and bucketing format for calendar days.
	LayoutDate = "2006-01-02"
	// LayoutDay is the long human form used in headings.
	LayoutDay = "Monday, January 2, 2006"
)

// DateKey returns the local calendar day of t as YYYY-MM-DD. Every per-day
// bucket in the client is keyed by this string.
func DateKey(t time.Time) string {
	return t.Format(LayoutDate)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, keeping wall-clock midnight across DST
// changes.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}

// ParseDate parses YYYY-MM-DD (or an RFC3339 timestamp) into local midnight.
// The keywords today, tomorrow and yesterday are accepted relative to now.
func ParseDate(raw string, now time.Time) (time.Time, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "", "today":
		return StartOfDay(now), nil
	case "tomorrow":
		return AddDays(now, 1), nil
	case "yesterday":
		return AddDays(now, -1), nil
	}
	if t, err := time.ParseInLocation(LayoutDate, v, now.Location()); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return StartOfDay(t.In(now.Location())), nil
}

// DaysIn returns the number of days in the month containing t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekStart returns midnight of the first day of the week containing t.
func WeekStart(t time.Time, first time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(first) + 7) % 7
	return AddDays(t, -offset)
}

// ParseWeekday accepts full or abbreviated English weekday names.
func ParseWeekday(raw string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if v == name || (len(v) >= 2 && strings.HasPrefix(name, v)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", raw)
}
