package timeutil

import "time"

// DateLayout is the ISO calendar date form used for invoice dates.
const DateLayout = "2006-01-02"

// Today returns the current calendar date in UTC with no time component.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a time as an ISO calendar date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses an ISO calendar date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
