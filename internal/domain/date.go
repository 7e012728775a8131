package domain

import "time"

// Deadline fields are calendar dates. They are stored as UTC-midnight
// instants so that comparisons never depend on the server's timezone;
// conversion to a zoned instant happens only at the external-calendar
// boundary.

// DateUTC truncates an instant to midnight UTC.
func DateUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight instant.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
