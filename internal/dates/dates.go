// Package dates handles the calendar-date parsing and rendering used by
// the exercise endpoints. Exercise dates are day-granular and kept in UTC.
package dates

import (
	"fmt"
	"time"
)

// TextualFormat is the human-readable form used in API responses,
// e.g. "Sat Feb 01 2023".
const TextualFormat = "Mon Jan 02 2006"

// ISOFormat is the wire form accepted on input.
const ISOFormat = "2006-01-02"

// Format renders t in the textual response format.
func Format(t time.Time) string {
	return t.Format(TextualFormat)
}

// Parse accepts a yyyy-mm-dd date or an RFC 3339 timestamp and returns
// the corresponding UTC calendar day.
func Parse(s string) (time.Time, error) {
	if t, err := time.Parse(ISOFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return Day(t.UTC()), nil
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
