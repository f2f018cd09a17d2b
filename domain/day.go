package domain

import (
	"strings"
	"time"
)

// DayLayout is the wire and storage format of every calendar date.
const DayLayout = "2006-01-02"

// ParseDay truncates value to its calendar day. Anything after the first ten
// characters (a time component, a timezone) is discarded.
func ParseDay(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) > len(DayLayout) {
		value = value[:len(DayLayout)]
	}
	if _, err := time.Parse(DayLayout, value); err != nil {
		return "", &ValidationError{Field: field, Reason: "la fecha debe tener formato AAAA-MM-DD"}
	}
	return value, nil
}

// Today renders t as a calendar day in its own location.
func Today(t time.Time) string {
	return t.Format(DayLayout)
}
