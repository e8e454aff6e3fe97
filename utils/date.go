package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for attendance and measurement dates.
const DateLayout = "2006-01-02"

// Today returns the current date in storage format.
func Today() string {
	return time.Now().Format(DateLayout)
}

// ParseDate validates a date string against DateLayout and echoes it back
// normalized. Empty input defaults to today.
func ParseDate(s string) (string, error) {
	if s == "" {
		return Today(), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.Format(DateLayout), nil
}
