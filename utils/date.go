package utils

import (
	"fmt"
	"time"
)

// LocalDateTimeLayout is the naive timestamp format the backend stores
// schedule and event times in. It carries no offset.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// ParseLocalDateTime parses a naive timestamp in the process' local zone.
func ParseLocalDateTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	layouts := []string{
		LocalDateTimeLayout,
		"2006-01-02T15:04:05.000",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse time: %v", s)
}

// SameDay reports whether a and b fall on the same calendar day in the local zone.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay == by && am == bm && ad == bd
}
