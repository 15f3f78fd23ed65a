package utils

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month as a "YYYY-MM" string. It is the
// time-partitioning key used throughout the API.
type MonthKey string

// ParseMonthKey validates a "YYYY-MM" string.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("invalid month format, expected YYYY-MM: %q", s)
	}
	return MonthKey(t.Format("2006-01")), nil
}

// MonthKeyOf returns the MonthKey of the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// Bounds returns the first day of the month and the first day of the next
// month, for half-open range queries.
func (m MonthKey) Bounds() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01", string(m))
	return start, start.AddDate(0, 1, 0)
}

// Add steps the key by n months.
func (m MonthKey) Add(n int) MonthKey {
	start, _ := time.Parse("2006-01", string(m))
	return MonthKey(start.AddDate(0, n, 0).Format("2006-01"))
}

// Contains reports whether the date d falls within the month.
func (m MonthKey) Contains(d time.Time) bool {
	return MonthKeyOf(d) == m
}
