package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMonthKey is returned when a string is not a YYYY-MM month key.
var ErrInvalidMonthKey = errors.New("invalid month key")

const monthKeyLayout = "2006-01"

// MonthKey identifies a calendar month as "YYYY-MM".
// Lexical order of MonthKeys equals chronological order.
type MonthKey string

// ParseMonthKey validates s and returns it as a MonthKey.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(monthKeyLayout, s)
	if err != nil || len(s) != len(monthKeyLayout) {
		return "", fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidMonthKey, s)
	}
	return MonthKeyOf(t), nil
}

// MonthKeyOf returns the month key containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthKeyLayout))
}

// CurrentMonth returns the key for the local current month.
func CurrentMonth() MonthKey {
	return MonthKeyOf(time.Now())
}

func (k MonthKey) start() time.Time {
	t, err := time.Parse(monthKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Year returns the calendar year, or 0 for a malformed key.
func (k MonthKey) Year() int {
	if t := k.start(); !t.IsZero() {
		return t.Year()
	}
	return 0
}

// Month returns the calendar month, or 0 for a malformed key.
func (k MonthKey) Month() time.Month {
	if t := k.start(); !t.IsZero() {
		return t.Month()
	}
	return 0
}

// Days returns the number of days in the month.
func (k MonthKey) Days() int {
	t := k.start()
	if t.IsZero() {
		return 0
	}
	return DaysInMonth(t.Year(), t.Month())
}

// Prev returns the previous month's key.
func (k MonthKey) Prev() MonthKey { return k.add(-1) }

// Next returns the following month's key.
func (k MonthKey) Next() MonthKey { return k.add(1) }

func (k MonthKey) add(n int) MonthKey {
	t := k.start()
	if t.IsZero() {
		return k
	}
	return MonthKeyOf(t.AddDate(0, n, 0))
}

// Label renders the key for display, e.g. "March 2024".
func (k MonthKey) Label() string {
	t := k.start()
	if t.IsZero() {
		return string(k)
	}
	return t.Format("January 2006")
}

func (k MonthKey) String() string { return string(k) }

// DaysInMonth returns the number of days in the given month.
// Day 0 of the following month normalizes to the last day of this one,
// so leap years come from the calendar rather than a lookup table.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
