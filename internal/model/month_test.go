package model

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2100, time.February, 28},
		{2024, time.April, 30},
		{2024, time.January, 31},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}

	for year := 1999; year <= 2030; year++ {
		assert.Equal(t, 31, DaysInMonth(year, time.December), year)
	}
}

func TestDaysInMonthMatchesCalendar(t *testing.T) {
	day := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Before(end) {
		last := day.AddDate(0, 1, -1)
		require.Equal(t, last.Day(), DaysInMonth(day.Year(), day.Month()), day.Format("2006-01"))
		day = day.AddDate(0, 1, 0)
	}
}

func TestParseMonthKey(t *testing.T) {
	k, err := ParseMonthKey("2024-03")
	require.NoError(t, err)
	assert.Equal(t, MonthKey("2024-03"), k)
	assert.Equal(t, 2024, k.Year())
	assert.Equal(t, time.March, k.Month())
	assert.Equal(t, 31, k.Days())
	assert.Equal(t, "March 2024", k.Label())

	for _, bad := range []string{"", "2024", "2024-3", "2024-13", "2024-00", "24-03", "2024/03", "2024-03-01"} {
		_, err := ParseMonthKey(bad)
		assert.ErrorIsf(t, err, ErrInvalidMonthKey, "ParseMonthKey(%q)", bad)
	}
}

func TestMonthKeyNavigation(t *testing.T) {
	assert.Equal(t, MonthKey("2024-01"), MonthKey("2023-12").Next())
	assert.Equal(t, MonthKey("2023-12"), MonthKey("2024-01").Prev())
	assert.Equal(t, MonthKey("2024-03"), MonthKey("2024-02").Next())
	assert.Equal(t, MonthKey("junk"), MonthKey("junk").Next())
	assert.Zero(t, MonthKey("junk").Days())
}

func TestMonthKeysSortChronologically(t *testing.T) {
	keys := []string{"2024-10", "2023-12", "2024-02", "2024-01", "1999-07"}
	sort.Strings(keys)

	var prev time.Time
	for _, k := range keys {
		tm, err := time.Parse("2006-01", k)
		require.NoError(t, err)
		assert.True(t, tm.After(prev), k)
		prev = tm
	}
}
