package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/hearth/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// DateKey returns the zero-padded calendar date of t in t's own location.
// Time of day is ignored. This is the key for every per-day map and flag.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", key, err)
	}
	return t, nil
}

// ValidDateKey reports whether key is a canonical YYYY-MM-DD date.
func ValidDateKey(key string) bool {
	t, err := time.Parse(constants.DateFormat, key)
	return err == nil && t.Format(constants.DateFormat) == key
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay compares only the year, month and day components.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsFuture reports whether date's calendar day is strictly after ref's.
// Both sides are compared on their wall-clock calendar, ignoring time of day.
func IsFuture(date, ref time.Time) bool {
	dy, dm, dd := date.Date()
	ry, rm, rd := ref.Date()
	if dy != ry {
		return dy > ry
	}
	if dm != rm {
		return dm > rm
	}
	return dd > rd
}

// IsDueToday reports whether dueDate falls on ref's calendar day.
func IsDueToday(dueDate, ref time.Time) bool {
	return DateKey(dueDate) == DateKey(ref)
}

// IsDueTodayKey is IsDueToday for a stored YYYY-MM-DD due date.
// An empty or malformed key is never due.
func IsDueTodayKey(dueDate string, ref time.Time) bool {
	return dueDate != "" && dueDate == DateKey(ref)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstOfMonth returns midnight on the 1st of anchor's month.
func FirstOfMonth(anchor time.Time) time.Time {
	return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
}

// AddMonths moves the anchor by n months and returns the 1st of the result.
// Year rollover is handled by time.Date normalization.
func AddMonths(anchor time.Time, n int) time.Time {
	return time.Date(anchor.Year(), anchor.Month()+time.Month(n), 1, 0, 0, 0, 0, anchor.Location())
}

// BuildMonthGrid lays out anchor's month for a Sunday-first calendar.
// The result starts with one nil per weekday before the 1st, followed by
// every day of the month in order.
func BuildMonthGrid(anchor time.Time) []*time.Time {
	first := FirstOfMonth(anchor)
	leading := int(first.Weekday())
	days := DaysInMonth(first.Year(), first.Month())

	cells := make([]*time.Time, 0, leading+days)
	for i := 0; i < leading; i++ {
		cells = append(cells, nil)
	}
	for day := 1; day <= days; day++ {
		d := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
		cells = append(cells, &d)
	}
	return cells
}

// Elapsed returns how long ago since was, relative to now.
func Elapsed(since, now time.Time) time.Duration {
	return now.Sub(since)
}
