package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
)

// Clock returns the current time. Repositories take a Clock so tests can pin "now".
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// FormatDate renders t as a calendar-date string (YYYY-MM-DD) in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a calendar-date string (YYYY-MM-DD) at midnight in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateDate checks if the string is a calendar date in the standard format.
func ValidateDate(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TrailingDays returns today and the n-1 preceding calendar days, oldest first.
func TrailingDays(today time.Time, n int) []time.Time {
	start := StartOfDay(today)
	days := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, start.AddDate(0, 0, -i))
	}
	return days
}

// LastWeek returns the trailing seven days ending today.
func LastWeek(today time.Time) []time.Time {
	return TrailingDays(today, constants.TrailingDays)
}

// DayLabel returns the three-letter weekday abbreviation for t.
func DayLabel(t time.Time) string {
	return constants.Weekdays[t.Weekday()]
}

// FormatLongDate renders a calendar-date string as "January 2, 2006".
// Unparseable input is returned unchanged.
func FormatLongDate(dateStr string) string {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format(constants.LongDateFormat)
}
