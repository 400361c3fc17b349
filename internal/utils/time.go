package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/models"
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

// TodayInTimezone returns today's day key (YYYY-MM-DD) in the specified timezone.
func TodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return FormatDay(now), nil
}

// TodayFromSettings returns today's day key using the timezone from settings.
func TodayFromSettings(settings models.Settings) (string, error) {
	return TodayInTimezone(settings.Timezone)
}

// FormatDay formats t as a record day key.
func FormatDay(t time.Time) string {
	return t.Format(constants.DayFormat)
}

// ParseDay parses a day key (YYYY-MM-DD) as midnight UTC.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(constants.DayFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// ValidateDay checks that day is a well-formed day key.
func ValidateDay(day string) error {
	_, err := ParseDay(day)
	return err
}

// WeekdayOf returns the weekday of t on a Monday-first calendar.
func WeekdayOf(t time.Time) models.Weekday {
	return models.FromTimeWeekday(t.Weekday())
}

// WeekdayOfDay returns the weekday of a day key.
func WeekdayOfDay(day string) (models.Weekday, error) {
	t, err := ParseDay(day)
	if err != nil {
		return 0, err
	}
	return WeekdayOf(t), nil
}

// AddDays shifts a day key by n days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return FormatDay(t.AddDate(0, 0, n)), nil
}

// StartOfWeek returns the Monday of the week containing day.
func StartOfWeek(day string) (string, error) {
	wd, err := WeekdayOfDay(day)
	if err != nil {
		return "", err
	}
	return AddDays(day, -(wd.Order() - 1))
}

// IsAfter reports whether day a comes after day b. Both must be valid day keys,
// which compare correctly as strings.
func IsAfter(a, b string) bool {
	return a > b
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
