package models

import (
	"strconv"
	"strings"
	"time"
)

// Weekday is a day of the week ordered Monday=1 .. Sunday=7.
// The order is independent of RawValue, which is what gets persisted.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekdays lists every weekday in display order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = map[Weekday][4]string{
	// short, full, short (ru), full (ru)
	Monday:    {"Mon", "Monday", "Пн", "Понедельник"},
	Tuesday:   {"Tue", "Tuesday", "Вт", "Вторник"},
	Wednesday: {"Wed", "Wednesday", "Ср", "Среда"},
	Thursday:  {"Thu", "Thursday", "Чт", "Четверг"},
	Friday:    {"Fri", "Friday", "Пт", "Пятница"},
	Saturday:  {"Sat", "Saturday", "Сб", "Суббота"},
	Sunday:    {"Sun", "Sunday", "Вс", "Воскресенье"},
}

// Valid reports whether w is one of the seven weekdays.
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

// Order returns the display position, Monday=1 .. Sunday=7.
func (w Weekday) Order() int {
	return int(w)
}

// RawValue returns the calendar encoding used for storage (Sunday=1, Monday=2 .. Saturday=7).
func (w Weekday) RawValue() int {
	if w == Sunday {
		return 1
	}
	return int(w) + 1
}

// WeekdayFromRaw converts a stored calendar value back to a Weekday.
func WeekdayFromRaw(raw int) (Weekday, bool) {
	switch {
	case raw == 1:
		return Sunday, true
	case raw >= 2 && raw <= 7:
		return Weekday(raw - 1), true
	default:
		return 0, false
	}
}

// FromTimeWeekday converts a time.Weekday.
func FromTimeWeekday(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// TimeWeekday converts w to a time.Weekday.
func (w Weekday) TimeWeekday() time.Weekday {
	if w == Sunday {
		return time.Sunday
	}
	return time.Weekday(w)
}

func (w Weekday) ShortName() string   { return weekdayNames[w][0] }
func (w Weekday) FullName() string    { return weekdayNames[w][1] }
func (w Weekday) ShortNameRU() string { return weekdayNames[w][2] }
func (w Weekday) FullNameRU() string  { return weekdayNames[w][3] }

func (w Weekday) String() string {
	if !w.Valid() {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}
	return w.FullName()
}

// ParseWeekday converts a display string to a Weekday. It accepts English and
// Russian short or full names and the order numbers 1..7, and falls back to
// Monday for anything else.
func ParseWeekday(s string) Weekday {
	wd, ok := LookupWeekday(s)
	if !ok {
		return Monday
	}
	return wd
}

// LookupWeekday is ParseWeekday without the fallback.
func LookupWeekday(s string) (Weekday, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		wd := Weekday(n)
		return wd, wd.Valid()
	}
	for _, wd := range AllWeekdays {
		for _, name := range weekdayNames[wd] {
			if strings.EqualFold(s, name) {
				return wd, true
			}
		}
	}
	return 0, false
}
