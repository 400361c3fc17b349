package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Schedule is the set of weekdays on which a tracker is active.
// An empty schedule never matches any day.
type Schedule uint8

// EveryDay contains all seven weekdays.
const EveryDay Schedule = 1<<7 - 1

// NewSchedule builds a schedule from the given weekdays. Invalid values are ignored.
func NewSchedule(days ...Weekday) Schedule {
	var s Schedule
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

func (s Schedule) bit(w Weekday) Schedule {
	return 1 << (w.Order() - 1)
}

// Contains reports whether w is in the schedule.
func (s Schedule) Contains(w Weekday) bool {
	if !w.Valid() {
		return false
	}
	return s&s.bit(w) != 0
}

// Add returns the schedule with w included.
func (s Schedule) Add(w Weekday) Schedule {
	if !w.Valid() {
		return s
	}
	return s | s.bit(w)
}

// Remove returns the schedule with w excluded.
func (s Schedule) Remove(w Weekday) Schedule {
	if !w.Valid() {
		return s
	}
	return s &^ s.bit(w)
}

func (s Schedule) IsEmpty() bool { return s&EveryDay == 0 }

// Len returns the number of weekdays in the schedule.
func (s Schedule) Len() int {
	n := 0
	for _, wd := range AllWeekdays {
		if s.Contains(wd) {
			n++
		}
	}
	return n
}

// Weekdays returns the members in display order, Monday first.
func (s Schedule) Weekdays() []Weekday {
	days := make([]Weekday, 0, 7)
	for _, wd := range AllWeekdays {
		if s.Contains(wd) {
			days = append(days, wd)
		}
	}
	return days
}

func (s Schedule) String() string {
	switch {
	case s&EveryDay == EveryDay:
		return "every day"
	case s.IsEmpty():
		return "never"
	}
	names := make([]string, 0, 7)
	for _, wd := range s.Weekdays() {
		names = append(names, wd.ShortName())
	}
	return strings.Join(names, ",")
}

// RawValues returns the calendar encodings of the members, for storage.
func (s Schedule) RawValues() []int {
	raw := make([]int, 0, 7)
	for _, wd := range s.Weekdays() {
		raw = append(raw, wd.RawValue())
	}
	return raw
}

// ScheduleFromRaw rebuilds a schedule from stored calendar encodings.
func ScheduleFromRaw(raw []int) (Schedule, error) {
	var s Schedule
	for _, r := range raw {
		wd, ok := WeekdayFromRaw(r)
		if !ok {
			return 0, fmt.Errorf("invalid stored weekday value %d", r)
		}
		s = s.Add(wd)
	}
	return s, nil
}

// EncodeSchedule serializes a schedule as a JSON array of calendar encodings.
func EncodeSchedule(s Schedule) string {
	b, _ := json.Marshal(s.RawValues())
	return string(b)
}

// DecodeSchedule parses the output of EncodeSchedule.
func DecodeSchedule(data string) (Schedule, error) {
	if strings.TrimSpace(data) == "" {
		return 0, nil
	}
	var raw []int
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return 0, fmt.Errorf("failed to decode schedule %q: %w", data, err)
	}
	return ScheduleFromRaw(raw)
}

// ParseSchedule parses a comma-separated list of weekday names or order numbers.
// "daily" and "every day" select all weekdays.
func ParseSchedule(str string) (Schedule, error) {
	str = strings.TrimSpace(strings.ToLower(str))
	if str == "" {
		return 0, nil
	}
	if str == "daily" || str == "every day" || str == "all" {
		return EveryDay, nil
	}
	var s Schedule
	for _, part := range strings.Split(str, ",") {
		wd, ok := LookupWeekday(part)
		if !ok {
			return 0, fmt.Errorf("invalid weekday: %s", strings.TrimSpace(part))
		}
		s = s.Add(wd)
	}
	return s, nil
}
