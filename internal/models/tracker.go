package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/julianstephens/tracker/internal/constants"
)

// TrackerKind distinguishes recurring habits from irregular events.
type TrackerKind string

const (
	KindHabit TrackerKind = constants.KindHabit
	KindEvent TrackerKind = constants.KindEvent
)

// Tracker is a user-defined habit or event with a weekly schedule.
type Tracker struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Color         string      `json:"color"` // hex, e.g. "#FD4C49"
	Emoji         string      `json:"emoji"`
	Schedule      Schedule    `json:"schedule"`
	Kind          TrackerKind `json:"kind"`
	CategoryTitle string      `json:"category_title"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	DeletedAt     *time.Time  `json:"deleted_at,omitempty"`
}

// ActiveOn reports whether the tracker is scheduled on wd.
func (t Tracker) ActiveOn(wd Weekday) bool {
	return t.Schedule.Contains(wd)
}

// Normalize fills defaults: habit kind, trimmed name, and a full week for
// events without an explicit schedule.
func (t *Tracker) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Emoji = strings.TrimSpace(t.Emoji)
	if t.Kind == "" {
		t.Kind = KindHabit
	}
	if t.Kind == KindEvent && t.Schedule.IsEmpty() {
		t.Schedule = EveryDay
	}
	if c, err := colorful.Hex(t.Color); err == nil {
		t.Color = c.Hex()
	}
}

// Validate checks the fields required before a tracker can be stored.
func (t Tracker) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return newValidationError("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > constants.MaxTrackerNameLength {
		return newValidationError("name", "must be at most 38 characters")
	}
	switch t.Kind {
	case KindHabit, KindEvent, "":
	default:
		return newValidationError("kind", "must be habit or event")
	}
	if t.Color != "" {
		if _, err := colorful.Hex(t.Color); err != nil {
			return newValidationError("color", "must be a hex color like #33CF69")
		}
	}
	if t.Emoji != "" && uniseg.GraphemeClusterCount(t.Emoji) != 1 {
		return newValidationError("emoji", "must be a single emoji")
	}
	if t.Kind != KindEvent {
		if t.Emoji == "" {
			return newValidationError("emoji", "is required for habits")
		}
		if t.Schedule.IsEmpty() {
			return newValidationError("schedule", "habit must be scheduled on at least one weekday")
		}
	}
	return nil
}

// IsDeleted reports whether the tracker has been soft deleted.
func (t Tracker) IsDeleted() bool {
	return t.DeletedAt != nil
}
