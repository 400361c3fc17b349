package tui

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

const defaultColor = "#FD4C49"

type trackerFormModel struct {
	Name     string
	Category string
	Emoji    string
	Color    string
	Kind     models.TrackerKind
	Schedule []models.Weekday
}

func newTrackerForm(categories []string) (*huh.Form, *trackerFormModel) {
	f := &trackerFormModel{Color: defaultColor, Kind: models.KindHabit}
	if len(categories) > 0 {
		f.Category = categories[0]
	}

	weekdays := make([]huh.Option[models.Weekday], 0, len(models.AllWeekdays))
	for _, wd := range models.AllWeekdays {
		weekdays = append(weekdays, huh.NewOption(wd.FullName(), wd))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				CharLimit(constants.MaxTrackerNameLength).
				Validate(validateName).
				Value(&f.Name),
			huh.NewInput().
				Title("Category").
				Description("Pick an existing category or type a new one").
				Suggestions(categories).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("category is required")
					}
					return nil
				}).
				Value(&f.Category),
			huh.NewInput().
				Title("Emoji").
				Value(&f.Emoji),
			huh.NewInput().
				Title("Color").
				Validate(validateColor).
				Value(&f.Color),
			huh.NewSelect[models.TrackerKind]().
				Title("Kind").
				Options(
					huh.NewOption("Habit (weekly schedule)", models.KindHabit),
					huh.NewOption("Irregular event", models.KindEvent),
				).
				Value(&f.Kind),
		),
		huh.NewGroup(
			huh.NewMultiSelect[models.Weekday]().
				Title("Schedule").
				Description("Days the tracker is shown; ignored for events").
				Options(weekdays...).
				Value(&f.Schedule),
		),
	)
	return form, f
}

func validateName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(s) > constants.MaxTrackerNameLength {
		return fmt.Errorf("name is limited to %d characters", constants.MaxTrackerNameLength)
	}
	return nil
}

func validateColor(s string) error {
	if _, err := colorful.Hex(strings.TrimSpace(s)); err != nil {
		return errors.New("color must look like #RRGGBB")
	}
	return nil
}

func (f *trackerFormModel) tracker() models.Tracker {
	return models.Tracker{
		Name:     f.Name,
		Emoji:    f.Emoji,
		Color:    strings.TrimSpace(f.Color),
		Kind:     f.Kind,
		Schedule: models.NewSchedule(f.Schedule...),
	}
}

// saveTrackerForm creates the category if needed and adds the tracker.
func (m *Model) saveTrackerForm() error {
	category := strings.TrimSpace(m.trackerForm.Category)
	if _, err := m.ctx.Service.Categories.Add(category); err != nil && !errors.Is(err, storage.ErrDuplicateValue) {
		return err
	}
	_, err := m.ctx.Service.Trackers.Add(m.trackerForm.tracker(), category)
	return err
}
