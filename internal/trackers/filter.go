package trackers

import (
	"strings"

	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/utils"
)

// Query selects what the day view shows.
type Query struct {
	Day    string // YYYY-MM-DD
	Today  string // replaces Day when Filter is FilterToday
	Search string
	Filter models.Filter
}

// EffectiveDay is the day the listing is computed for.
func (q Query) EffectiveDay() string {
	if q.Filter == models.FilterToday && q.Today != "" {
		return q.Today
	}
	return q.Day
}

// FilterCategories keeps the trackers scheduled on the query's weekday whose
// name contains the search text (case-insensitive) and that pass the
// completion filter. Categories left without trackers are dropped; order is
// preserved. done reports completion on EffectiveDay and may be nil.
func FilterCategories(categories []models.TrackerCategory, q Query, done func(trackerID string) bool) ([]models.TrackerCategory, error) {
	weekday, err := utils.WeekdayOfDay(q.EffectiveDay())
	if err != nil {
		return nil, err
	}
	if done == nil {
		done = func(string) bool { return false }
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	visible := make([]models.TrackerCategory, 0, len(categories))
	for _, category := range categories {
		var kept []models.Tracker
		for _, t := range category.Trackers {
			if !t.ActiveOn(weekday) {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(t.Name), search) {
				continue
			}
			switch q.Filter {
			case models.FilterCompleted:
				if !done(t.ID) {
					continue
				}
			case models.FilterNotCompleted:
				if done(t.ID) {
					continue
				}
			}
			kept = append(kept, t)
		}
		if len(kept) == 0 {
			continue
		}
		visible = append(visible, models.TrackerCategory{Title: category.Title, Trackers: kept})
	}
	return visible, nil
}

// HasScheduled reports whether any tracker is scheduled on day, ignoring
// search and completion filters. The day view uses it to tell "nothing
// planned" apart from "nothing matches".
func HasScheduled(categories []models.TrackerCategory, day string) (bool, error) {
	weekday, err := utils.WeekdayOfDay(day)
	if err != nil {
		return false, err
	}
	for _, category := range categories {
		for _, t := range category.Trackers {
			if t.ActiveOn(weekday) {
				return true, nil
			}
		}
	}
	return false, nil
}
