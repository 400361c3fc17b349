package trackers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/julianstephens/tracker/internal/models"
)

// 2024-01-01 is a Monday.
var weekDays = map[models.Weekday]string{
	models.Monday:    "2024-01-01",
	models.Tuesday:   "2024-01-02",
	models.Wednesday: "2024-01-03",
	models.Thursday:  "2024-01-04",
	models.Friday:    "2024-01-05",
	models.Saturday:  "2024-01-06",
	models.Sunday:    "2024-01-07",
}

func tracker(id, name string, days ...models.Weekday) models.Tracker {
	return models.Tracker{ID: id, Name: name, Emoji: "⭐", Schedule: models.NewSchedule(days...)}
}

func names(categories []models.TrackerCategory) map[string][]string {
	out := map[string][]string{}
	for _, c := range categories {
		for _, t := range c.Trackers {
			out[c.Title] = append(out[c.Title], t.Name)
		}
	}
	return out
}

func TestFilterCategoriesScheduleMembership(t *testing.T) {
	for mask := 0; mask < 128; mask++ {
		var days []models.Weekday
		for i, wd := range models.AllWeekdays {
			if mask&(1<<i) != 0 {
				days = append(days, wd)
			}
		}
		schedule := models.NewSchedule(days...)
		categories := []models.TrackerCategory{{Title: "C", Trackers: []models.Tracker{tracker("t", "T", days...)}}}

		for wd, day := range weekDays {
			got, err := FilterCategories(categories, Query{Day: day, Filter: models.FilterAll}, nil)
			if err != nil {
				t.Fatalf("FilterCategories(%s): %v", day, err)
			}
			present := len(got) == 1
			if present != schedule.Contains(wd) {
				t.Errorf("schedule %s on %s: present=%v, want %v", schedule, wd, present, schedule.Contains(wd))
			}
		}
	}
}

func TestFilterCategories(t *testing.T) {
	categories := []models.TrackerCategory{
		{Title: "Health", Trackers: []models.Tracker{
			tracker("water", "Drink water", models.Monday, models.Wednesday),
			tracker("run", "Morning run", models.Monday),
			tracker("yoga", "Йога", models.Tuesday),
		}},
		{Title: "Study", Trackers: []models.Tracker{
			tracker("read", "Read a book", models.Monday, models.Tuesday),
		}},
		{Title: "Weekend", Trackers: []models.Tracker{
			tracker("hike", "Hike", models.Saturday),
		}},
	}
	done := map[string]bool{"water": true, "read": true}

	tests := []struct {
		name  string
		query Query
		want  map[string][]string
	}{
		{
			name:  "monday keeps order and drops empty categories",
			query: Query{Day: weekDays[models.Monday], Filter: models.FilterAll},
			want: map[string][]string{
				"Health": {"Drink water", "Morning run"},
				"Study":  {"Read a book"},
			},
		},
		{
			name:  "tuesday",
			query: Query{Day: weekDays[models.Tuesday]},
			want: map[string][]string{
				"Health": {"Йога"},
				"Study":  {"Read a book"},
			},
		},
		{
			name:  "sunday has nothing",
			query: Query{Day: weekDays[models.Sunday]},
			want:  map[string][]string{},
		},
		{
			name:  "search is case insensitive",
			query: Query{Day: weekDays[models.Monday], Search: "  WATER "},
			want:  map[string][]string{"Health": {"Drink water"}},
		},
		{
			name:  "search matches cyrillic regardless of case",
			query: Query{Day: weekDays[models.Tuesday], Search: "йОГ"},
			want:  map[string][]string{"Health": {"Йога"}},
		},
		{
			name:  "search without matches drops every category",
			query: Query{Day: weekDays[models.Monday], Search: "piano"},
			want:  map[string][]string{},
		},
		{
			name:  "completed",
			query: Query{Day: weekDays[models.Monday], Filter: models.FilterCompleted},
			want: map[string][]string{
				"Health": {"Drink water"},
				"Study":  {"Read a book"},
			},
		},
		{
			name:  "not completed",
			query: Query{Day: weekDays[models.Monday], Filter: models.FilterNotCompleted},
			want:  map[string][]string{"Health": {"Morning run"}},
		},
		{
			name:  "today overrides the selected day",
			query: Query{Day: weekDays[models.Monday], Today: weekDays[models.Saturday], Filter: models.FilterToday},
			want:  map[string][]string{"Weekend": {"Hike"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterCategories(categories, tt.query, func(id string) bool { return done[id] })
			if err != nil {
				t.Fatalf("FilterCategories: %v", err)
			}
			if diff := cmp.Diff(tt.want, names(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("FilterCategories mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterCategoriesDoesNotMutateInput(t *testing.T) {
	categories := []models.TrackerCategory{{Title: "Health", Trackers: []models.Tracker{
		tracker("a", "A", models.Monday),
		tracker("b", "B", models.Tuesday),
	}}}
	before := []models.TrackerCategory{{Title: "Health", Trackers: append([]models.Tracker(nil), categories[0].Trackers...)}}

	if _, err := FilterCategories(categories, Query{Day: weekDays[models.Monday]}, nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, categories); diff != "" {
		t.Errorf("input changed (-before +after):\n%s", diff)
	}
}

func TestFilterCategoriesInvalidDay(t *testing.T) {
	if _, err := FilterCategories(nil, Query{Day: "01.01.24"}, nil); err == nil {
		t.Error("expected error for malformed day")
	}
}

func TestHasScheduled(t *testing.T) {
	categories := []models.TrackerCategory{{Title: "Health", Trackers: []models.Tracker{tracker("a", "A", models.Monday)}}}

	ok, err := HasScheduled(categories, weekDays[models.Monday])
	if err != nil || !ok {
		t.Errorf("HasScheduled(Monday) = %v, %v; want true", ok, err)
	}
	ok, err = HasScheduled(categories, weekDays[models.Friday])
	if err != nil || ok {
		t.Errorf("HasScheduled(Friday) = %v, %v; want false", ok, err)
	}
}

func TestQueryEffectiveDay(t *testing.T) {
	q := Query{Day: "2024-01-01", Today: "2024-01-05"}
	if got := q.EffectiveDay(); got != "2024-01-01" {
		t.Errorf("EffectiveDay() = %s, want selected day", got)
	}
	q.Filter = models.FilterToday
	if got := q.EffectiveDay(); got != "2024-01-05" {
		t.Errorf("EffectiveDay() with today filter = %s, want today", got)
	}
}
