package trackers

import (
	"sort"

	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/utils"
)

// Statistics are derived from records on every read.
type Statistics struct {
	BestPeriod  int // longest run of consecutive days with at least one completion
	PerfectDays int // days on which every scheduled live tracker was completed
	Completed   int // total completions
	Average     int // completions per active day, rounded down
}

func (s Statistics) IsEmpty() bool {
	return s.Completed == 0
}

// ComputeStatistics ignores records whose tracker is not in trackers, so
// passing only live trackers excludes deleted ones.
func ComputeStatistics(trackers []models.Tracker, records []models.TrackerRecord) (Statistics, error) {
	live := make(map[string]models.Tracker, len(trackers))
	for _, t := range trackers {
		live[t.ID] = t
	}

	doneByDay := make(map[string]map[string]bool)
	var stats Statistics
	for _, r := range records {
		if _, ok := live[r.TrackerID]; !ok {
			continue
		}
		if doneByDay[r.Day] == nil {
			doneByDay[r.Day] = make(map[string]bool)
		}
		if !doneByDay[r.Day][r.TrackerID] {
			doneByDay[r.Day][r.TrackerID] = true
			stats.Completed++
		}
	}
	if len(doneByDay) == 0 {
		return stats, nil
	}

	days := make([]string, 0, len(doneByDay))
	for day := range doneByDay {
		days = append(days, day)
	}
	sort.Strings(days)

	run := 0
	prev := ""
	for _, day := range days {
		next, err := utils.AddDays(prev, 1)
		if prev != "" && err == nil && next == day {
			run++
		} else {
			run = 1
		}
		if run > stats.BestPeriod {
			stats.BestPeriod = run
		}
		prev = day

		weekday, err := utils.WeekdayOfDay(day)
		if err != nil {
			return Statistics{}, err
		}
		scheduled, completed := 0, 0
		for _, t := range trackers {
			if !t.ActiveOn(weekday) {
				continue
			}
			scheduled++
			if doneByDay[day][t.ID] {
				completed++
			}
		}
		if scheduled > 0 && completed == scheduled {
			stats.PerfectDays++
		}
	}

	perDay := make(map[string]int, len(doneByDay))
	for day, done := range doneByDay {
		perDay[day] = len(done)
	}
	stats.Completed, stats.Average = CompletionTotals(perDay)
	return stats, nil
}

// CompletionTotals sums per-day completion counts and returns the total and
// the average per day with at least one completion, rounded down.
func CompletionTotals(perDay map[string]int) (completed, average int) {
	days := 0
	for _, n := range perDay {
		if n == 0 {
			continue
		}
		completed += n
		days++
	}
	if days == 0 {
		return 0, 0
	}
	return completed, completed / days
}
