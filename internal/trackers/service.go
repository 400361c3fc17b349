package trackers

import (
	"github.com/julianstephens/tracker/internal/events"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

// Service wires the three stores to one provider and event bus.
type Service struct {
	Categories *CategoryStore
	Trackers   *TrackerStore
	Records    *RecordStore

	provider storage.Provider
}

func NewService(provider storage.Provider, bus *events.Bus, today TodayFunc) *Service {
	return &Service{
		Categories: NewCategoryStore(provider, bus),
		Trackers:   NewTrackerStore(provider, bus),
		Records:    NewRecordStore(provider, bus, today),
		provider:   provider,
	}
}

// DayView is the filtered listing for one day.
type DayView struct {
	Day        string
	Categories []models.TrackerCategory
	Done       map[string]bool
	// Scheduled is false when no tracker at all is planned for Day.
	Scheduled bool
}

// Day builds the listing described by q.
func (s *Service) Day(q Query) (DayView, error) {
	categories, err := s.Categories.List()
	if err != nil {
		return DayView{}, err
	}
	day := q.EffectiveDay()
	done, err := s.Records.DoneOn(day)
	if err != nil {
		return DayView{}, err
	}
	visible, err := FilterCategories(categories, q, func(id string) bool { return done[id] })
	if err != nil {
		return DayView{}, err
	}
	scheduled, err := HasScheduled(categories, day)
	if err != nil {
		return DayView{}, err
	}
	return DayView{Day: day, Categories: visible, Done: done, Scheduled: scheduled}, nil
}

func (s *Service) Statistics() (Statistics, error) {
	trackers, err := s.Trackers.List()
	if err != nil {
		return Statistics{}, err
	}
	records, err := s.provider.GetAllRecords()
	if err != nil {
		return Statistics{}, err
	}
	stats, err := ComputeStatistics(trackers, records)
	if err != nil {
		return Statistics{}, err
	}

	// Totals come from the store's per-day aggregate rather than the
	// in-memory pass.
	perDay, err := s.Records.CountGroupedByDate()
	if err != nil {
		return Statistics{}, err
	}
	stats.Completed, stats.Average = CompletionTotals(perDay)
	return stats, nil
}
