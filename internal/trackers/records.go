package trackers

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/events"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/utils"
)

// TodayFunc returns the current day key (YYYY-MM-DD) in the user's timezone.
type TodayFunc func() (string, error)

type RecordStore struct {
	provider storage.Provider
	bus      *events.Bus
	today    TodayFunc
}

func NewRecordStore(provider storage.Provider, bus *events.Bus, today TodayFunc) *RecordStore {
	return &RecordStore{provider: provider, bus: bus, today: today}
}

// Add marks the tracker done on day. Marking a day twice keeps one record.
// Days after today are rejected with storage.ErrFutureDate.
func (s *RecordStore) Add(trackerID, day string) error {
	if err := s.checkDay(day); err != nil {
		return err
	}
	if err := s.provider.AddRecord(recordFor(trackerID, day)); err != nil {
		return err
	}
	s.bus.Publish(events.RecordUpdate{TrackerID: trackerID, Day: day, Done: true})
	return nil
}

func (s *RecordStore) Delete(trackerID, day string) error {
	if err := s.provider.DeleteRecord(trackerID, day); err != nil {
		return err
	}
	s.bus.Publish(events.RecordUpdate{TrackerID: trackerID, Day: day, Done: false})
	return nil
}

func (s *RecordStore) IsDone(trackerID, day string) (bool, error) {
	return s.provider.HasRecord(trackerID, day)
}

func (s *RecordStore) CountCompletions(trackerID string) (int, error) {
	return s.provider.CountRecords(trackerID)
}

// CountGroupedByDate counts completions of live trackers per day.
func (s *RecordStore) CountGroupedByDate() (map[string]int, error) {
	return s.provider.CountRecordsByDay()
}

// Toggle flips the completion of trackerID on day and reports the new state.
func (s *RecordStore) Toggle(trackerID, day string) (bool, error) {
	done, err := s.IsDone(trackerID, day)
	if err != nil {
		return false, err
	}
	if done {
		return false, s.Delete(trackerID, day)
	}
	return true, s.Add(trackerID, day)
}

// DoneOn returns the ids of trackers completed on day.
func (s *RecordStore) DoneOn(day string) (map[string]bool, error) {
	records, err := s.provider.GetRecords(storage.RecordFilter{FromDay: day, ToDay: day})
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(records))
	for _, r := range records {
		done[r.TrackerID] = true
	}
	return done, nil
}

func recordFor(trackerID, day string) models.TrackerRecord {
	return models.TrackerRecord{TrackerID: trackerID, Day: day}
}

func (s *RecordStore) checkDay(day string) error {
	if err := utils.ValidateDay(day); err != nil {
		return err
	}
	if s.today == nil {
		return nil
	}
	today, err := s.today()
	if err != nil {
		return err
	}
	if utils.IsAfter(day, today) {
		return fmt.Errorf("%s is after %s: %w", day, today, storage.ErrFutureDate)
	}
	return nil
}
