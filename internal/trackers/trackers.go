package trackers

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/tracker/internal/events"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

type TrackerStore struct {
	provider storage.Provider
	bus      *events.Bus
}

func NewTrackerStore(provider storage.Provider, bus *events.Bus) *TrackerStore {
	return &TrackerStore{provider: provider, bus: bus}
}

// Add stores t under categoryTitle and returns it with its generated id.
// Names are unique among live trackers across all categories.
func (s *TrackerStore) Add(t models.Tracker, categoryTitle string) (models.Tracker, error) {
	t.CategoryTitle = categoryTitle
	t.Normalize()
	if err := t.Validate(); err != nil {
		return models.Tracker{}, err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	if err := s.provider.AddTracker(t); err != nil {
		return models.Tracker{}, err
	}

	stored, err := s.provider.GetTracker(t.ID)
	if err != nil {
		return models.Tracker{}, err
	}
	s.bus.Publish(events.TrackerUpdate{Op: events.TrackerAdded, TrackerID: t.ID})
	return stored, nil
}

// Update replaces every mutable field of the live tracker with id t.ID and
// files it under newCategoryTitle.
func (s *TrackerStore) Update(t models.Tracker, newCategoryTitle string) error {
	if t.ID == "" {
		return fmt.Errorf("tracker without id: %w", storage.ErrNotFound)
	}
	t.CategoryTitle = newCategoryTitle
	t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}

	if err := s.provider.UpdateTracker(t); err != nil {
		return err
	}
	s.bus.Publish(events.TrackerUpdate{Op: events.TrackerUpdated, TrackerID: t.ID})
	return nil
}

// Delete soft-deletes the tracker. Its records are kept and reappear if the
// tracker is restored.
func (s *TrackerStore) Delete(t models.Tracker) error {
	if err := s.provider.DeleteTracker(t.ID); err != nil {
		return err
	}
	s.bus.Publish(events.TrackerUpdate{Op: events.TrackerDeleted, TrackerID: t.ID})
	return nil
}

func (s *TrackerStore) Restore(id string) error {
	if err := s.provider.RestoreTracker(id); err != nil {
		return err
	}
	s.bus.Publish(events.TrackerUpdate{Op: events.TrackerRestored, TrackerID: id})
	return nil
}

// Get returns a live tracker.
func (s *TrackerStore) Get(id string) (models.Tracker, error) {
	t, err := s.provider.GetTracker(id)
	if err != nil {
		return models.Tracker{}, err
	}
	if t.IsDeleted() {
		return models.Tracker{}, fmt.Errorf("tracker %s: %w", id, storage.ErrNotFound)
	}
	return t, nil
}

// Resolve finds a live tracker by exact name, falling back to id.
func (s *TrackerStore) Resolve(nameOrID string) (models.Tracker, error) {
	t, err := s.provider.GetTrackerByName(nameOrID)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Tracker{}, err
	}
	return s.Get(nameOrID)
}

func (s *TrackerStore) List() ([]models.Tracker, error) {
	return s.provider.GetAllTrackers()
}

// ListDeleted returns soft-deleted trackers, the candidates for Restore.
func (s *TrackerStore) ListDeleted() ([]models.Tracker, error) {
	all, err := s.provider.GetAllTrackersIncludingDeleted()
	if err != nil {
		return nil, err
	}
	var deleted []models.Tracker
	for _, t := range all {
		if t.IsDeleted() {
			deleted = append(deleted, t)
		}
	}
	return deleted, nil
}

func (s *TrackerStore) Count() (int, error) {
	live, err := s.List()
	if err != nil {
		return 0, err
	}
	return len(live), nil
}
