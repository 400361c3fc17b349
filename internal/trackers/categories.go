// Package trackers holds the category, tracker and record stores used by the
// CLI and TUI, together with the day filtering and statistics built on them.
package trackers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/tracker/internal/events"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

type CategoryStore struct {
	provider storage.Provider
	bus      *events.Bus
}

func NewCategoryStore(provider storage.Provider, bus *events.Bus) *CategoryStore {
	return &CategoryStore{provider: provider, bus: bus}
}

// List returns categories sorted by title with their live trackers nested.
func (s *CategoryStore) List() ([]models.TrackerCategory, error) {
	return s.provider.GetAllCategories()
}

func (s *CategoryStore) Titles() ([]string, error) {
	categories, err := s.List()
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(categories))
	for i, c := range categories {
		titles[i] = c.Title
	}
	return titles, nil
}

func (s *CategoryStore) Count() (int, error) {
	titles, err := s.Titles()
	if err != nil {
		return 0, err
	}
	return len(titles), nil
}

// Add creates a category and returns its index in the sorted listing.
// Titles are compared exactly, so "Health", "health" and " Health" are
// three different categories. Blank titles are rejected.
func (s *CategoryStore) Add(title string) (int, error) {
	if strings.TrimSpace(title) == "" {
		return 0, &models.ValidationError{Field: "title", Message: "category title is required"}
	}

	if err := s.provider.AddCategory(title); err != nil {
		return 0, err
	}

	titles, err := s.Titles()
	if err != nil {
		return 0, err
	}
	index := sort.SearchStrings(titles, title)
	if index >= len(titles) || titles[index] != title {
		return 0, fmt.Errorf("%w: category %q missing after insert", storage.ErrInvalidStore, title)
	}

	s.bus.Publish(events.CategoryUpdate{Inserted: []int{index}})
	return index, nil
}

func (s *CategoryStore) Find(title string) (models.TrackerCategory, error) {
	return s.provider.GetCategory(title)
}

// Delete removes a category that has no live trackers.
func (s *CategoryStore) Delete(title string) error {
	titles, err := s.Titles()
	if err != nil {
		return err
	}
	index := sort.SearchStrings(titles, title)
	if index >= len(titles) || titles[index] != title {
		return fmt.Errorf("category %q: %w", title, storage.ErrNotFound)
	}

	if err := s.provider.DeleteCategory(title); err != nil {
		return err
	}

	s.bus.Publish(events.CategoryUpdate{Deleted: []int{index}})
	return nil
}
