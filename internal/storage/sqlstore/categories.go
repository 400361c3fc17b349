package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

func (s *Store) AddCategory(title string) error {
	_, err := s.db.Exec(s.rebind("INSERT INTO categories (title, created_at) VALUES (?, ?)"), title, s.timestamp())
	if err != nil {
		if s.isUnique(err) {
			return fmt.Errorf("category %q: %w", title, storage.ErrDuplicateValue)
		}
		return err
	}
	logger.Debug("Category added", "title", title)
	return nil
}

func (s *Store) GetCategory(title string) (models.TrackerCategory, error) {
	var found string
	err := s.db.Get(&found, s.rebind("SELECT title FROM categories WHERE title = ?"), title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TrackerCategory{}, fmt.Errorf("category %q: %w", title, storage.ErrNotFound)
		}
		return models.TrackerCategory{}, err
	}

	trackers, err := s.selectTrackers(sq.Eq{"category_title": found, "deleted_at": nil})
	if err != nil {
		return models.TrackerCategory{}, err
	}
	return models.TrackerCategory{Title: found, Trackers: trackers}, nil
}

// GetAllCategories returns categories sorted by title, each with its live
// trackers sorted by name. Sorting happens here so both backends agree
// regardless of collation.
func (s *Store) GetAllCategories() ([]models.TrackerCategory, error) {
	var titles []string
	if err := s.db.Select(&titles, "SELECT title FROM categories"); err != nil {
		return nil, err
	}
	sort.Strings(titles)

	trackers, err := s.GetAllTrackers()
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string][]models.Tracker)
	for _, t := range trackers {
		byCategory[t.CategoryTitle] = append(byCategory[t.CategoryTitle], t)
	}

	categories := make([]models.TrackerCategory, 0, len(titles))
	for _, title := range titles {
		categories = append(categories, models.TrackerCategory{
			Title:    title,
			Trackers: byCategory[title],
		})
	}
	return categories, nil
}

// DeleteCategory removes an empty category. Soft-deleted trackers still
// filed under it are purged together with their records.
func (s *Store) DeleteCategory(title string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var live int
	if err := tx.Get(&live, tx.Rebind("SELECT COUNT(*) FROM trackers WHERE category_title = ? AND deleted_at IS NULL"), title); err != nil {
		return err
	}
	if live > 0 {
		return fmt.Errorf("category %q has %d tracker(s): %w", title, live, storage.ErrCategoryNotEmpty)
	}

	if _, err := tx.Exec(tx.Rebind(`
		DELETE FROM records WHERE tracker_id IN (
			SELECT id FROM trackers WHERE category_title = ?
		)`), title); err != nil {
		return err
	}
	if _, err := tx.Exec(tx.Rebind("DELETE FROM trackers WHERE category_title = ?"), title); err != nil {
		return err
	}

	result, err := tx.Exec(tx.Rebind("DELETE FROM categories WHERE title = ?"), title)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category %q: %w", title, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Debug("Category deleted", "title", title)
	return nil
}
