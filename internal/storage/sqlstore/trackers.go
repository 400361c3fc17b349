package sqlstore

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

var trackerColumns = []string{
	"id", "name", "color", "emoji", "schedule", "kind", "category_title",
	"created_at", "updated_at", "deleted_at",
}

type trackerRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Color         string         `db:"color"`
	Emoji         string         `db:"emoji"`
	Schedule      string         `db:"schedule"`
	Kind          string         `db:"kind"`
	CategoryTitle string         `db:"category_title"`
	CreatedAt     string         `db:"created_at"`
	UpdatedAt     string         `db:"updated_at"`
	DeletedAt     sql.NullString `db:"deleted_at"`
}

func (r trackerRow) toModel() (models.Tracker, error) {
	schedule, err := models.DecodeSchedule(r.Schedule)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("%w: tracker %s: %v", storage.ErrInvalidStore, r.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("%w: tracker %s created_at: %v", storage.ErrInvalidStore, r.ID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, r.UpdatedAt)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("%w: tracker %s updated_at: %v", storage.ErrInvalidStore, r.ID, err)
	}

	t := models.Tracker{
		ID:            r.ID,
		Name:          r.Name,
		Color:         r.Color,
		Emoji:         r.Emoji,
		Schedule:      schedule,
		Kind:          models.TrackerKind(r.Kind),
		CategoryTitle: r.CategoryTitle,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
	if r.DeletedAt.Valid {
		deletedAt, err := time.Parse(time.RFC3339, r.DeletedAt.String)
		if err != nil {
			return models.Tracker{}, fmt.Errorf("%w: tracker %s deleted_at: %v", storage.ErrInvalidStore, r.ID, err)
		}
		t.DeletedAt = &deletedAt
	}
	return t, nil
}

// selectTrackers lists trackers matching pred, sorted by name.
func (s *Store) selectTrackers(pred sq.Sqlizer) ([]models.Tracker, error) {
	query := s.builder.Select(trackerColumns...).From("trackers")
	if pred != nil {
		query = query.Where(pred)
	}
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []trackerRow
	if err := s.db.Select(&rows, stmt, args...); err != nil {
		return nil, err
	}

	trackers := make([]models.Tracker, 0, len(rows))
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			return nil, err
		}
		trackers = append(trackers, t)
	}
	sort.SliceStable(trackers, func(i, j int) bool {
		return trackers[i].Name < trackers[j].Name
	})
	return trackers, nil
}

func (s *Store) categoryExists(q sqlx.Queryer, title string) (bool, error) {
	var count int
	if err := sqlx.Get(q, &count, s.rebind("SELECT COUNT(*) FROM categories WHERE title = ?"), title); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) AddTracker(t models.Tracker) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ok, err := s.categoryExists(tx, t.CategoryTitle)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("category %q: %w", t.CategoryTitle, storage.ErrNotFound)
	}

	now := s.timestamp()
	createdAt := now
	if !t.CreatedAt.IsZero() {
		createdAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}

	_, err = tx.Exec(tx.Rebind(`
		INSERT INTO trackers (id, name, color, emoji, schedule, kind, category_title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.Name, t.Color, t.Emoji, models.EncodeSchedule(t.Schedule), string(t.Kind),
		t.CategoryTitle, createdAt, now,
	)
	if err != nil {
		if s.isUnique(err) {
			return fmt.Errorf("tracker %q: %w", t.Name, storage.ErrDuplicateValue)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Debug("Tracker added", "id", t.ID, "name", t.Name, "category", t.CategoryTitle)
	return nil
}

// GetTracker returns the tracker with id, including a soft-deleted one.
func (s *Store) GetTracker(id string) (models.Tracker, error) {
	trackers, err := s.selectTrackers(sq.Eq{"id": id})
	if err != nil {
		return models.Tracker{}, err
	}
	if len(trackers) == 0 {
		return models.Tracker{}, fmt.Errorf("tracker %s: %w", id, storage.ErrNotFound)
	}
	return trackers[0], nil
}

// GetTrackerByName looks up a live tracker by exact name.
func (s *Store) GetTrackerByName(name string) (models.Tracker, error) {
	trackers, err := s.selectTrackers(sq.Eq{"name": name, "deleted_at": nil})
	if err != nil {
		return models.Tracker{}, err
	}
	if len(trackers) == 0 {
		return models.Tracker{}, fmt.Errorf("tracker %q: %w", name, storage.ErrNotFound)
	}
	return trackers[0], nil
}

func (s *Store) GetAllTrackers() ([]models.Tracker, error) {
	return s.selectTrackers(sq.Eq{"deleted_at": nil})
}

func (s *Store) GetAllTrackersIncludingDeleted() ([]models.Tracker, error) {
	return s.selectTrackers(nil)
}

// UpdateTracker replaces the mutable fields of a live tracker.
func (s *Store) UpdateTracker(t models.Tracker) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ok, err := s.categoryExists(tx, t.CategoryTitle)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("category %q: %w", t.CategoryTitle, storage.ErrNotFound)
	}

	result, err := tx.Exec(tx.Rebind(`
		UPDATE trackers
		SET name = ?, color = ?, emoji = ?, schedule = ?, kind = ?, category_title = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`),
		t.Name, t.Color, t.Emoji, models.EncodeSchedule(t.Schedule), string(t.Kind),
		t.CategoryTitle, s.timestamp(), t.ID,
	)
	if err != nil {
		if s.isUnique(err) {
			return fmt.Errorf("tracker %q: %w", t.Name, storage.ErrDuplicateValue)
		}
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tracker %s: %w", t.ID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Debug("Tracker updated", "id", t.ID, "name", t.Name)
	return nil
}

// DeleteTracker soft-deletes a live tracker. Its records are kept.
func (s *Store) DeleteTracker(id string) error {
	now := s.timestamp()
	result, err := s.db.Exec(s.rebind("UPDATE trackers SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL"), now, now, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tracker %s: %w", id, storage.ErrNotFound)
	}
	logger.Debug("Tracker deleted", "id", id)
	return nil
}

// RestoreTracker undoes a soft delete. It fails with ErrDuplicateValue when
// another live tracker took the name in the meantime.
func (s *Store) RestoreTracker(id string) error {
	result, err := s.db.Exec(s.rebind("UPDATE trackers SET deleted_at = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NOT NULL"), s.timestamp(), id)
	if err != nil {
		if s.isUnique(err) {
			return fmt.Errorf("tracker %s: %w", id, storage.ErrDuplicateValue)
		}
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("deleted tracker %s: %w", id, storage.ErrNotFound)
	}
	logger.Debug("Tracker restored", "id", id)
	return nil
}
