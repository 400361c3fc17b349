package sqlstore

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

type recordRow struct {
	ID        string `db:"id"`
	TrackerID string `db:"tracker_id"`
	Day       string `db:"day"`
	CreatedAt string `db:"created_at"`
}

// AddRecord marks the tracker done on r.Day. A second mark for the same day
// is ignored. The tracker must exist and be live.
func (s *Store) AddRecord(r models.TrackerRecord) error {
	var live int
	if err := s.db.Get(&live, s.rebind("SELECT COUNT(*) FROM trackers WHERE id = ? AND deleted_at IS NULL"), r.TrackerID); err != nil {
		return err
	}
	if live == 0 {
		return fmt.Errorf("tracker %s: %w", r.TrackerID, storage.ErrNotFound)
	}

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt == "" {
		r.CreatedAt = s.timestamp()
	}

	_, err := s.db.Exec(s.rebind(`
		INSERT INTO records (id, tracker_id, day, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (tracker_id, day) DO NOTHING`),
		r.ID, r.TrackerID, r.Day, r.CreatedAt,
	)
	if err != nil {
		return err
	}
	logger.Debug("Record added", "tracker", r.TrackerID, "day", r.Day)
	return nil
}

func (s *Store) DeleteRecord(trackerID, day string) error {
	result, err := s.db.Exec(s.rebind("DELETE FROM records WHERE tracker_id = ? AND day = ?"), trackerID, day)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("record %s on %s: %w", trackerID, day, storage.ErrNotFound)
	}
	logger.Debug("Record deleted", "tracker", trackerID, "day", day)
	return nil
}

func (s *Store) HasRecord(trackerID, day string) (bool, error) {
	var count int
	if err := s.db.Get(&count, s.rebind("SELECT COUNT(*) FROM records WHERE tracker_id = ? AND day = ?"), trackerID, day); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CountRecords(trackerID string) (int, error) {
	var count int
	if err := s.db.Get(&count, s.rebind("SELECT COUNT(*) FROM records WHERE tracker_id = ?"), trackerID); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) CountRecordsByDay() (map[string]int, error) {
	var rows []struct {
		Day   string `db:"day"`
		Count int    `db:"count"`
	}
	err := s.db.Select(&rows, `
		SELECT r.day AS day, COUNT(*) AS count
		FROM records r
		JOIN trackers t ON t.id = r.tracker_id
		WHERE t.deleted_at IS NULL
		GROUP BY r.day`)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Day] = r.Count
	}
	return counts, nil
}

// GetRecords lists records ordered by day then tracker id.
func (s *Store) GetRecords(filter storage.RecordFilter) ([]models.TrackerRecord, error) {
	query := s.builder.
		Select("id", "tracker_id", "day", "created_at").
		From("records").
		OrderBy("day", "tracker_id")
	if filter.TrackerID != "" {
		query = query.Where(sq.Eq{"tracker_id": filter.TrackerID})
	}
	if filter.FromDay != "" {
		query = query.Where(sq.GtOrEq{"day": filter.FromDay})
	}
	if filter.ToDay != "" {
		query = query.Where(sq.LtOrEq{"day": filter.ToDay})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []recordRow
	if err := s.db.Select(&rows, stmt, args...); err != nil {
		return nil, err
	}

	records := make([]models.TrackerRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, models.TrackerRecord(r))
	}
	return records, nil
}

func (s *Store) GetAllRecords() ([]models.TrackerRecord, error) {
	return s.GetRecords(storage.RecordFilter{})
}
