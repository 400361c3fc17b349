package sqlstore

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

type settingRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

func (s *Store) GetSettings() (models.Settings, error) {
	var rows []settingRow
	if err := s.db.Select(&rows, "SELECT key, value FROM settings"); err != nil {
		return models.Settings{}, err
	}
	if len(rows) == 0 {
		return models.Settings{}, fmt.Errorf("settings: %w", storage.ErrNotFound)
	}

	data := make(map[string]string, len(rows))
	for _, r := range rows {
		data[r.Key] = r.Value
	}
	settings, err := models.MapToSettings(data)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", storage.ErrInvalidStore, err)
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(s.rebind(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("saving setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}
