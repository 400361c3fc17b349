package storage

import "github.com/julianstephens/tracker/internal/models"

// RecordFilter narrows a record listing. Zero values mean "no constraint".
type RecordFilter struct {
	TrackerID string
	FromDay   string // inclusive, YYYY-MM-DD
	ToDay     string // inclusive, YYYY-MM-DD
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Categories
	AddCategory(title string) error
	GetCategory(title string) (models.TrackerCategory, error)
	// GetAllCategories returns every category with its live trackers nested.
	GetAllCategories() ([]models.TrackerCategory, error)
	DeleteCategory(title string) error

	// Trackers
	AddTracker(models.Tracker) error
	GetTracker(id string) (models.Tracker, error)
	GetTrackerByName(name string) (models.Tracker, error)
	GetAllTrackers() ([]models.Tracker, error)
	GetAllTrackersIncludingDeleted() ([]models.Tracker, error)
	UpdateTracker(models.Tracker) error
	DeleteTracker(id string) error
	RestoreTracker(id string) error

	// Records
	// AddRecord is insert-or-ignore on (tracker_id, day).
	AddRecord(models.TrackerRecord) error
	DeleteRecord(trackerID, day string) error
	HasRecord(trackerID, day string) (bool, error)
	CountRecords(trackerID string) (int, error)
	// CountRecordsByDay counts records of live trackers per day.
	CountRecordsByDay() (map[string]int, error)
	GetRecords(RecordFilter) ([]models.TrackerRecord, error)

	// Bulk Retrieval for Migration
	GetAllRecords() ([]models.TrackerRecord, error)

	// Utils
	GetConfigPath() string
}
