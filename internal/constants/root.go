package constants

const (
	AppName            = "tracker"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/tracker"
	DefaultConfigPath  = "~/.config/tracker/tracker.db"
	Version            = "v0.3.0"

	// DayFormat is the format of the day key stored on completion records (YYYY-MM-DD)
	DayFormat = "2006-01-02"

	// MaxTrackerNameLength is the longest tracker name accepted, in characters
	MaxTrackerNameLength = 38

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tracker-"
	BackupFileSuffix = ".db"

	// Tracker kinds
	KindHabit = "habit"
	KindEvent = "event"

	// EnvDBConnection holds a full database connection string, credentials allowed
	EnvDBConnection = "TRACKER_DB_CONNECTION"
)
