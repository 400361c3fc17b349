package config

// Config is the application configuration read from config.yaml and
// TRACKER_* environment variables. Per-user preferences that the UI can
// change live in the store's settings table instead.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Keyring  KeyringConfig  `yaml:"keyring"`
	// Timezone overrides the stored timezone setting when non-empty.
	Timezone string `yaml:"timezone" env:"TRACKER_TIMEZONE"`
}

// DatabaseConfig selects the backend. A postgres:// or postgresql:// value
// selects PostgreSQL; anything else is a SQLite file path.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"TRACKER_DB" env-default:"~/.config/tracker/tracker.db"`
	// Connection may carry credentials, so it is read from the environment only.
	Connection string `yaml:"-"           env:"TRACKER_DB_CONNECTION"`
	UseKeyring bool   `yaml:"use_keyring" env:"TRACKER_USE_KEYRING" env-default:"false"`
}

type LogConfig struct {
	Debug bool   `yaml:"debug" env:"TRACKER_DEBUG"   env-default:"false"`
	Dir   string `yaml:"dir"   env:"TRACKER_LOG_DIR"`
}

type KeyringConfig struct {
	Service string `yaml:"service" env:"TRACKER_KEYRING_SERVICE" env-default:"tracker"`
	User    string `yaml:"user"    env:"TRACKER_KEYRING_USER"    env-default:"database-connection"`
}
