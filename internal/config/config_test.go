package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	for _, key := range []string{
		"TRACKER_DB", "TRACKER_DB_CONNECTION", "TRACKER_USE_KEYRING", "TRACKER_DEBUG",
		"TRACKER_LOG_DIR", "TRACKER_TIMEZONE", "TRACKER_KEYRING_SERVICE", "TRACKER_KEYRING_USER",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "~/.config/tracker/tracker.db", cfg.Database.Path)
	assert.False(t, cfg.Database.UseKeyring)
	assert.False(t, cfg.Log.Debug)
	assert.Equal(t, "tracker", cfg.Keyring.Service)
	assert.Equal(t, "database-connection", cfg.Keyring.User)
}

func TestLoadFileAndEnvPriority(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /data/habits.db
log:
  debug: true
timezone: Europe/Moscow
`), 0600))
	t.Setenv(EnvConfigPath, path)
	t.Setenv("TRACKER_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/habits.db", cfg.Database.Path)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, "UTC", cfg.Timezone, "env wins over yaml")
}

func TestLoadDefaultFileLocation(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "tracker")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database:\n  use_keyring: true\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Database.UseKeyring)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	home := isolate(t)
	t.Setenv(EnvConfigPath, filepath.Join(home, "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Database: DatabaseConfig{Path: "x.db"}}, false},
		{"empty path", Config{}, true},
		{"bad timezone", Config{Database: DatabaseConfig{Path: "x.db"}, Timezone: "Mars/Base"}, true},
		{"keyring without user", Config{Database: DatabaseConfig{Path: "x.db", UseKeyring: true}, Keyring: KeyringConfig{Service: "tracker"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveDatabase(t *testing.T) {
	home := isolate(t)
	secret := func() (string, error) { return "postgres://app:secret@db/tracker", nil }

	t.Run("override wins", func(t *testing.T) {
		cfg := Config{Database: DatabaseConfig{Path: "~/a.db", Connection: "postgres://x@y/z"}}
		target, trusted, err := cfg.ResolveDatabase("~/b.db", secret)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "b.db"), target)
		assert.False(t, trusted)
	})

	t.Run("environment connection is trusted", func(t *testing.T) {
		cfg := Config{Database: DatabaseConfig{Path: "~/a.db", Connection: "postgres://u:p@h/d"}}
		target, trusted, err := cfg.ResolveDatabase("", secret)
		require.NoError(t, err)
		assert.Equal(t, "postgres://u:p@h/d", target)
		assert.True(t, trusted)
	})

	t.Run("keyring", func(t *testing.T) {
		cfg := Config{Database: DatabaseConfig{Path: "~/a.db", UseKeyring: true}}
		target, trusted, err := cfg.ResolveDatabase("", secret)
		require.NoError(t, err)
		assert.Equal(t, "postgres://app:secret@db/tracker", target)
		assert.True(t, trusted)
	})

	t.Run("keyring failure", func(t *testing.T) {
		cfg := Config{Database: DatabaseConfig{Path: "~/a.db", UseKeyring: true}}
		_, _, err := cfg.ResolveDatabase("", func() (string, error) { return "", errors.New("locked") })
		assert.Error(t, err)
	})

	t.Run("path fallback", func(t *testing.T) {
		cfg := Config{Database: DatabaseConfig{Path: "~/a.db"}}
		target, trusted, err := cfg.ResolveDatabase("", secret)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "a.db"), target)
		assert.False(t, trusted)
	})
}
