package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/utils"
)

// EnvConfigPath overrides the location of config.yaml.
const EnvConfigPath = "TRACKER_CONFIG"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// A missing default file is not an error; a missing explicit one is.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv(EnvConfigPath)
	explicitPath := path != ""
	if !explicitPath {
		path = filepath.Join(constants.DefaultConfigDir, "config.yaml")
	}
	path, err := utils.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks values that cannot be expressed with struct tags.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path must not be empty")
	}
	if c.Timezone != "" && !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("timezone %q is not a valid IANA timezone", c.Timezone)
	}
	if c.Database.UseKeyring && (c.Keyring.Service == "" || c.Keyring.User == "") {
		return errors.New("keyring.service and keyring.user are required when database.use_keyring is set")
	}
	return nil
}

// ResolveDatabase picks the database target. In priority order: an explicit
// override (the --db flag), TRACKER_DB_CONNECTION, the keyring when enabled,
// then database.path. trusted reports whether the value came from a secret
// source, where embedded credentials are allowed.
func (c *Config) ResolveDatabase(override string, lookupSecret func() (string, error)) (target string, trusted bool, err error) {
	switch {
	case override != "":
		target = override
	case c.Database.Connection != "":
		return c.Database.Connection, true, nil
	case c.Database.UseKeyring && lookupSecret != nil:
		secret, err := lookupSecret()
		if err != nil {
			return "", false, fmt.Errorf("reading connection string from keyring: %w", err)
		}
		return secret, true, nil
	default:
		target = c.Database.Path
	}

	target, err = utils.ExpandHome(target)
	if err != nil {
		return "", false, err
	}
	return target, false, nil
}

// LogDir returns the directory holding logs/, defaulting to the config dir.
func (c *Config) LogDir() (string, error) {
	if c.Log.Dir != "" {
		return utils.ExpandHome(c.Log.Dir)
	}
	return utils.ExpandHome(constants.DefaultConfigDir)
}
