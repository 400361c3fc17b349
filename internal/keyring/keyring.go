package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/tracker/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Secret addresses one keyring entry holding a database connection string.
type Secret struct {
	Service string
	User    string
}

// Default returns the entry used when no config overrides it.
func Default() Secret {
	return Secret{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

// Get retrieves the connection string. Returns ErrNotFound if nothing is stored.
func (s Secret) Get() (string, error) {
	connStr, err := keyring.Get(s.Service, s.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func (s Secret) Set(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(s.Service, s.User, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (s Secret) Delete() error {
	if err := keyring.Delete(s.Service, s.User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable is a best-effort probe: a read that fails with anything but
// ErrNotFound means there is no usable keyring.
func (s Secret) IsAvailable() bool {
	_, err := keyring.Get(s.Service, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
