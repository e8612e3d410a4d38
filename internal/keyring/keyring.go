package keyring

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/paytick/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string is stored
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// probeUser is read to test keyring access; nothing is ever stored under it
const probeUser = "availability-probe"

// GetConnectionString retrieves the PostgreSQL connection string for paytick.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the connection string. Unlike the --config flag,
// the keyring may hold a string with an embedded password.
func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the stored connection string.
func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable is a best-effort check that the OS keyring answers reads.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, probeUser)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Mask hides the password of a connection string for display.
// URL passwords become "xxxxx"; DSN password values become "****".
func Mask(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return "<unparseable connection string>"
		}
		return u.Redacted()
	}

	fields := strings.Fields(connStr)
	for i, field := range fields {
		key, _, ok := strings.Cut(field, "=")
		if ok && strings.EqualFold(key, "password") {
			fields[i] = key + "=****"
		}
	}
	return strings.Join(fields, " ")
}
