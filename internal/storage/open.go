package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/paytick/internal/constants"
	"github.com/julianstephens/paytick/internal/keyring"
	"github.com/julianstephens/paytick/internal/logger"
	"github.com/julianstephens/paytick/internal/storage/postgres"
	"github.com/julianstephens/paytick/internal/storage/sqlite"
	"github.com/julianstephens/paytick/internal/utils"
)

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*MemoryStore)(nil)

	_ Migrator = (*sqlite.Store)(nil)
	_ Migrator = (*postgres.Store)(nil)
)

// Source records where a store location came from
type Source string

const (
	SourceFlag        Source = "flag"
	SourceEnvironment Source = "environment"
	SourceKeyring     Source = "keyring"
	SourceDefault     Source = "default"
)

// ResolveConnection picks the store location. A PostgreSQL connection string from
// the environment or the OS keyring wins over the default SQLite path; an explicit
// non-default config always wins.
func ResolveConnection(config string) (string, Source) {
	if config != "" && config != constants.DefaultConfigPath {
		return config, SourceFlag
	}
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		return env, SourceEnvironment
	}
	conn, err := keyring.GetConnectionString()
	if err == nil && conn != "" {
		return conn, SourceKeyring
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("keyring lookup skipped", "error", err)
	}
	return constants.DefaultConfigPath, SourceDefault
}

// Open builds the provider for config: a PostgreSQL URL or DSN, a ".json" path,
// ":memory:", or a SQLite database path. The provider is not initialized or loaded.
// Connection strings passed on the command line must not embed a password; the
// environment and keyring are the places for those.
func Open(config string, source Source) (Provider, error) {
	switch {
	case config == ":memory:":
		return NewMemoryStore(), nil

	case utils.IsPostgresConnString(config) || looksLikeDSN(config):
		if source == SourceFlag {
			if _, err := postgres.ValidateConnString(config); err != nil {
				return nil, err
			}
		}
		return postgres.New(config), nil
	}

	path, err := utils.ExpandPath(config)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", config, err)
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

func looksLikeDSN(s string) bool {
	return strings.Contains(s, "host=") || strings.Contains(s, "dbname=")
}
