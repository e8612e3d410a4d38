package storage

import "github.com/julianstephens/paytick/internal/models"

// Provider persists the single ticker record: the last configured shift and
// whether a run is active.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Ticker state
	GetTickerRecord() (models.TickerRecord, error)
	// SaveShift replaces the stored shift and active flag in one write.
	SaveShift(cfg models.ShiftConfig, active bool, sessionID string) error
	// SetActive flips the active flag and leaves the stored shift in place.
	SetActive(active bool) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by the SQL-backed providers
type Migrator interface {
	SchemaVersion() (current, latest int, err error)
	Migrate(logFn func(string)) (int, error)
}
