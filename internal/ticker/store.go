package ticker

import (
	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/logger"
	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/storage"
)

// StateStore adapts a storage.Provider to the controller's load/save contract.
type StateStore struct {
	provider storage.Provider
}

func NewStateStore(provider storage.Provider) *StateStore {
	return &StateStore{provider: provider}
}

// Load returns the persisted record. Read failures are logged and yield an empty
// record, which the controller treats as "nothing saved".
func (s *StateStore) Load() models.TickerRecord {
	rec, err := s.provider.GetTickerRecord()
	if err != nil {
		logger.Warn("Failed to load ticker state, starting fresh", "error", err)
		return models.TickerRecord{}
	}
	return rec
}

// Save persists cfg with the active flag. A nil cfg flips only the flag.
func (s *StateStore) Save(cfg *models.ShiftConfig, active bool, sessionID string) error {
	if cfg == nil {
		return errors.NewStoreError("save", s.provider.SetActive(active))
	}
	return errors.NewStoreError("save", s.provider.SaveShift(*cfg, active, sessionID))
}
