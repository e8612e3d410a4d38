package storage

import (
	"sync"
	"time"

	"github.com/julianstephens/paytick/internal/models"
)

// MemoryStore keeps the ticker record in process memory. Used by tests and --ephemeral runs.
type MemoryStore struct {
	mu     sync.Mutex
	record models.TickerRecord

	// Err, when set, is returned by every write
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetTickerRecord() (models.TickerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record, nil
}

func (s *MemoryStore) SaveShift(cfg models.ShiftConfig, active bool, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.record = models.RecordFor(cfg, active, sessionID)
	s.record.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) SetActive(active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.record.Active = active
	s.record.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
