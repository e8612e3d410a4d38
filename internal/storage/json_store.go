package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/models"
)

// jsonDocument is the on-disk layout of a JSON store
type jsonDocument struct {
	Version int                 `json:"version"`
	Ticker  models.TickerRecord `json:"ticker"`
}

// JSONStore keeps the ticker record in a single JSON file
type JSONStore struct {
	path string

	mu  sync.Mutex
	doc *jsonDocument
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.loadLocked()
	}

	s.doc = &jsonDocument{Version: 1}
	return s.saveLocked()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *JSONStore) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &jsonDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// saveLocked writes through a temp file so a crash never leaves half a document
func (s *JSONStore) saveLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetTickerRecord() (models.TickerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return models.TickerRecord{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.Ticker, nil
}

func (s *JSONStore) SaveShift(cfg models.ShiftConfig, active bool, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	rec := models.RecordFor(cfg, active, sessionID)
	rec.UpdatedAt = time.Now()
	s.doc.Ticker = rec
	return s.saveLocked()
}

func (s *JSONStore) SetActive(active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Ticker.Active = active
	s.doc.Ticker.UpdatedAt = time.Now()
	return s.saveLocked()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
