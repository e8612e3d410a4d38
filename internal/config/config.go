// Package config loads paytick's user settings from a YAML file and reports edits to it.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/paytick/internal/constants"
	"github.com/julianstephens/paytick/internal/logger"
	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/utils"
)

// fileSettings mirrors models.Settings with optional fields so that missing
// keys fall back to defaults while explicit zeroes are kept.
type fileSettings struct {
	AnnualWorkdays       *int  `yaml:"annual_workdays,omitempty"`
	DaysOff              *int  `yaml:"days_off,omitempty"`
	CooldownMin          *int  `yaml:"cooldown_min,omitempty"`
	NotificationsEnabled *bool `yaml:"notifications_enabled,omitempty"`
	Debug                *bool `yaml:"debug,omitempty"`
}

// Manager owns the settings file and the last successfully loaded settings
type Manager struct {
	path string

	mu       sync.RWMutex
	settings models.Settings
}

// DefaultPath is config.yaml under the default settings directory
func DefaultPath() string {
	return filepath.Join(constants.DefaultSettingsDir, constants.SettingsFileName)
}

// NewManager creates a manager for the file at path, holding default settings until Load.
func NewManager(path string) (*Manager, error) {
	expanded, err := utils.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	return &Manager{path: expanded, settings: models.DefaultSettings()}, nil
}

// Path returns the resolved settings file path
func (m *Manager) Path() string {
	return m.path
}

// Settings returns the current settings
func (m *Manager) Settings() models.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Load reads the settings file. A missing file leaves the defaults in place.
func (m *Manager) Load() (models.Settings, error) {
	settings, err := read(m.path)
	if err != nil {
		return m.Settings(), err
	}

	m.mu.Lock()
	m.settings = settings
	m.mu.Unlock()
	return settings, nil
}

// Save writes settings to the file and makes them current
func (m *Manager) Save(settings models.Settings) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := fileSettings{
		AnnualWorkdays:       &settings.AnnualWorkdays,
		DaysOff:              &settings.DaysOff,
		CooldownMin:          &settings.CooldownMin,
		NotificationsEnabled: &settings.NotificationsEnabled,
		Debug:                &settings.Debug,
	}
	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(m.path, serialized, 0o600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	m.mu.Lock()
	m.settings = settings
	m.mu.Unlock()
	return nil
}

// Exists reports whether the settings file has been written
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Watch calls fn with the new settings whenever the file changes to different,
// parseable contents. It returns once the watcher is installed; watching stops
// when ctx is done.
func (m *Manager) Watch(ctx context.Context, fn func(models.Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}

	// Watch the directory: editors often replace the file rather than write to it
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		watcher.Close()
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(m.path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				m.reload(fn)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Settings watcher error", "error", err)
			}
		}
	}()

	return nil
}

func (m *Manager) reload(fn func(models.Settings)) {
	previous := m.Settings()
	settings, err := m.Load()
	if err != nil {
		logger.Warn("Ignoring unreadable settings file", "path", m.path, "error", err)
		return
	}
	if settings == previous {
		return
	}
	logger.Info("Settings changed", "path", m.path)
	fn(settings)
}

func read(path string) (models.Settings, error) {
	settings := models.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData fileSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyFileSettings(&settings, fileData)
	return settings, nil
}

func applyFileSettings(settings *models.Settings, fileData fileSettings) {
	if fileData.AnnualWorkdays != nil {
		settings.AnnualWorkdays = *fileData.AnnualWorkdays
	}
	if fileData.DaysOff != nil {
		settings.DaysOff = *fileData.DaysOff
	}
	if fileData.CooldownMin != nil {
		settings.CooldownMin = *fileData.CooldownMin
	}
	if fileData.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *fileData.NotificationsEnabled
	}
	if fileData.Debug != nil {
		settings.Debug = *fileData.Debug
	}
}
