package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"snapsearch/internal/domain"
)

// Preferences is the locally persisted UI state
type Preferences struct {
	Theme string `toml:"theme"`
}

// PreferenceStore reads and writes Preferences as TOML
type PreferenceStore struct {
	path string
}

// NewPreferenceStore creates a store for the file at path
func NewPreferenceStore(path string) *PreferenceStore {
	return &PreferenceStore{path: path}
}

// Path returns the backing file path
func (s *PreferenceStore) Path() string {
	return s.path
}

// Load reads preferences. A missing file yields the light theme.
func (s *PreferenceStore) Load() (Preferences, error) {
	prefs := Preferences{Theme: string(domain.ThemeLight)}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("failed to read state file: %w", err)
	}

	var stored Preferences
	if err := toml.Unmarshal(data, &stored); err != nil {
		return prefs, fmt.Errorf("failed to parse state file: %w", err)
	}
	prefs.Theme = string(domain.ParseTheme(stored.Theme))
	return prefs, nil
}

// LoadTheme returns the stored theme, falling back to light on any error
func (s *PreferenceStore) LoadTheme() (domain.Theme, error) {
	prefs, err := s.Load()
	return domain.ParseTheme(prefs.Theme), err
}

// Save writes preferences, creating the parent directory if needed
func (s *PreferenceStore) Save(prefs Preferences) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := toml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// SaveTheme persists theme
func (s *PreferenceStore) SaveTheme(theme domain.Theme) error {
	return s.Save(Preferences{Theme: string(theme)})
}
