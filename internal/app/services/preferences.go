package services

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chmouel/lazystrings/internal/resource"
)

const (
	defaultFilePerms = 0o600
	defaultDirPerms  = 0o750

	// PreferencesFilename is the file name used under the state directory.
	PreferencesFilename = "prefs.json"
)

// Preferences is the UI state remembered across runs.
type Preferences struct {
	SelectedFile   string `json:"selected_file"`
	SelectedName   string `json:"selected_name"`
	ShowFileColumn bool   `json:"show_file_column"`
}

// DefaultPreferences shows every file, no name filter and the file column.
func DefaultPreferences() Preferences {
	return Preferences{
		SelectedFile:   resource.AllFiles,
		SelectedName:   "",
		ShowFileColumn: true,
	}
}

// PreferencesService loads and stores Preferences as JSON at a fixed path.
type PreferencesService struct {
	path string
}

// NewPreferencesService creates a service persisting to path.
func NewPreferencesService(path string) *PreferencesService {
	return &PreferencesService{path: path}
}

// Path returns the backing file.
func (p *PreferencesService) Path() string {
	return p.path
}

// Load returns the stored preferences. Keys absent from the file, or a file
// that does not exist yet, keep their defaults.
func (p *PreferencesService) Load() (Preferences, error) {
	prefs := DefaultPreferences()
	if p.path == "" {
		return prefs, nil
	}

	// #nosec G304 -- path comes from configuration or the state directory
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, err
	}

	if err := json.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences(), err
	}
	if prefs.SelectedFile == "" {
		prefs.SelectedFile = resource.AllFiles
	}
	return prefs, nil
}

// Save writes prefs, creating the parent directory when needed.
func (p *PreferencesService) Save(prefs Preferences) error {
	if p.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.path), defaultDirPerms); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, defaultFilePerms)
}
