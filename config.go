package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".highlight-sync"

//go:embed config/settings.yaml
var defaultSettings string

// Settings represents the YAML configuration structure
type Settings struct {
	KeyField       string `yaml:"key_field"`
	Extension      string `yaml:"extension"`
	FollowSymlinks bool   `yaml:"follow_symlinks"`
}

// ScanOptions returns the scanner options derived from the settings
func (s *Settings) ScanOptions() ScanOptions {
	return ScanOptions{
		Extension:      s.Extension,
		FollowSymlinks: s.FollowSymlinks,
	}
}

// GetConfigPath returns the full path to a config file
func GetConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// LoadConfig loads settings from an explicit path, or from the default
// location with fallback to the embedded defaults.
func LoadConfig(explicitPath string) (*Settings, error) {
	if explicitPath != "" {
		settings, err := loadSettingsRequired(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("loading settings %s: %w", explicitPath, err)
		}
		return settings, nil
	}

	settings, err := loadSettings(GetConfigPath("settings.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return settings, nil
}

// DefaultSettings returns the embedded settings
func DefaultSettings() *Settings {
	var settings Settings
	if err := yaml.Unmarshal([]byte(defaultSettings), &settings); err != nil {
		panic(fmt.Sprintf("embedded settings.yaml is invalid: %v", err))
	}
	return &settings
}

// loadSettings loads settings from YAML file with fallback to defaults
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if os.IsNotExist(err) {
		debugLog("no settings at %s, using defaults", settingsPath)
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return parseSettings(data)
}

// loadSettingsRequired loads settings from YAML file, failing if file doesn't exist
func loadSettingsRequired(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}
	return parseSettings(data)
}

// parseSettings overlays data onto the embedded defaults
func parseSettings(data []byte) (*Settings, error) {
	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	settings.KeyField = strings.TrimSpace(settings.KeyField)
	settings.Extension = strings.TrimPrefix(strings.TrimSpace(settings.Extension), ".")

	if err := settings.validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Settings) validate() error {
	if s.KeyField == "" {
		return fmt.Errorf("key_field must not be empty")
	}
	if s.Extension == "" {
		return fmt.Errorf("extension must not be empty")
	}
	if strings.ContainsAny(s.Extension, `./\`) {
		return fmt.Errorf("invalid extension %q", s.Extension)
	}
	return nil
}
