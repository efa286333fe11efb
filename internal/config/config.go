// Package config manages persistent configuration for scrollsnap.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/likx/scrollsnap/internal/logger"
)

// Manager handles configuration persistence
type Manager struct {
	configPath string
	settings   *Settings
	mu         sync.RWMutex
}

// Dir returns the scrollsnap configuration directory
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "scrollsnap"), nil
}

// NewManager creates a configuration manager backed by the given file,
// or the default config path when configFile is empty. A missing config
// file is created with defaults.
func NewManager(configFile string) (*Manager, error) {
	actualConfigPath := configFile
	if actualConfigPath == "" {
		configDir, err := Dir()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		actualConfigPath = filepath.Join(configDir, "config.yaml")
	}

	m := &Manager{
		configPath: actualConfigPath,
	}

	if err := m.load(); err != nil {
		if os.IsNotExist(err) {
			logger.WithComponent("config").Info().
				Str("path", m.configPath).
				Msg("Config file not found, creating new config")
			m.settings = Defaults()
			if err := m.Save(); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return m, nil
}

// load reads the configuration from disk, filling unset fields with defaults
func (m *Manager) load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	settings := Defaults()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	m.settings = settings
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.RLock()
	data, err := yaml.Marshal(m.settings)
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Get returns the current settings
func (m *Manager) Get() *Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Path returns the config file path in use
func (m *Manager) Path() string {
	return m.configPath
}

// GetValue returns a single configuration value by key
func (m *Manager) GetValue(key string) (interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.settings
	switch key {
	case "save_directory":
		return s.SaveDirectory, nil
	case "default_format":
		return s.DefaultFormat, nil
	case "show_notification":
		return s.ShowNotification, nil
	case "history_size":
		return s.HistorySize, nil
	case "log_level":
		return s.LogLevel, nil
	case "scroll_delay_ms":
		return s.ScrollDelayMs, nil
	case "scroll_max_frames":
		return s.ScrollMaxFrames, nil
	case "scroll_overlap_search":
		return s.ScrollOverlapSearch, nil
	case "scroll_ignore_top":
		return s.ScrollIgnoreTop, nil
	case "scroll_ignore_bottom":
		return s.ScrollIgnoreBottom, nil
	case "scroll_confidence":
		return s.ScrollConfidence, nil
	}
	return nil, fmt.Errorf("unknown config key: %s", key)
}

// SetValue parses and stores a single configuration value by key.
// The change is not persisted until Save is called.
func (m *Manager) SetValue(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.settings
	switch key {
	case "save_directory":
		s.SaveDirectory = value
	case "default_format":
		s.DefaultFormat = value
	case "log_level":
		s.LogLevel = value
	case "show_notification":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q", key, value)
		}
		s.ShowNotification = b
	case "history_size", "scroll_delay_ms", "scroll_max_frames", "scroll_overlap_search":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid integer for %s: %q", key, value)
		}
		switch key {
		case "history_size":
			s.HistorySize = n
		case "scroll_delay_ms":
			s.ScrollDelayMs = n
		case "scroll_max_frames":
			s.ScrollMaxFrames = n
		case "scroll_overlap_search":
			s.ScrollOverlapSearch = n
		}
	case "scroll_ignore_top", "scroll_ignore_bottom", "scroll_confidence":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("invalid fraction for %s: %q (expected 0..1)", key, value)
		}
		switch key {
		case "scroll_ignore_top":
			s.ScrollIgnoreTop = f
		case "scroll_ignore_bottom":
			s.ScrollIgnoreBottom = f
		case "scroll_confidence":
			s.ScrollConfidence = f
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
