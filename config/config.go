package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds the saved defaults for a tuning dump. Command-line flags
// override whatever is stored here.
type Config struct {
	DeviceID        int    `json:"deviceId,omitempty"`
	TuningProgram   int    `json:"tuningProgram,omitempty"`
	StartingNote    string `json:"startingNote,omitempty"`
	NotesPerMessage int    `json:"notesPerMessage,omitempty"`
	PrettyPrint     bool   `json:"prettyPrint,omitempty"`
}

// DefaultConfig returns the out-of-the-box defaults: device 127 ("all
// devices"), tuning program 0, the full per-message note budget.
func DefaultConfig() *Config {
	return &Config{
		DeviceID:        0x7F,
		TuningProgram:   0,
		StartingNote:    "C",
		NotesPerMessage: 0x7F,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mts-dumper"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
