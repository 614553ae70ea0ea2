// ABOUTME: Viaggio configuration management
// ABOUTME: Handles data paths, tracking parameters, and store construction

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmarchetti/viaggio/internal/session"
	"github.com/dmarchetti/viaggio/internal/storage"
)

// Tracking holds the session tracking parameters. Zero values fall back to
// the session package defaults.
type Tracking struct {
	// UpdateIntervalSeconds is the minimum time between location updates.
	UpdateIntervalSeconds int `json:"update_interval_seconds,omitempty"`

	// MinDisplacementMeters is the minimum movement between updates.
	MinDisplacementMeters float64 `json:"min_displacement_meters,omitempty"`

	// NoiseFloorKM is the minimum increment counted toward trip distance.
	NoiseFloorKM float64 `json:"noise_floor_km,omitempty"`
}

// Config stores viaggio configuration.
type Config struct {
	// DataDir is the root directory for data storage; viaggio.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/viaggio.
	DataDir string `json:"data_dir,omitempty"`

	// Tracking configures the session controller.
	Tracking Tracking `json:"tracking,omitempty"`

	// LogLevel sets the zerolog level: debug, info, warn, or error.
	LogLevel string `json:"log_level,omitempty"`
}

// dbFilename is the SQLite database filename inside DataDir.
const dbFilename = "viaggio.db"

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// SessionOptions converts the tracking settings into session options.
// Unset fields stay zero and pick up the session defaults.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		UpdateInterval:   time.Duration(c.Tracking.UpdateIntervalSeconds) * time.Second,
		MinDisplacementM: c.Tracking.MinDisplacementMeters,
		NoiseFloorKM:     c.Tracking.NoiseFloorKM,
	}
}

// defaultDataDir returns the default XDG data directory for viaggio.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "viaggio")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DBPath returns the full path of the SQLite database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), dbFilename)
}

// OpenStore creates the SQLite store at the configured path.
func (c *Config) OpenStore() (*storage.SQLiteStore, error) {
	return storage.NewSQLiteStore(c.DBPath())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "viaggio", "config.json")
}

// Load reads config from disk. A missing file yields the defaults and is
// not an error.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
