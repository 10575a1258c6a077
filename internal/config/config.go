// Package config loads the terapi configuration file. Every field has a
// default, so a missing file is not an error: the app runs out of the
// box against ~/.terapi.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Notifications configures the ntfy push notice sent when a session ends.
type Notifications struct {
	Enabled        bool   `toml:"enabled"`
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Config is the full application configuration.
type Config struct {
	// DataDir holds the database, lock file, and log file.
	DataDir  string `toml:"data_dir"`
	LogLevel string `toml:"log_level"`

	// AllowedSerials, when non-empty, restricts registration to the
	// listed serial numbers. Enforced by the registration form, not by
	// the store.
	AllowedSerials []string `toml:"allowed_serials"`

	Notifications Notifications `toml:"notifications"`
}

// Default returns the built-in configuration rooted at dataDir.
func Default(dataDir string) *Config {
	return &Config{
		DataDir:  dataDir,
		LogLevel: "info",
		Notifications: Notifications{
			Enabled:        true,
			RequestTimeout: 10,
		},
	}
}

// Load reads config.toml from dataDir, overlaying it on the defaults.
// A missing file yields the defaults unchanged.
func Load(dataDir string) (*Config, error) {
	cfg := Default(dataDir)

	path := filepath.Join(dataDir, "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// DBPath returns the SQLite database location.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "therapy_history.db")
}

// LockPath returns the single-instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "terapi.lock")
}

// LogPath returns the log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "terapi.log")
}

// SerialAllowed reports whether the serial number may register.
// An empty allow-list permits everything.
func (c *Config) SerialAllowed(serial string) bool {
	if len(c.AllowedSerials) == 0 {
		return true
	}
	for _, s := range c.AllowedSerials {
		if s == serial {
			return true
		}
	}
	return false
}
