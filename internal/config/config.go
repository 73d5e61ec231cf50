// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// ripple TUI.
//
// Configuration is TOML with sensible defaults and validation. File
// location (in order of precedence):
//   - $RIPPLE_CONFIG (explicit path)
//   - ~/.ripple/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ripple configuration.
type Config struct {
	Version string `toml:"version"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// List configuration (the message list renderer)
	List ListConfig `toml:"list"`

	// History configuration (local message store)
	History HistoryConfig `toml:"history"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// ViewMode is the message density: "compact", "comfortable", "spacious"
	ViewMode string `toml:"view_mode"`
	// Theme is the color theme name
	Theme string `toml:"theme"`
	// ShowTimestamps toggles per-message timestamps
	ShowTimestamps bool `toml:"show_timestamps"`
}

// ListConfig tunes the virtualized message list.
type ListConfig struct {
	// GroupingWindowSeconds is the max gap between consecutive
	// same-sender messages for them to render without a repeated header
	GroupingWindowSeconds int `toml:"grouping_window_seconds"`
	// Overscan is the number of extra items materialized beyond the
	// visible window on each side
	Overscan int `toml:"overscan"`
	// NearBottomRows is the distance from the bottom, in rows, within
	// which new messages auto-scroll the view
	NearBottomRows int `toml:"near_bottom_rows"`
}

// HistoryConfig configures the local message store.
type HistoryConfig struct {
	// DatabasePath is where the SQLite history database lives.
	// Empty means ~/.ripple/history.db
	DatabasePath string `toml:"database_path"`
	// PageSize is how many messages one history page loads
	PageSize int `toml:"page_size"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		UI: UIConfig{
			ViewMode:       "comfortable",
			Theme:          "dusk",
			ShowTimestamps: true,
		},
		List: ListConfig{
			GroupingWindowSeconds: 300,
			Overscan:              5,
			NearBottomRows:        6,
		},
		History: HistoryConfig{
			PageSize: 200,
		},
	}
}

// GroupingWindow returns the grouping window as a duration.
func (c *Config) GroupingWindow() time.Duration {
	return time.Duration(c.List.GroupingWindowSeconds) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the ripple configuration directory (~/.ripple).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ripple"), nil
}

// Path returns the config file path, honoring $RIPPLE_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("RIPPLE_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, falling back to defaults when the file
// does not exist. A malformed file is an error; a missing one is not.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads a config file from an explicit path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as TOML. Parent directories are created.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml")
	if err != nil {
		return err
	}
	tmp := f.Name()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	// RELIABILITY: fsync then rename so a crash never truncates the config.
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// =============================================================================
// VALIDATION
// =============================================================================

// normalize fills zero values with defaults so a partial config file
// does not zero out tuning knobs.
func (c *Config) normalize() {
	def := Default()
	if c.UI.ViewMode == "" {
		c.UI.ViewMode = def.UI.ViewMode
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.List.GroupingWindowSeconds <= 0 {
		c.List.GroupingWindowSeconds = def.List.GroupingWindowSeconds
	}
	if c.List.Overscan <= 0 {
		c.List.Overscan = def.List.Overscan
	}
	if c.List.NearBottomRows <= 0 {
		c.List.NearBottomRows = def.List.NearBottomRows
	}
	if c.History.PageSize <= 0 {
		c.History.PageSize = def.History.PageSize
	}
}

// Validate checks field values that normalize cannot repair.
func (c *Config) Validate() error {
	switch c.UI.ViewMode {
	case "compact", "comfortable", "spacious":
	default:
		return fmt.Errorf("config: unknown view_mode %q", c.UI.ViewMode)
	}
	return nil
}

// =============================================================================
// GLOBAL INSTANCE
// =============================================================================

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Global returns the global configuration, loading it on first use.
func Global() *Config {
	globalMu.RLock()
	if globalCfg != nil {
		defer globalMu.RUnlock()
		return globalCfg
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalCfg == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalCfg = cfg
	}
	return globalCfg
}

// SetGlobal replaces the global configuration. Thread-safe.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// ResetGlobalForTesting clears the global instance.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = nil
}
