// Package config holds the tunable knobs of the declutter session. Values
// come from defaults, then ~/.config/desksweep/config.yaml, then environment
// overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultLocation = "~/Desktop"

// Config carries every threshold the suggestion rules and session engine use
type Config struct {
	Location string `yaml:"location"`

	// Bin behaviour: "immediate" sends files to the trash as decided,
	// "deferred" collects them for review first.
	BinMode string `yaml:"bin_mode"`

	UndoDepth int `yaml:"undo_depth"`

	// Suggestion engine
	DebounceMs       int `yaml:"debounce_ms"`
	ComparisonWindow int `yaml:"comparison_window"`

	// Detection thresholds
	OldFileDays     int `yaml:"old_file_days"`
	LargeFileMB     int `yaml:"large_file_mb"`
	SameSessionMins int `yaml:"same_session_mins"`
	SimilarNamesMin int `yaml:"similar_names_min"`
	KeepNewestCount int `yaml:"keep_newest_count"`
	AgedMemberDays  int `yaml:"aged_member_days"`

	// Thumbnails
	ThumbnailWorkers   int `yaml:"thumbnail_workers"`
	ThumbnailCacheSize int `yaml:"thumbnail_cache_size"`
	ThumbnailMaxPixels int `yaml:"thumbnail_max_pixels"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Location:           DefaultLocation,
		BinMode:            "immediate",
		UndoDepth:          50,
		DebounceMs:         100,
		ComparisonWindow:   100,
		OldFileDays:        90,
		LargeFileMB:        50,
		SameSessionMins:    3,
		SimilarNamesMin:    3,
		KeepNewestCount:    5,
		AgedMemberDays:     7,
		ThumbnailWorkers:   2,
		ThumbnailCacheSize: 128,
		ThumbnailMaxPixels: 256,
	}
}

// Load reads the user configuration, falling back to defaults for missing
// values. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	applyEnv(cfg)
	return cfg, nil
}

func configPath() string {
	if env := os.Getenv("DESKSWEEP_CONFIG"); env != "" {
		return env
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "desksweep", "config.yaml")
}

func applyEnv(cfg *Config) {
	if env := os.Getenv("DESKSWEEP_LOCATION"); env != "" {
		cfg.Location = env
	}
	if env := os.Getenv("DESKSWEEP_BIN_MODE"); env != "" {
		cfg.BinMode = env
	}
}

// Debounce returns the suggestion debounce delay
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// OldFileAge returns the age beyond which a file counts as old
func (c *Config) OldFileAge() time.Duration {
	return time.Duration(c.OldFileDays) * 24 * time.Hour
}

// LargeFileBytes returns the size beyond which a file counts as large
func (c *Config) LargeFileBytes() int64 {
	return int64(c.LargeFileMB) * 1024 * 1024
}

// SameSessionWindow returns the creation-time clustering window
func (c *Config) SameSessionWindow() time.Duration {
	return time.Duration(c.SameSessionMins) * time.Minute
}

// AgedMemberAge returns the age beyond which a group member counts as aged
func (c *Config) AgedMemberAge() time.Duration {
	return time.Duration(c.AgedMemberDays) * 24 * time.Hour
}

// Deferred reports whether binned files are collected for review instead of
// being trashed immediately
func (c *Config) Deferred() bool { return c.BinMode == "deferred" }

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
