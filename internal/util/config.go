// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDataDir is the default data directory for aprecover
const DefaultDataDir = "~/.aprecover"

// DefaultDebounce is the quiet period after the last keystroke in the secret
// phrase field before the phrase is checked.
const DefaultDebounce = 200 * time.Millisecond

// Config holds aprecover configuration settings
type Config struct {
	StoreDir       string `yaml:"store" description:"Account store directory (relative to data dir)" default:"store"`
	NetworksFile   string `yaml:"networks_file" description:"Network list overriding the built-in networks (relative to data dir)" default:"networks.yaml"`
	DefaultNetwork string `yaml:"default_network" description:"Network preselected on the recover screen (empty = none)"`
	Debounce       string `yaml:"debounce" description:"Quiet period before a typed secret phrase is checked" default:"200ms"`
	MinPINLength   int    `yaml:"min_pin_length" description:"Minimum PIN length for sealing a recovered account" default:"6"`
	LogFile        string `yaml:"log_file" description:"Log file path (relative to data dir)" default:"aprecover.log"`
	WatchNetworks  *bool  `yaml:"watch_networks" description:"Reload networks_file when it changes on disk" default:"true"`
}

// DefaultConfig returns the default configuration for runtime use.
func DefaultConfig() Config {
	watch := true
	return Config{
		StoreDir:      "store",
		NetworksFile:  "networks.yaml",
		Debounce:      DefaultDebounce.String(),
		MinPINLength:  6,
		LogFile:       "aprecover.log",
		WatchNetworks: &watch,
	}
}

// GetDataDir returns the data directory for aprecover.
// Resolution order: -d flag > APRECOVER_DATA env var > ~/.aprecover
func GetDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envDir := os.Getenv("APRECOVER_DATA"); envDir != "" {
		return envDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "" // Can't determine default
	}
	return filepath.Join(home, ".aprecover")
}

// RequireDataDir resolves the data directory or exits if unresolvable.
func RequireDataDir(flagValue string) string {
	dir := GetDataDir(flagValue)
	if dir == "" {
		fmt.Fprintln(os.Stderr, "Error: Could not determine data directory")
		fmt.Fprintln(os.Stderr, "Use -d <path> or set APRECOVER_DATA environment variable")
		os.Exit(1)
	}
	return dir
}

// ResolvePath resolves a path relative to baseDir if not absolute.
// Returns path unchanged if empty or already absolute.
func ResolvePath(path, baseDir string) string {
	if path == "" || baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// LoadConfig loads configuration from config.yaml in the data directory.
// If the file doesn't exist, returns default config. Relative paths are
// resolved against dataDir.
func LoadConfig(dataDir string) (Config, error) {
	config := DefaultConfig()

	if dataDir != "" {
		data, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Fill in defaults for missing values
	defaults := DefaultConfig()
	if config.StoreDir == "" {
		config.StoreDir = defaults.StoreDir
	}
	if config.Debounce == "" {
		config.Debounce = defaults.Debounce
	}
	if config.MinPINLength <= 0 {
		config.MinPINLength = defaults.MinPINLength
	}
	if config.WatchNetworks == nil {
		config.WatchNetworks = defaults.WatchNetworks
	}
	if _, err := config.DebounceDuration(); err != nil {
		return Config{}, err
	}

	config.StoreDir = ResolvePath(config.StoreDir, dataDir)
	config.NetworksFile = ResolvePath(config.NetworksFile, dataDir)
	config.LogFile = ResolvePath(config.LogFile, dataDir)

	return config, nil
}

// DebounceDuration parses the debounce setting.
func (c *Config) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid debounce %q: %w", c.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid debounce %q: must not be negative", c.Debounce)
	}
	return d, nil
}

// ShouldWatchNetworks reports whether the networks file is watched for changes.
func (c *Config) ShouldWatchNetworks() bool {
	return c.WatchNetworks == nil || *c.WatchNetworks
}
