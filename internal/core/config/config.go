// Package config handles configuration loading and validation for revdiff.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/talldan/revdiff/internal/core/revision"
)

// Built-in action names for keybindings.
const (
	ActionPrevChange = "prev-change"
	ActionNextChange = "next-change"
	ActionPreview    = "preview"
	ActionQuit       = "quit"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"K": {Action: ActionPrevChange, Help: "previous change"},
	"J": {Action: ActionNextChange, Help: "next change"},
	"p": {Action: ActionPreview, Help: "preview revision"},
	"q": {Action: ActionQuit, Help: "quit"},
}

// Config holds the application configuration.
type Config struct {
	RevisionsDir string                `yaml:"revisions_dir"`
	Source       revision.Source       `yaml:"source"`
	SnapshotGlob string                `yaml:"snapshot_glob"`
	Theme        string                `yaml:"theme"`
	Watch        bool                  `yaml:"watch"`
	Navigation   NavigationConfig      `yaml:"navigation"`
	Keybindings  map[string]Keybinding `yaml:"keybindings"`
}

// NavigationConfig tunes the change-navigation behavior.
type NavigationConfig struct {
	// HintMinHeight is the minimum diff-pane height, in rows, required to
	// show the "changes above/below" hints.
	HintMinHeight int `yaml:"hint_min_height"`
	// ScrollThrottleMS bounds how often scroll positions are committed.
	ScrollThrottleMS int `yaml:"scroll_throttle_ms"`
	// ResizeDebounceMS delays geometry recompute after a resize burst.
	ResizeDebounceMS int `yaml:"resize_debounce_ms"`
}

// ScrollThrottle returns the scroll throttle window as a duration.
func (n NavigationConfig) ScrollThrottle() time.Duration {
	return time.Duration(n.ScrollThrottleMS) * time.Millisecond
}

// ResizeDebounce returns the resize debounce delay as a duration.
func (n NavigationConfig) ResizeDebounce() time.Duration {
	return time.Duration(n.ResizeDebounceMS) * time.Millisecond
}

// Keybinding defines a TUI keybinding action.
type Keybinding struct {
	Action string `yaml:"action"` // built-in action name
	Help   string `yaml:"help"`   // help text shown in TUI
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Source:       revision.SourceSnapshots,
		SnapshotGlob: "*.yaml",
		Theme:        "tokyo-night",
		Watch:        true,
		Navigation: NavigationConfig{
			HintMinHeight:    8,
			ScrollThrottleMS: 100,
			ResizeDebounceMS: 500,
		},
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads the config file (when present), merges it over the
// defaults, and validates the result. revisionsDir overrides the config
// file's revisions_dir when non-empty.
func Load(configPath, revisionsDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if revisionsDir != "" {
		cfg.RevisionsDir = revisionsDir
	}

	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Source == "" {
		c.Source = defaults.Source
	}
	if c.SnapshotGlob == "" {
		c.SnapshotGlob = defaults.SnapshotGlob
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Navigation.HintMinHeight == 0 {
		c.Navigation.HintMinHeight = defaults.Navigation.HintMinHeight
	}
	if c.Navigation.ScrollThrottleMS == 0 {
		c.Navigation.ScrollThrottleMS = defaults.Navigation.ScrollThrottleMS
	}
	if c.Navigation.ResizeDebounceMS == 0 {
		c.Navigation.ResizeDebounceMS = defaults.Navigation.ResizeDebounceMS
	}
}

// mergeKeybindings merges user keybindings into defaults. User
// keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range user {
		result[k] = v
	}
	return result
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "revdiff", "config.yaml")
}

// DefaultLogFile returns the default log file path using XDG_STATE_HOME.
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "revdiff", "revdiff.log")
}
