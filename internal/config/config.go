// Package config provides the persisted configuration schema for vigor:
// the editor options an embedder wants to survive across sessions, plus
// optional key remappings for the terminal front-end.
package config

import (
	"regexp"
)

var configPathSegmentRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Config represents the complete configuration structure.
type Config struct {
	Meta struct {
		Version       string `yaml:"version"`
		CreatedAt     string `yaml:"created-at"`
		ConfigVersion string `yaml:"config-version"`
	} `yaml:"meta"`

	Options struct {
		Number     bool `yaml:"number"`
		IgnoreCase bool `yaml:"ignorecase"`
		SmartCase  bool `yaml:"smartcase"`
		HLSearch   bool `yaml:"hlsearch"`
		Incsearch  bool `yaml:"incsearch"`
		Wrap       bool `yaml:"wrap"`
		List       bool `yaml:"list"`
		AutoIndent bool `yaml:"autoindent"`
		ExpandTab  bool `yaml:"expandtab"`
		AutoRead   bool `yaml:"autoread"`
		SwapFile   bool `yaml:"swapfile"`
		Backup     bool `yaml:"backup"`
		TabStop    int  `yaml:"tabstop"`
		ShiftWidth int  `yaml:"shiftwidth"`
		ScrollOff  int  `yaml:"scrolloff"`
	} `yaml:"options"`

	Keybindings struct {
		// Remaps for the terminal front-end, "physical": "logical",
		// e.g. "ctrl+k": "ESC" for keyboards where Escape is awkward.
		Remap map[string]string `yaml:"remap,omitempty"`
	} `yaml:"keybindings"`
}

// Manager handles loading and saving the configuration file.
type Manager struct {
	config     *Config
	configPath string
	loaded     bool
}

// NewManager creates a manager with default values and the default
// config path resolved for this platform.
func NewManager() *Manager {
	return &Manager{
		config:     DefaultConfig(),
		configPath: DefaultConfigPath(),
	}
}

// NewManagerWithPath creates a manager bound to an explicit config path,
// for tests and embedders that manage their own locations.
func NewManagerWithPath(path string) *Manager {
	return &Manager{
		config:     DefaultConfig(),
		configPath: path,
	}
}

// DefaultConfig returns a config whose options match the editor's
// built-in defaults.
func DefaultConfig() *Config {
	c := &Config{}
	c.Meta.ConfigVersion = "1"
	c.Options.Wrap = true
	c.Options.TabStop = 8
	c.Options.ShiftWidth = 8
	c.Options.SwapFile = true
	c.Options.Backup = true
	return c
}

// GetConfig returns the current configuration.
func (cm *Manager) GetConfig() *Config { return cm.config }

// ConfigPath returns the path the manager loads from and saves to.
func (cm *Manager) ConfigPath() string { return cm.configPath }

// Loaded reports whether a config file was actually found and read (as
// opposed to running on defaults).
func (cm *Manager) Loaded() bool { return cm.loaded }
