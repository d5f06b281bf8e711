package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// DefaultConfigPath returns the config file location, preferring the XDG
// layout and falling back to a dotfile in the home directory.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".vigorrc.yaml"
	}
	return filepath.Join(homeDir, ".config", "vigor", "config.yaml")
}

// configPaths returns possible configuration file paths in order of
// priority.
func (cm *Manager) configPaths() []string {
	homeDir, _ := os.UserHomeDir()
	return []string{
		cm.configPath,
		filepath.Join(homeDir, ".vigorrc.yaml"),
	}
}

// Load reads the first config file found among the candidate paths.
// A missing file is not an error; the manager keeps its defaults.
func (cm *Manager) Load() error {
	return cm.LoadWithFileOps(OSFileOps{})
}

// LoadWithFileOps loads configuration with custom file operations (for
// testing).
func (cm *Manager) LoadWithFileOps(fileOps FileOps) error {
	for _, path := range cm.configPaths() {
		if _, err := fileOps.Stat(path); err != nil {
			continue
		}
		if err := cm.loadFromFileWithOps(path, fileOps); err != nil {
			return err
		}
		cm.configPath = path
		cm.loaded = true
		return nil
	}
	return nil
}

func (cm *Manager) loadFromFileWithOps(path string, fileOps FileOps) error {
	data, err := fileOps.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cm.config = cfg
	return nil
}
