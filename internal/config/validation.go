package config

import (
	"strings"
)

// Validate checks every configurable value, returning the first problem
// found.
func (c *Config) Validate() error {
	if c.Options.TabStop < 1 || c.Options.TabStop > 64 {
		return &ValidationError{"options.tabstop", c.Options.TabStop, "must be between 1 and 64"}
	}
	if c.Options.ShiftWidth < 0 || c.Options.ShiftWidth > 64 {
		return &ValidationError{"options.shiftwidth", c.Options.ShiftWidth, "must be between 0 and 64"}
	}
	if c.Options.ScrollOff < 0 {
		return &ValidationError{"options.scrolloff", c.Options.ScrollOff, "must not be negative"}
	}
	return c.validateKeybindings()
}

// validateKeybindings checks each remap entry's physical-key syntax:
// a bare character, a named key (ESC, ENTER, ...), or ctrl+X / alt+X.
func (c *Config) validateKeybindings() error {
	for phys, logical := range c.Keybindings.Remap {
		if logical == "" {
			return &ValidationError{"keybindings.remap." + phys, logical, "replacement must not be empty"}
		}
		if err := validateKeySpec(phys); err != nil {
			return &ValidationError{"keybindings.remap." + phys, phys, err.Error()}
		}
	}
	return nil
}

var namedKeys = map[string]struct{}{
	"ESC": {}, "ENTER": {}, "TAB": {}, "BACKSPACE": {}, "DELETE": {},
	"UP": {}, "DOWN": {}, "LEFT": {}, "RIGHT": {}, "HOME": {}, "END": {},
	"PAGEUP": {}, "PAGEDOWN": {}, "INSERT": {},
}

type keySpecError string

func (e keySpecError) Error() string { return string(e) }

func validateKeySpec(spec string) error {
	s := strings.TrimSpace(spec)
	if s == "" {
		return keySpecError("empty key")
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "ctrl+") || strings.HasPrefix(lower, "alt+") {
		rest := s[strings.Index(s, "+")+1:]
		if len([]rune(rest)) != 1 {
			return keySpecError("modifier must be followed by a single character")
		}
		return nil
	}
	if _, ok := namedKeys[strings.ToUpper(s)]; ok {
		return nil
	}
	if len([]rune(s)) == 1 {
		return nil
	}
	return keySpecError("not a single character, named key, or ctrl/alt combination")
}
