package command

import (
	"fmt"
	"strings"

	"github.com/bmf-san/vigor/internal/mode"
)

// Registry is the keyed catalog of Def entries.
type Registry struct {
	defs []Def
}

// NewRegistry returns a Registry pre-populated with the built-in command
// set (motions, operators, text objects, actions, mode changes).
func NewRegistry() *Registry {
	return &Registry{defs: defaultDefs()}
}

// NewRegistryWith builds a Registry from an explicit def list, for tests.
func NewRegistryWith(defs []Def) *Registry {
	return &Registry{defs: append([]Def(nil), defs...)}
}

// All returns every registered def.
func (r *Registry) All() []Def { return append([]Def(nil), r.defs...) }

// Register adds a new def to the catalog (used by embedders that want to
// extend the built-in set, and by tests).
func (r *Registry) Register(d Def) { r.defs = append(r.defs, d) }

// Exact returns the def whose Keys equals keys and whose Modes contains m.
func (r *Registry) Exact(keys string, m mode.Mode) (Def, bool) {
	for _, d := range r.defs {
		if d.Keys == keys && d.ValidModes(m) {
			return d, true
		}
	}
	return Def{}, false
}

// IsPrefix reports whether keys is a strict prefix of some registered
// sequence valid in mode m (used by the dispatcher to decide whether to
// wait for more input rather than reporting "Unknown command").
func (r *Registry) IsPrefix(keys string, m mode.Mode) bool {
	for _, d := range r.defs {
		if !d.ValidModes(m) {
			continue
		}
		if len(d.Keys) > len(keys) && strings.HasPrefix(d.Keys, keys) {
			return true
		}
	}
	return false
}

// Completions enumerates defs whose Keys begin with keys in mode m, for a
// command-line completion surface.
func (r *Registry) Completions(keys string, m mode.Mode) []Def {
	var out []Def
	for _, d := range r.defs {
		if d.ValidModes(m) && strings.HasPrefix(d.Keys, keys) {
			out = append(out, d)
		}
	}
	return out
}

// Validate checks catalog consistency: no two defs may share the same
// (Keys, Mode) pair, and every def must carry a Name.
func Validate(defs []Def) error {
	type key struct {
		keys string
		m    mode.Mode
	}
	seen := make(map[key]bool)
	for _, d := range defs {
		if d.Name == "" {
			return fmt.Errorf("command %q missing a name", d.Keys)
		}
		for _, m := range d.Modes {
			k := key{d.Keys, m}
			if seen[k] {
				return fmt.Errorf("duplicate command %q registered for mode %s", d.Keys, m)
			}
			seen[k] = true
		}
	}
	return nil
}

// Validate runs Validate against this registry's current defs.
func (r *Registry) Validate() error { return Validate(r.defs) }
