// Package keys defines the abstract key-token vocabulary the engine
// consumes. The engine never decodes raw byte streams; a terminal driver
// (see internal/termio) is responsible for turning bytes into Key values.
package keys

import "fmt"

// Special identifies a named key that has no printable rune form.
type Special int

// Named special keys recognized by the engine.
const (
	None Special = iota
	Esc
	Enter
	Tab
	Backspace
	Delete
	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	InsertKey
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

var specialNames = map[Special]string{
	None: "", Esc: "ESC", Enter: "ENTER", Tab: "TAB", Backspace: "BACKSPACE",
	Delete: "DELETE", Up: "UP", Down: "DOWN", Left: "LEFT", Right: "RIGHT",
	Home: "HOME", End: "END", PageUp: "PAGEUP", PageDown: "PAGEDOWN",
	InsertKey: "INSERT",
	F1:        "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
}

// String returns the canonical name used in the Key-input interface.
func (s Special) String() string {
	if n, ok := specialNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// Key is a single token delivered by the key source. Exactly one of Rune
// (Special == None) or Special is meaningful; Ctrl/Alt may modify either.
type Key struct {
	Rune    rune
	Special Special
	Ctrl    bool
	Alt     bool
}

// Char constructs a plain printable-rune key.
func Char(r rune) Key { return Key{Rune: r} }

// Named constructs a named special key.
func Named(s Special) Key { return Key{Special: s} }

// CtrlKey constructs a CTRL-<letter> combination, e.g. CTRL-X.
func CtrlKey(r rune) Key { return Key{Rune: r, Ctrl: true} }

// AltKey constructs an ALT-<letter> combination.
func AltKey(r rune) Key { return Key{Rune: r, Alt: true} }

// IsRune reports whether the key carries a printable code point.
func (k Key) IsRune() bool { return k.Special == None && !k.Ctrl && !k.Alt }

// String renders the key the way a status line or macro dump would.
func (k Key) String() string {
	switch {
	case k.Ctrl:
		return fmt.Sprintf("CTRL-%c", upper(k.Rune))
	case k.Alt:
		return fmt.Sprintf("ALT-%c", upper(k.Rune))
	case k.Special != None:
		return k.Special.String()
	default:
		return string(k.Rune)
	}
}

func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// Equal reports whether two keys represent the same token.
func (k Key) Equal(o Key) bool {
	return k.Rune == o.Rune && k.Special == o.Special && k.Ctrl == o.Ctrl && k.Alt == o.Alt
}
