// Package registers implements the typed register storage described in
// unnamed, numbered 0-9, named a-z/A-Z, the
// black-hole register, and the read-only/latching special registers.
package registers

import (
	"sort"
	"strings"

	"github.com/bmf-san/vigor/internal/buffer"
)

// Kind mirrors buffer.RangeKind for register payloads.
type Kind = buffer.RangeKind

const (
	Charwise  = buffer.Charwise
	Linewise  = buffer.Linewise
	Blockwise = buffer.Blockwise
)

// Register is a single slot: text plus its kind.
type Register struct {
	Text string
	Kind Kind
}

// Name identifiers for the special registers.
const (
	Unnamed     = '"'
	BlackHole   = '_'
	SearchReg   = '/'
	CommandReg  = ':'
	InsertedReg = '.'
	FilenameReg = '%'
	ClipboardA  = '*'
	ClipboardB  = '+'
)

// Store holds every register slot.
type Store struct {
	unnamed  Register
	numbered [10]Register
	named    map[rune]Register
	special  map[rune]Register
	filename string
}

// New returns an empty register store.
func New() *Store {
	return &Store{
		named:   make(map[rune]Register),
		special: make(map[rune]Register),
	}
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func toLower(r rune) rune {
	if isUpper(r) {
		return r + ('a' - 'A')
	}
	return r
}

// Yank writes text/kind to the named register (or unnamed if register==0).
// A yank without an explicit register also latches into register "0"; the
// unnamed register mirrors the yank either way.
func (s *Store) Yank(text string, register rune, kind Kind) {
	if register == BlackHole {
		return
	}
	if register == 0 || register == Unnamed {
		s.unnamed = Register{text, kind}
		s.numbered[0] = Register{text, kind}
		return
	}
	s.writeNamedOrNumbered(register, text, kind)
	s.unnamed = Register{text, kind}
}

// DeleteAndYank writes deleted text to a register, following the delete
// shifting rules: writing to the unnamed register (register==0) shifts
// numbered registers 1..8 down to 2..9 and writes register 1; a
// single-character delete (charwiseSingleChar) without an explicit
// register only touches unnamed.
func (s *Store) DeleteAndYank(text string, register rune, kind Kind, charwiseSingleChar bool) {
	if register == BlackHole {
		return
	}
	if register != 0 && register != Unnamed {
		s.writeNamedOrNumbered(register, text, kind)
		s.unnamed = Register{text, kind}
		return
	}
	s.unnamed = Register{text, kind}
	if charwiseSingleChar {
		return
	}
	for i := 8; i >= 1; i-- {
		s.numbered[i+1] = s.numbered[i]
	}
	s.numbered[1] = Register{text, kind}
}

func (s *Store) writeNamedOrNumbered(register rune, text string, kind Kind) {
	if register == ClipboardA || register == ClipboardB {
		s.special[register] = Register{text, kind}
		return
	}
	if register >= '0' && register <= '9' {
		s.numbered[register-'0'] = Register{text, kind}
		return
	}
	lower := toLower(register)
	if isUpper(register) {
		existing := s.named[lower]
		if existing.Kind == Linewise && kind == Linewise {
			s.named[lower] = Register{existing.Text + text, Linewise}
		} else {
			sep := ""
			if existing.Text != "" && !strings.HasSuffix(existing.Text, "\n") {
				sep = "\n"
			}
			s.named[lower] = Register{existing.Text + sep + text, kind}
		}
		return
	}
	s.named[lower] = Register{text, kind}
}

// Get returns the contents of the named register, resolving special
// registers and defaulting to the unnamed register for '"' or 0.
func (s *Store) Get(register rune) Register {
	switch {
	case register == 0 || register == Unnamed:
		return s.unnamed
	case register == BlackHole:
		return Register{}
	case register >= '0' && register <= '9':
		return s.numbered[register-'0']
	case register == ClipboardA || register == ClipboardB:
		if r, ok := s.special[register]; ok {
			return r
		}
		return Register{}
	case register == FilenameReg:
		return Register{Text: s.filename, Kind: Charwise}
	default:
		if r, ok := s.special[register]; ok {
			return r
		}
		return s.named[toLower(register)]
	}
}

// SetSpecial writes one of the read-only/latching registers (last search
// pattern, last ex command, last inserted text, clipboard mirrors) — the
// dispatcher/search engine call this directly; user keystrokes never
// target these through the normal yank/delete path except clipboard
// mirrors, which also receive ordinary yanks when register=='*'/'+'.
func (s *Store) SetSpecial(register rune, text string, kind Kind) {
	s.special[register] = Register{text, kind}
}

// SetFilename records the current buffer's filename for the '%' register.
func (s *Store) SetFilename(name string) { s.filename = name }

// Clear empties one register, or every register if register == 0.
func (s *Store) Clear(register rune) {
	if register == 0 {
		s.unnamed = Register{}
		for i := range s.numbered {
			s.numbered[i] = Register{}
		}
		s.named = make(map[rune]Register)
		s.special = make(map[rune]Register)
		return
	}
	switch {
	case register >= '0' && register <= '9':
		s.numbered[register-'0'] = Register{}
	default:
		delete(s.named, toLower(register))
		delete(s.special, register)
	}
}

// Entry is one line of `:reg` output.
type Entry struct {
	Name    rune
	Preview string
	Kind    Kind
}

// List returns entries for every non-empty register, suitable for a
// `:registers`/`:reg` display; previews are truncated to ~50 chars.
func (s *Store) List() []Entry {
	var out []Entry
	add := func(name rune, r Register) {
		if r.Text == "" {
			return
		}
		out = append(out, Entry{Name: name, Preview: truncate(r.Text, 50), Kind: r.Kind})
	}
	add(Unnamed, s.unnamed)
	for i := 0; i <= 9; i++ {
		add(rune('0'+i), s.numbered[i])
	}
	var names []rune
	for n := range s.named {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	for _, n := range names {
		add(n, s.named[n])
	}
	for _, n := range []rune{InsertedReg, CommandReg, SearchReg, FilenameReg, ClipboardA, ClipboardB} {
		add(n, s.Get(n))
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", "\\n"))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n])
}
