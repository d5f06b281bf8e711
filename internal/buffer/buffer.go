// Package buffer implements the line-oriented text buffer: cursor, marks,
// jump list and undo/redo snapshots. It is the
// lowest-level component — it knows nothing of modes, operators or the
// key stream.
package buffer

import "strings"

const (
	// UndoCap bounds the undo/redo snapshot stacks.
	UndoCap = 100
	// JumpCap bounds the jump list.
	JumpCap = 100
)

// Buffer is the mutable text store. The zero value is not usable; use New
// or NewFromText.
type Buffer struct {
	lines      [][]rune
	cursor     Position
	mark       *Position
	namedMarks map[rune]Position

	jumpList  []Position
	jumpIndex int

	undoStack []snapshot
	redoStack []snapshot
	compound  int // >0 while a compound change is open; suppresses save_state

	version int // incremented on every mutation; callers use it to invalidate caches
}

// New returns an empty buffer: a single empty line, cursor at (0,0).
func New() *Buffer {
	return &Buffer{
		lines:      [][]rune{{}},
		namedMarks: make(map[rune]Position),
	}
}

// NewFromText splits text on \n and seeds the buffer with the resulting
// lines. An empty string yields a single empty line, matching New.
func NewFromText(text string) *Buffer {
	b := New()
	if text == "" {
		return b
	}
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	b.lines = lines
	b.clampCursor()
	return b
}

// Version returns a counter incremented on every mutation; callers
// (e.g. the search engine) use it to invalidate derived caches cheaply.
func (b *Buffer) Version() int { return b.version }

// Lines returns a copy of the buffer's lines as strings.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Line returns the content of the given row, or "" if out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// LineRunes returns the given row's runes without copying semantics
// guarantees beyond read-only use by callers in this module tree.
func (b *Buffer) LineRunes(row int) []rune {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return b.lines[row]
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return len(b.lines) }

// CharCount returns the total number of code points across all lines
// (line terminators are not counted, matching the data model).
func (b *Buffer) CharCount() int {
	n := 0
	for _, l := range b.lines {
		n += len(l)
	}
	return n
}

// Content joins all lines with \n, matching the data model's contract.
func (b *Buffer) Content() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// CharAt returns the rune at pos and whether pos addressed a real cell.
func (b *Buffer) CharAt(pos Position) (rune, bool) {
	if pos.Row < 0 || pos.Row >= len(b.lines) {
		return 0, false
	}
	line := b.lines[pos.Row]
	if pos.Col < 0 || pos.Col >= len(line) {
		return 0, false
	}
	return line[pos.Col], true
}

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() Position { return b.cursor }

// IsEmpty reports whether the buffer is the transient all-deleted state:
// a single, empty line (invariant 1: cursor is clamped to (0,0) there).
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// clampCursor restores invariant 1 after any mutation using Normal-mode
// clamping, which keeps col at len(line)-1 on non-empty lines.
func (b *Buffer) clampCursor() {
	b.cursor = b.ClampPosition(b.cursor, false)
}

// ClampPosition clamps an arbitrary position into buffer bounds.
// insertMode allows col == len(line); Normal mode caps at len(line)-1 on
// non-empty lines (invariant 2), 0 on empty lines.
func (b *Buffer) ClampPosition(pos Position, insertMode bool) Position {
	if len(b.lines) == 0 {
		return Position{0, 0}
	}
	row := pos.Row
	if row < 0 {
		row = 0
	}
	if row >= len(b.lines) {
		row = len(b.lines) - 1
	}
	line := b.lines[row]
	maxCol := len(line) - 1
	if insertMode {
		maxCol = len(line)
	}
	if maxCol < 0 {
		maxCol = 0
	}
	col := pos.Col
	if col < 0 {
		col = 0
	}
	if col > maxCol {
		col = maxCol
	}
	return Position{row, col}
}

// MoveCursor sets the cursor absolutely, clamping to bounds.
func (b *Buffer) MoveCursor(row, col int) {
	b.cursor = b.ClampPosition(Position{row, col}, false)
}

// MoveCursorInsert is like MoveCursor but allows col == len(line),
// matching Insert-mode cursor semantics.
func (b *Buffer) MoveCursorInsert(row, col int) {
	b.cursor = b.ClampPosition(Position{row, col}, true)
}

func (b *Buffer) touch() { b.version++ }
