package buffer

import "strings"

// InsertChar inserts c at the cursor (Insert-mode semantics: the cursor
// may sit one past the last character) and advances the cursor past it.
func (b *Buffer) InsertChar(c rune) {
	b.SaveState()
	b.insertRuneNoSave(c)
}

func (b *Buffer) insertRuneNoSave(c rune) {
	if c == '\n' {
		b.splitLineNoSave()
		b.touch()
		return
	}
	row := b.cursor.Row
	line := b.lines[row]
	col := b.cursor.Col
	if col > len(line) {
		col = len(line)
	}
	next := make([]rune, 0, len(line)+1)
	next = append(next, line[:col]...)
	next = append(next, c)
	next = append(next, line[col:]...)
	b.lines[row] = next
	b.cursor.Col = col + 1
	b.touch()
}

// InsertText inserts s at the cursor, handling embedded newlines by
// splitting lines as needed. The cursor ends immediately after the
// inserted text. The whole insertion is one undo step (the compound
// bracket takes the snapshot).
func (b *Buffer) InsertText(s string) {
	if s == "" {
		return
	}
	b.BeginCompoundChange()
	defer b.EndCompoundChange()
	for _, r := range s {
		b.insertRuneNoSave(r)
	}
}

// splitLineNoSave splits the current line at the cursor into two lines,
// without taking its own undo snapshot (callers that need one already
// took it, or are inside a compound bracket).
func (b *Buffer) splitLineNoSave() {
	row := b.cursor.Row
	line := b.lines[row]
	col := b.cursor.Col
	if col > len(line) {
		col = len(line)
	}
	before := append([]rune{}, line[:col]...)
	after := append([]rune{}, line[col:]...)

	rest := make([][]rune, 0, len(b.lines)+1)
	rest = append(rest, b.lines[:row]...)
	rest = append(rest, before, after)
	rest = append(rest, b.lines[row+1:]...)
	b.lines = rest
	b.cursor = Position{Row: row + 1, Col: 0}
}

// SplitLineAtCursor splits the current line at the cursor (Enter in
// Insert mode).
func (b *Buffer) SplitLineAtCursor() {
	b.SaveState()
	b.splitLineNoSave()
	b.touch()
}

// DeleteCharAtCursor removes the rune under the cursor ('x'). On an empty
// line, or past the end of the line, it is a no-op.
func (b *Buffer) DeleteCharAtCursor(count int) string {
	if count < 1 {
		count = 1
	}
	line := b.lines[b.cursor.Row]
	col := b.cursor.Col
	if col >= len(line) {
		return ""
	}
	end := col + count
	if end > len(line) {
		end = len(line)
	}
	b.SaveState()
	deleted := string(line[col:end])
	next := make([]rune, 0, len(line)-(end-col))
	next = append(next, line[:col]...)
	next = append(next, line[end:]...)
	b.lines[b.cursor.Row] = next
	b.clampCursor()
	b.touch()
	return deleted
}

// Backspace removes the rune before the cursor, joining with the previous
// line if the cursor sits at column 0 of a non-first line. No-op at the
// very start of the buffer.
func (b *Buffer) Backspace() string {
	if b.cursor.Col > 0 {
		b.SaveState()
		row := b.cursor.Row
		line := b.lines[row]
		col := b.cursor.Col
		deleted := string(line[col-1 : col])
		next := make([]rune, 0, len(line)-1)
		next = append(next, line[:col-1]...)
		next = append(next, line[col:]...)
		b.lines[row] = next
		b.cursor.Col = col - 1
		b.touch()
		return deleted
	}
	if b.cursor.Row == 0 {
		return ""
	}
	b.SaveState()
	row := b.cursor.Row
	prevLen := len(b.lines[row-1])
	joined := append(append([]rune{}, b.lines[row-1]...), b.lines[row]...)
	rest := make([][]rune, 0, len(b.lines)-1)
	rest = append(rest, b.lines[:row-1]...)
	rest = append(rest, joined)
	rest = append(rest, b.lines[row+1:]...)
	b.lines = rest
	b.DeleteNamedMarksInRange(row, row)
	b.cursor = Position{Row: row - 1, Col: prevLen}
	b.touch()
	return "\n"
}

// ReplaceChar overwrites count characters at the cursor with c ('r'),
// without moving the cursor past the run (cursor lands on the last
// replaced cell). Fails silently (no-op) if the line is too short.
func (b *Buffer) ReplaceChar(c rune, count int) bool {
	if count < 1 {
		count = 1
	}
	line := b.lines[b.cursor.Row]
	col := b.cursor.Col
	if col+count > len(line) {
		return false
	}
	b.SaveState()
	next := append([]rune{}, line...)
	for i := 0; i < count; i++ {
		next[col+i] = c
	}
	b.lines[b.cursor.Row] = next
	b.cursor.Col = col + count - 1
	b.touch()
	return true
}

// DeleteLine removes count lines starting at the cursor row ('dd'). If
// every line is removed the buffer collapses to the single-empty-line
// transient state. Returns the removed text, each line newline-terminated.
func (b *Buffer) DeleteLine(count int) string {
	if count < 1 {
		count = 1
	}
	start := b.cursor.Row
	end := start + count - 1
	if end >= len(b.lines) {
		end = len(b.lines) - 1
	}
	b.SaveState()
	var sb strings.Builder
	for i := start; i <= end; i++ {
		sb.WriteString(string(b.lines[i]))
		sb.WriteByte('\n')
	}
	b.DeleteNamedMarksInRange(start, end)
	rest := make([][]rune, 0, len(b.lines)-(end-start+1))
	rest = append(rest, b.lines[:start]...)
	rest = append(rest, b.lines[end+1:]...)
	if len(rest) == 0 {
		rest = [][]rune{{}}
	}
	b.lines = rest
	row := start
	if row >= len(b.lines) {
		row = len(b.lines) - 1
	}
	b.cursor = b.ClampPosition(Position{row, 0}, false)
	b.MoveToFirstNonBlank()
	b.touch()
	return sb.String()
}

// InsertLinesBelow/InsertLinesAbove insert literal lines below/above the
// given row (linewise put, and 'o'/'O' in the dispatcher). The cursor is
// not moved; callers position it on the inserted lines themselves.
func (b *Buffer) InsertLinesBelow(row int, lines []string) {
	b.SaveState()
	b.insertLinesNoSave(row+1, lines)
	b.touch()
}

func (b *Buffer) InsertLinesAbove(row int, lines []string) {
	b.SaveState()
	b.insertLinesNoSave(row, lines)
	b.touch()
}

func (b *Buffer) insertLinesNoSave(at int, lines []string) {
	if at < 0 {
		at = 0
	}
	if at > len(b.lines) {
		at = len(b.lines)
	}
	insert := make([][]rune, len(lines))
	for i, l := range lines {
		insert[i] = []rune(l)
	}
	rest := make([][]rune, 0, len(b.lines)+len(lines))
	rest = append(rest, b.lines[:at]...)
	rest = append(rest, insert...)
	rest = append(rest, b.lines[at:]...)
	b.lines = rest
	for name, pos := range b.namedMarks {
		if pos.Row >= at {
			pos.Row += len(lines)
			b.namedMarks[name] = pos
		}
	}
}
