package registers

import (
	"strings"

	"github.com/bmf-san/vigor/internal/buffer"
)

// PutAfter implements 'p': charwise inserts after the cursor (or at end of
// line if the cursor already sits there), linewise inserts new lines
// below the current line, blockwise inserts a rectangle starting at the
// cursor column on successive lines below. count repeats the paste.
func (s *Store) PutAfter(b *buffer.Buffer, register rune, count int) {
	if count < 1 {
		count = 1
	}
	r := s.Get(register)
	if r.Text == "" {
		return
	}
	switch r.Kind {
	case Linewise:
		lines := repeatLines(splitLines(r.Text), count)
		b.InsertLinesBelow(b.Cursor().Row, lines)
		row := b.Cursor().Row + 1
		b.MoveCursor(row, 0)
		b.MoveToFirstNonBlank()
	case Blockwise:
		putBlock(b, r.Text, count, 1)
	default:
		col := b.Cursor().Col
		line := b.LineRunes(b.Cursor().Row)
		if col < len(line) {
			col++
		}
		b.MoveCursorInsert(b.Cursor().Row, col)
		b.InsertText(strings.Repeat(r.Text, count))
		// cursor lands one past the inserted text in Insert semantics;
		// put leaves it on the last inserted character, Normal-mode style.
		b.MoveCursor(b.Cursor().Row, b.Cursor().Col-1)
	}
}

// PutBefore implements 'P': charwise inserts at the cursor, linewise
// inserts above the current line, blockwise inserts starting at the
// cursor column without advancing a column first.
func (s *Store) PutBefore(b *buffer.Buffer, register rune, count int) {
	if count < 1 {
		count = 1
	}
	r := s.Get(register)
	if r.Text == "" {
		return
	}
	switch r.Kind {
	case Linewise:
		lines := repeatLines(splitLines(r.Text), count)
		b.InsertLinesAbove(b.Cursor().Row, lines)
		b.MoveCursor(b.Cursor().Row-len(lines), 0)
		b.MoveToFirstNonBlank()
	case Blockwise:
		putBlock(b, r.Text, count, 0)
	default:
		b.InsertText(strings.Repeat(r.Text, count))
		b.MoveCursor(b.Cursor().Row, b.Cursor().Col-1)
	}
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func repeatLines(lines []string, count int) []string {
	out := make([]string, 0, len(lines)*count)
	for i := 0; i < count; i++ {
		out = append(out, lines...)
	}
	return out
}

// putBlock inserts a best-effort rectangle at the cursor column,
// extending rightward on successive lines below and padding short lines
// with spaces as needed. colOffset shifts the insert column by one for
// PutAfter.
func putBlock(b *buffer.Buffer, text string, count int, colOffset int) {
	b.BeginCompoundChange()
	defer b.EndCompoundChange()
	rows := strings.Split(text, "\n")
	startRow := b.Cursor().Row
	startCol := b.Cursor().Col + colOffset
	for i, chunk := range rows {
		row := startRow + i
		if row >= b.LineCount() {
			b.InsertLinesBelow(b.LineCount()-1, []string{""})
		}
		line := b.LineRunes(row)
		col := startCol
		if col > len(line) {
			pad := strings.Repeat(" ", col-len(line))
			b.MoveCursorInsert(row, len(line))
			b.InsertText(pad)
		}
		b.MoveCursorInsert(row, col)
		b.InsertText(strings.Repeat(chunk, count))
	}
	b.MoveCursor(startRow, startCol)
}
