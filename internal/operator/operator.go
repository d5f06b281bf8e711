// Package operator implements the change-producing operators (d, c, y,
// >, <, =, gu, gU, g~). An operator always acts
// on a range already resolved by the dispatcher from a motion or text
// object; this package never parses keys itself.
package operator

import (
	"strings"
	"unicode"

	"github.com/bmf-san/vigor/internal/buffer"
	"github.com/bmf-san/vigor/internal/registers"
)

// Outcome reports what the caller must do after Apply returns.
type Outcome struct {
	EntersInsert bool // 'c' leaves the caller to switch to Insert mode
	Ok           bool
}

// DefaultShiftWidth is the fallback column count for '>' and '<' when
// the caller passes a non-positive shiftwidth.
const DefaultShiftWidth = 8

// Apply runs op over [start,end] under kind, writing to register as the
// register rules require. charwiseSingleChar flags a one-cell charwise
// delete so the numbered-register shift is skipped. shiftWidth carries
// the live 'shiftwidth' option for '>' and '<'.
func Apply(b *buffer.Buffer, regs *registers.Store, op string, start, end buffer.Position, kind buffer.RangeKind, register rune, charwiseSingleChar bool, shiftWidth int) Outcome {
	if shiftWidth < 1 {
		shiftWidth = DefaultShiftWidth
	}
	switch op {
	case "d":
		text := b.DeleteRange(start, end, kind)
		regs.DeleteAndYank(text, register, kind, charwiseSingleChar)
		return Outcome{Ok: true}
	case "c":
		b.BeginCompoundChange()
		text := b.DeleteRange(start, end, kind)
		regs.DeleteAndYank(text, register, kind, charwiseSingleChar)
		if kind == buffer.Linewise {
			// The replacement line keeps the deleted first line's
			// indentation as whitespace.
			indent := leadingWhitespace(text)
			if b.IsEmpty() {
				b.MoveCursorInsert(0, 0)
				b.InsertText(indent)
			} else {
				// The replacement opens where the deleted range began,
				// not at the clamped cursor (changing the last line
				// would otherwise land one row too high).
				row := start.Row
				if end.Row < row {
					row = end.Row
				}
				b.InsertLinesAbove(row, []string{indent})
				b.MoveCursorInsert(row, len([]rune(indent)))
			}
		}
		b.EndCompoundChange()
		return Outcome{EntersInsert: true, Ok: true}
	case "y":
		text := b.TextRange(start, end, kind)
		regs.Yank(text, register, kind)
		restoreCursorAfterYank(b, start, end)
		return Outcome{Ok: true}
	case ">":
		shiftLines(b, start, end, shiftWidth)
		return Outcome{Ok: true}
	case "<":
		shiftLines(b, start, end, -shiftWidth)
		return Outcome{Ok: true}
	case "=":
		reindentLines(b, start, end)
		return Outcome{Ok: true}
	case "gu":
		mapRange(b, start, end, kind, unicode.ToLower)
		return Outcome{Ok: true}
	case "gU":
		mapRange(b, start, end, kind, unicode.ToUpper)
		return Outcome{Ok: true}
	case "g~":
		mapRange(b, start, end, kind, toggleCase)
		return Outcome{Ok: true}
	}
	return Outcome{}
}

// restoreCursorAfterYank leaves the cursor at the range start (the
// buffer's own motions used to build start/end may have left it at end).
func restoreCursorAfterYank(b *buffer.Buffer, start, end buffer.Position) {
	if end.Less(start) {
		start = end
	}
	b.MoveCursor(start.Row, start.Col)
}

func shiftLines(b *buffer.Buffer, start, end buffer.Position, delta int) {
	if end.Less(start) {
		start, end = end, start
	}
	b.BeginCompoundChange()
	defer b.EndCompoundChange()
	for row := start.Row; row <= end.Row && row < b.LineCount(); row++ {
		line := b.LineRunes(row)
		if len(line) == 0 {
			continue
		}
		if delta > 0 {
			b.MoveCursor(row, 0)
			b.InsertText(strings.Repeat(" ", delta))
			continue
		}
		n := -delta
		trim := 0
		for trim < n && trim < len(line) && line[trim] == ' ' {
			trim++
		}
		if trim > 0 {
			b.DeleteRange(buffer.Position{Row: row, Col: 0}, buffer.Position{Row: row, Col: trim - 1}, buffer.Charwise)
		}
	}
	b.MoveCursor(start.Row, 0)
	b.MoveToFirstNonBlank()
}

// reindentLines aligns every line in range to the first line's leading
// whitespace; a full language-aware reindent has no home in an engine
// with no parser, but this keeps '=' from being a no-op.
func reindentLines(b *buffer.Buffer, start, end buffer.Position) {
	if end.Less(start) {
		start, end = end, start
	}
	ref := leadingSpace(b.LineRunes(start.Row))
	b.BeginCompoundChange()
	defer b.EndCompoundChange()
	for row := start.Row; row <= end.Row && row < b.LineCount(); row++ {
		line := b.LineRunes(row)
		cur := leadingSpace(line)
		if cur == ref {
			continue
		}
		if cur > 0 {
			b.DeleteRange(buffer.Position{Row: row, Col: 0}, buffer.Position{Row: row, Col: cur - 1}, buffer.Charwise)
		}
		if ref > 0 {
			b.MoveCursor(row, 0)
			b.InsertText(strings.Repeat(" ", ref))
		}
	}
}

// leadingWhitespace returns the leading spaces/tabs of the first line of
// a (possibly multi-line) deleted text.
func leadingWhitespace(deleted string) string {
	line := deleted
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	j := 0
	for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
		j++
	}
	return line[:j]
}

func leadingSpace(line []rune) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

func toggleCase(r rune) rune {
	switch {
	case unicode.IsUpper(r):
		return unicode.ToLower(r)
	case unicode.IsLower(r):
		return unicode.ToUpper(r)
	default:
		return r
	}
}

// mapRange rewrites every rune in [start,end] under kind through f,
// leaving buffer structure (line count, untouched columns) intact.
func mapRange(b *buffer.Buffer, start, end buffer.Position, kind buffer.RangeKind, f func(rune) rune) {
	switch kind {
	case buffer.Linewise:
		if end.Less(start) {
			start, end = end, start
		}
		b.BeginCompoundChange()
		defer b.EndCompoundChange()
		for row := start.Row; row <= end.Row && row < b.LineCount(); row++ {
			line := b.LineRunes(row)
			mapped, changed := mapRunes(line, f)
			if !changed {
				continue
			}
			if len(line) > 0 {
				b.DeleteRange(buffer.Position{Row: row, Col: 0}, buffer.Position{Row: row, Col: len(line) - 1}, buffer.Charwise)
			}
			b.MoveCursor(row, 0)
			b.InsertText(string(mapped))
		}
		b.MoveCursor(start.Row, 0)
	case buffer.Blockwise:
		top, bottom := start.Row, end.Row
		if bottom < top {
			top, bottom = bottom, top
		}
		left, right := start.Col, end.Col
		if right < left {
			left, right = right, left
		}
		b.BeginCompoundChange()
		defer b.EndCompoundChange()
		for row := top; row <= bottom && row < b.LineCount(); row++ {
			line := b.LineRunes(row)
			lo, hi := left, right+1
			if lo >= len(line) {
				continue
			}
			if hi > len(line) {
				hi = len(line)
			}
			seg, changed := mapRunes(line[lo:hi], f)
			if !changed {
				continue
			}
			b.DeleteRange(buffer.Position{Row: row, Col: lo}, buffer.Position{Row: row, Col: hi - 1}, buffer.Charwise)
			b.MoveCursor(row, lo)
			b.InsertText(string(seg))
		}
		b.MoveCursor(top, left)
	default: // Charwise
		if end.Less(start) {
			start, end = end, start
		}
		text := b.TextRange(start, end, kind)
		mapped := strings.Map(f, text)
		if mapped == text {
			return
		}
		b.BeginCompoundChange()
		defer b.EndCompoundChange()
		b.DeleteRange(start, end, kind)
		b.MoveCursor(start.Row, start.Col)
		b.InsertText(mapped)
		b.MoveCursor(start.Row, start.Col)
	}
}

func mapRunes(line []rune, f func(rune) rune) ([]rune, bool) {
	out := make([]rune, len(line))
	changed := false
	for i, r := range line {
		m := f(r)
		out[i] = m
		if m != r {
			changed = true
		}
	}
	return out, changed
}
