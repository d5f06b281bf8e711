package dispatcher

import (
	"github.com/bmf-san/vigor/internal/buffer"
	"github.com/bmf-san/vigor/internal/command"
	"github.com/bmf-san/vigor/internal/mode"
	"github.com/bmf-san/vigor/internal/operator"
	"github.com/bmf-san/vigor/internal/registers"
	"github.com/bmf-san/vigor/internal/search"
)

// executeStandalone runs every Action/ModeChange command that needs no
// further motion or text object (the remaining catalog
// entries once operators, motions, and ConsumesArg commands are
// handled elsewhere).
func (d *Dispatcher) executeStandalone(def command.Def) error {
	count := d.effectiveCount()
	register := d.resolveRegister()

	switch def.ID {
	case "x":
		text := d.Buf.DeleteCharAtCursor(count)
		if text != "" {
			d.Regs.DeleteAndYank(text, register, buffer.Charwise, len([]rune(text)) == 1)
			d.modified = true
		}
		d.finishChange(text != "", false)

	case "X":
		col := d.Buf.Cursor().Col
		n := count
		if n > col {
			n = col
		}
		if n > 0 {
			d.Buf.MoveCursor(d.Buf.Cursor().Row, col-n)
			text := d.Buf.DeleteCharAtCursor(n)
			d.Regs.DeleteAndYank(text, register, buffer.Charwise, n == 1)
			d.modified = true
		}
		d.finishChange(n > 0, false)

	case "D":
		start, end, ok := d.currentLineTail()
		if ok {
			outcome := operator.Apply(d.Buf, d.Regs, "d", start, end, buffer.Charwise, register, start == end, d.Settings.ShiftWidth)
			d.modified = outcome.Ok || d.modified
		}
		d.finishChange(true, false)

	case "C":
		d.beginInsertSession(mode.Insert)
		start, end, ok := d.currentLineTail()
		if ok {
			operator.Apply(d.Buf, d.Regs, "c", start, end, buffer.Charwise, register, start == end, d.Settings.ShiftWidth)
			d.modified = true
		}
		d.Mode.EnterInsert()
		d.finishChange(true, true)

	case "Y":
		start, end := d.linesSpan(count)
		operator.Apply(d.Buf, d.Regs, "y", start, end, buffer.Linewise, register, false, d.Settings.ShiftWidth)
		d.finishChange(false, false)

	case "s":
		d.beginInsertSession(mode.Insert)
		line := d.Buf.LineRunes(d.Buf.Cursor().Row)
		col := d.Buf.Cursor().Col
		endCol := col + count - 1
		if endCol >= len(line) {
			endCol = len(line) - 1
		}
		start := buffer.Position{Row: d.Buf.Cursor().Row, Col: col}
		end := start
		if endCol >= col {
			end = buffer.Position{Row: d.Buf.Cursor().Row, Col: endCol}
		}
		outcome := operator.Apply(d.Buf, d.Regs, "c", start, end, buffer.Charwise, register, start == end, d.Settings.ShiftWidth)
		d.modified = true
		d.finishChange(true, outcome.EntersInsert)
		d.Mode.EnterInsert()

	case "S":
		d.beginInsertSession(mode.Insert)
		start, end := d.linesSpan(count)
		outcome := operator.Apply(d.Buf, d.Regs, "c", start, end, buffer.Linewise, register, false, d.Settings.ShiftWidth)
		d.modified = true
		d.finishChange(true, outcome.EntersInsert)
		d.Mode.EnterInsert()

	case "p":
		d.Regs.PutAfter(d.Buf, register, count)
		d.modified = true
		d.finishChange(true, false)

	case "P":
		d.Regs.PutBefore(d.Buf, register, count)
		d.modified = true
		d.finishChange(true, false)

	case "J":
		changed := d.Buf.JoinLines(count, true)
		d.modified = d.modified || changed
		d.finishChange(changed, false)

	case "gJ":
		changed := d.Buf.JoinLines(count, false)
		d.modified = d.modified || changed
		d.finishChange(changed, false)

	case "~":
		d.toggleCaseUnderCursor(count)
		d.finishChange(true, false)

	case "u":
		if !d.Buf.Undo() {
			d.setStatus("Already at oldest change")
			d.beep()
		}
		d.discardChange()

	case "U":
		if !d.Buf.Undo() {
			d.setStatus("Already at oldest change")
			d.beep()
		}
		d.discardChange()

	case "ctrl-r":
		if !d.Buf.Redo() {
			d.setStatus("Already at newest change")
			d.beep()
		}
		d.discardChange()

	case ".":
		if err := d.repeatLastChange(count); err != nil {
			d.resetPending()
			return err
		}
		d.discardChange()

	case "/":
		d.cmdlineKind = cmdlineSearchForward
		d.cmdlineText = ""
		d.Mode.EnterCommandLine()
		d.discardChange()

	case "?":
		d.cmdlineKind = cmdlineSearchBackward
		d.cmdlineText = ""
		d.Mode.EnterCommandLine()
		d.discardChange()

	case "n":
		d.repeatSearch(false)
		d.discardChange()

	case "N":
		d.repeatSearch(true)
		d.discardChange()

	case "*":
		d.searchWordUnderCursor(true)
		d.discardChange()

	case "#":
		d.searchWordUnderCursor(false)
		d.discardChange()

	case "ctrl-o":
		d.Buf.JumpOlder()
		d.discardChange()

	case "ctrl-i":
		d.Buf.JumpNewer()
		d.discardChange()

	case "i":
		d.beginInsertSession(mode.Insert)
		d.Mode.EnterInsert()
		d.finishChange(true, true)

	case "a":
		line := d.Buf.LineRunes(d.Buf.Cursor().Row)
		col := d.Buf.Cursor().Col
		if len(line) > 0 {
			col++
		}
		d.Buf.MoveCursorInsert(d.Buf.Cursor().Row, col)
		d.beginInsertSession(mode.Insert)
		d.Mode.EnterInsert()
		d.finishChange(true, true)

	case "I":
		d.Buf.MoveToFirstNonBlank()
		d.beginInsertSession(mode.Insert)
		d.Mode.EnterInsert()
		d.finishChange(true, true)

	case "A":
		line := d.Buf.LineRunes(d.Buf.Cursor().Row)
		d.Buf.MoveCursorInsert(d.Buf.Cursor().Row, len(line))
		d.beginInsertSession(mode.Insert)
		d.Mode.EnterInsert()
		d.finishChange(true, true)

	case "o":
		d.beginInsertSession(mode.Insert)
		row := d.Buf.Cursor().Row
		d.Buf.InsertLinesBelow(row, []string{""})
		d.Buf.MoveCursorInsert(row+1, 0)
		if d.Settings.AutoIndent {
			d.applyAutoIndent()
		}
		d.modified = true
		d.Mode.EnterInsert()
		d.finishChange(true, true)

	case "O":
		d.beginInsertSession(mode.Insert)
		row := d.Buf.Cursor().Row
		d.Buf.InsertLinesAbove(row, []string{""})
		d.Buf.MoveCursorInsert(row, 0)
		if d.Settings.AutoIndent {
			d.applyAutoIndent()
		}
		d.modified = true
		d.Mode.EnterInsert()
		d.finishChange(true, true)

	case "R":
		d.beginInsertSession(mode.Replace)
		d.Mode.EnterReplace()
		d.finishChange(true, true)

	case "v":
		d.Mode.ToggleVisual(mode.Visual, d.Buf.Cursor())
		d.finishChange(false, false)

	case "V":
		d.Mode.ToggleVisual(mode.VisualLine, d.Buf.Cursor())
		d.finishChange(false, false)

	case "\x16":
		d.Mode.ToggleVisual(mode.VisualBlock, d.Buf.Cursor())
		d.finishChange(false, false)

	case ":":
		d.cmdlineKind = cmdlineEx
		d.cmdlineText = ""
		d.Mode.EnterCommandLine()
		d.finishChange(false, false)

	default:
		d.setStatus("Unknown command: " + def.Keys)
		d.beep()
		d.discardChange()
	}

	d.resetPending()
	return nil
}

// currentLineTail returns [cursor, end-of-line] inclusive, ok=false if
// the line is empty (D/C on an empty line touch nothing).
func (d *Dispatcher) currentLineTail() (buffer.Position, buffer.Position, bool) {
	row := d.Buf.Cursor().Row
	line := d.Buf.LineRunes(row)
	if len(line) == 0 {
		return buffer.Position{}, buffer.Position{}, false
	}
	start := d.Buf.Cursor()
	end := buffer.Position{Row: row, Col: len(line) - 1}
	if end.Col < start.Col {
		end = start
	}
	return start, end, true
}

// linesSpan returns the linewise [start,end] span of count lines
// beginning at the cursor row, clamped to the buffer.
func (d *Dispatcher) linesSpan(count int) (buffer.Position, buffer.Position) {
	row := d.Buf.Cursor().Row
	last := row + count - 1
	if max := d.Buf.LineCount() - 1; last > max {
		last = max
	}
	return buffer.Position{Row: row, Col: 0}, buffer.Position{Row: last, Col: 0}
}

func (d *Dispatcher) toggleCaseUnderCursor(count int) {
	row := d.Buf.Cursor().Row
	col := d.Buf.Cursor().Col
	line := d.Buf.LineRunes(row)
	if len(line) == 0 {
		return
	}
	end := col + count - 1
	if end >= len(line) {
		end = len(line) - 1
	}
	if end < col {
		return
	}
	operator.Apply(d.Buf, d.Regs, "g~", buffer.Position{Row: row, Col: col}, buffer.Position{Row: row, Col: end}, buffer.Charwise, registers.Unnamed, false, d.Settings.ShiftWidth)
	d.modified = true
	next := end + 1
	if next > len(line) {
		next = len(line)
	}
	d.Buf.MoveCursor(row, next)
}

func (d *Dispatcher) repeatSearch(reverse bool) {
	from := d.Buf.Cursor()
	m, ok, err := d.Search.Repeat(d.Buf, from, reverse, d.Settings.IgnoreCase, d.Settings.SmartCase)
	if err != nil {
		d.setStatus("search error: " + err.Error())
		d.beep()
		return
	}
	forward := d.Search.LastForward()
	if reverse {
		forward = !forward
	}
	if !ok || d.rejectedByWrapscan(from, m.Start, forward) {
		d.setStatus("Pattern not found")
		d.beep()
		return
	}
	d.Buf.PushJumpPosition()
	d.Buf.MoveCursor(m.Start.Row, m.Start.Col)
}

// rejectedByWrapscan reports whether a match only reachable by wrapping
// past the buffer edge must be discarded because 'wrapscan' is off.
func (d *Dispatcher) rejectedByWrapscan(from, match buffer.Position, forward bool) bool {
	if d.Settings.WrapScan {
		return false
	}
	if forward {
		return match.Row < from.Row || (match.Row == from.Row && match.Col <= from.Col)
	}
	return match.Row > from.Row || (match.Row == from.Row && match.Col >= from.Col)
}

func (d *Dispatcher) searchWordUnderCursor(forward bool) {
	word, ok := search.WordAtCursor(d.Buf)
	if !ok {
		d.setStatus("No word under cursor")
		d.beep()
		return
	}
	pattern := `\b` + word + `\b`
	var m search.Match
	var found bool
	var err error
	if forward {
		m, found, err = d.Search.Forward(d.Buf, pattern, d.Buf.Cursor(), d.Settings.IgnoreCase, d.Settings.SmartCase)
	} else {
		m, found, err = d.Search.Backward(d.Buf, pattern, d.Buf.Cursor(), d.Settings.IgnoreCase, d.Settings.SmartCase)
	}
	if err != nil {
		d.setStatus("search error: " + err.Error())
		d.beep()
		return
	}
	if !found || d.rejectedByWrapscan(d.Buf.Cursor(), m.Start, forward) {
		d.setStatus("Pattern not found")
		d.beep()
		return
	}
	d.Buf.PushJumpPosition()
	d.Buf.MoveCursor(m.Start.Row, m.Start.Col)
}
