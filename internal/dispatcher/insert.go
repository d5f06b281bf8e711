package dispatcher

import (
	"github.com/bmf-san/vigor/internal/buffer"
	"github.com/bmf-san/vigor/internal/keys"
	"github.com/bmf-san/vigor/internal/mode"
	"github.com/bmf-san/vigor/internal/registers"
)

// insertSession tracks the state of an in-progress Insert/Replace run so
// it can be closed out correctly: the cursor steps back one cell on
// leaving Insert (vi never leaves the cursor past the last character in
// Normal mode), and the runes actually typed are mirrored into the '.'
// register.
type insertSession struct {
	active bool
	kind   mode.Mode // mode.Insert or mode.Replace
	text   []rune
}

// beginInsertSession starts tracking a new Insert/Replace run and opens
// a compound-change bracket so the whole session (plus any mutation the
// entering command performs — the line 'o' opens, the range 'c' deletes)
// undoes as a single step. Callers must invoke it BEFORE the entering
// command's own buffer mutations; leaveInsert closes the bracket.
func (d *Dispatcher) beginInsertSession(kind mode.Mode) {
	d.insertSession = insertSession{active: true, kind: kind}
	d.Buf.BeginCompoundChange()
}

// handleInsertLike runs Insert and Replace mode: every rune typed
// mutates the buffer immediately, Enter splits the line,
// Backspace deletes backward, and Esc returns to Normal mode.
func (d *Dispatcher) handleInsertLike(k keys.Key) error {
	if k.Special == keys.Esc || (k.Ctrl && k.Rune == '[') {
		return d.leaveInsert()
	}

	switch k.Special {
	case keys.Enter:
		d.Buf.SplitLineAtCursor()
		if d.Settings.AutoIndent {
			d.applyAutoIndent()
		}
		d.insertSession.text = append(d.insertSession.text, '\n')
		d.modified = true
		return nil
	case keys.Backspace:
		deleted := d.Buf.Backspace()
		if deleted != "" && len(d.insertSession.text) > 0 {
			d.insertSession.text = d.insertSession.text[:len(d.insertSession.text)-1]
		}
		d.modified = true
		return nil
	case keys.Tab:
		d.insertTabOrSpaces()
		return nil
	}

	if k.Ctrl || k.Special != keys.None {
		return nil // unhandled control/navigation key while typing: ignored
	}

	if d.Mode.Current() == mode.Replace {
		d.overtypeRune(k.Rune)
	} else {
		d.Buf.InsertChar(k.Rune)
	}
	d.insertSession.text = append(d.insertSession.text, k.Rune)
	d.modified = true
	return nil
}

func (d *Dispatcher) overtypeRune(r rune) {
	if d.Buf.ReplaceChar(r, 1) {
		d.Buf.MoveCursorInsert(d.Buf.Cursor().Row, d.Buf.Cursor().Col+1)
		return
	}
	d.Buf.InsertChar(r)
}

func (d *Dispatcher) insertTabOrSpaces() {
	if d.Settings.ExpandTab {
		width := d.Settings.TabStop
		if width < 1 {
			width = 8
		}
		for i := 0; i < width; i++ {
			d.Buf.InsertChar(' ')
			d.insertSession.text = append(d.insertSession.text, ' ')
		}
		d.modified = true
		return
	}
	d.Buf.InsertChar('\t')
	d.insertSession.text = append(d.insertSession.text, '\t')
	d.modified = true
}

// applyAutoIndent copies the previous line's leading whitespace onto the
// freshly opened line.
func (d *Dispatcher) applyAutoIndent() {
	row := d.Buf.Cursor().Row
	if row == 0 {
		return
	}
	prev := d.Buf.LineRunes(row - 1)
	i := 0
	for i < len(prev) && (prev[i] == ' ' || prev[i] == '\t') {
		i++
	}
	if i == 0 {
		return
	}
	d.Buf.InsertText(string(prev[:i]))
}

// leaveInsert returns to Normal mode, steps the cursor back one cell,
// records the inserted text into the '.' register, and — if this
// session started a repeatable change — commits it for '.' to replay.
func (d *Dispatcher) leaveInsert() error {
	text := string(d.insertSession.text)
	if text != "" {
		d.Regs.SetSpecial(registers.InsertedReg, text, buffer.Charwise)
	}
	if d.insertSession.active {
		d.Buf.EndCompoundChange()
	}
	d.insertSession = insertSession{}
	d.Mode.ExitToNormal()
	cur := d.Buf.Cursor()
	if cur.Col > 0 {
		d.Buf.MoveCursor(cur.Row, cur.Col-1)
	}
	if d.changePendingInsert {
		d.commitChange()
	} else {
		d.discardChange()
	}
	return nil
}
