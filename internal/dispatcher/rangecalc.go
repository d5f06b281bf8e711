package dispatcher

import (
	"github.com/bmf-san/vigor/internal/buffer"
	"github.com/bmf-san/vigor/internal/command"
	"github.com/bmf-san/vigor/internal/mode"
	"github.com/bmf-san/vigor/internal/motion"
	"github.com/bmf-san/vigor/internal/operator"
	"github.com/bmf-san/vigor/internal/textobject"
)

// rangeFromMotion folds a motion's raw (start, cursor-after) span and its
// inclusive/linewise classification into the [start,end] + RangeKind an
// operator expects. buffer.Buffer's Charwise convention already treats
// end.Col as inclusive (range.go's TextRange/DeleteRange add one), so an
// *exclusive* motion's destination is converted here by backing its end
// position up one cell — or, when that destination sits at column 0 of a
// later line, by folding the span into a linewise range from start's row
// through the line before the motion's landing line.
func rangeFromMotion(b *buffer.Buffer, start, end buffer.Position, res motion.Result) (buffer.Position, buffer.Position, buffer.RangeKind) {
	if res.Linewise {
		if end.Row < start.Row {
			start, end = end, start
		}
		return start, end, buffer.Linewise
	}
	if end.Row < start.Row || (end.Row == start.Row && end.Col < start.Col) {
		start, end = end, start
	}
	if res.Inclusive {
		return start, end, buffer.Charwise
	}
	if end.Row > start.Row && end.Col == 0 {
		return buffer.Position{Row: start.Row, Col: 0}, buffer.Position{Row: end.Row - 1, Col: 0}, buffer.Linewise
	}
	if end.Col > 0 {
		end.Col--
		return start, end, buffer.Charwise
	}
	// end.Col == 0 on the same row as start: the motion didn't move
	// anywhere (e.g. 'w' on the buffer's last word); an empty range.
	return start, start, buffer.Charwise
}

// completeOperatorMotion finishes an Operator-Pending command once its
// motion or text object key has matched. arg carries an f/F/t/T target
// character when def.ConsumesArg routed here via handleArgExpected.
func (d *Dispatcher) completeOperatorMotion(def command.Def, arg rune) error {
	start := d.Buf.Cursor()
	count := d.rawEffectiveCount()

	var end buffer.Position
	var kind buffer.RangeKind
	if def.Kind == command.TextObjectKind {
		s, e, k, found := textobject.Resolve(d.Buf, def.ID, count)
		if !found {
			d.abortOperatorPending()
			return nil
		}
		start, end, kind = s, e, k
	} else {
		motionID := def.ID
		// "cw"/"cW" on a non-blank act like "ce"/"cE": the change does
		// not consume the whitespace after the word.
		if d.pendingOperator == "c" && (motionID == "w" || motionID == "W") {
			if ch, onChar := d.Buf.CharAt(start); onChar && ch != ' ' && ch != '\t' {
				if motionID == "w" {
					motionID = "e"
				} else {
					motionID = "E"
				}
			}
		}
		res := motion.Apply(d.Buf, motionID, count, arg, d.viewport, &d.find)
		if !res.Ok {
			d.abortOperatorPending()
			return nil
		}
		end = d.Buf.Cursor()
		start, end, kind = rangeFromMotion(d.Buf, start, end, res)
	}

	op := d.pendingOperator
	register := d.resolveRegister()
	charwiseSingle := kind == buffer.Charwise && start == end
	if op == "c" {
		d.beginInsertSession(mode.Insert)
	}
	outcome := operator.Apply(d.Buf, d.Regs, op, start, end, kind, register, charwiseSingle, d.Settings.ShiftWidth)
	if outcome.Ok {
		d.modified = true
	}
	d.finishChange(op != "y", outcome.EntersInsert)
	if outcome.EntersInsert {
		// Insert is not reachable from Operator-Pending; step through
		// Normal first, as the Visual-mode operator path does.
		d.Mode.ExitToNormal()
		d.Mode.EnterInsert()
	}
	d.resetPending()
	return nil
}

// abortOperatorPending cancels a pending operator whose motion/text
// object failed to find a destination (the motion.Result.Ok==false
// contract), leaving the buffer untouched.
func (d *Dispatcher) abortOperatorPending() {
	d.discardChange()
	d.resetPending()
}

// executeMotionStandalone runs a motion with no pending operator: plain
// cursor movement in Normal mode, or selection extension in Visual mode.
func (d *Dispatcher) executeMotionStandalone(def command.Def, arg rune) error {
	count := d.rawEffectiveCount()
	if def.ID == "G" || def.ID == "gg" {
		d.Buf.PushJumpPosition()
	}
	res := motion.Apply(d.Buf, def.ID, count, arg, d.viewport, &d.find)
	if !res.Ok {
		d.beep()
	}
	if d.Mode.Current().IsVisual() {
		d.Mode.UpdateVisualHead(d.Buf.Cursor())
	}
	d.discardChange()
	d.resetPending()
	return nil
}

// applyOperatorOverVisualSelection implements an operator key pressed
// while a visual selection is active (e.g. 'd' in Visual mode deletes
// the selection directly, with no motion to wait for).
func (d *Dispatcher) applyOperatorOverVisualSelection(def command.Def) error {
	start, end, kind := d.Mode.Selection()
	register := d.resolveRegister()
	charwiseSingle := kind == buffer.Charwise && start == end
	if def.ID == "c" {
		d.beginInsertSession(mode.Insert)
	}
	outcome := operator.Apply(d.Buf, d.Regs, def.ID, start, end, kind, register, charwiseSingle, d.Settings.ShiftWidth)
	if outcome.Ok {
		d.modified = true
	}
	d.Mode.ExitToNormal()
	// A Visual-mode operator application isn't replayed shape-for-shape
	// by '.' the way an Operator-Pending one is (the selection it acted
	// over has no stable motion to redrive); it still ends whatever
	// change is in progress without polluting the next one.
	d.discardChange()
	if outcome.EntersInsert {
		d.Mode.EnterInsert()
	}
	d.resetPending()
	return nil
}

// applyTextObjectToVisualSelection implements a text object key pressed
// directly in Visual mode (e.g. "viw"): it replaces the selection bounds
// outright rather than acting as an operator's operand.
func (d *Dispatcher) applyTextObjectToVisualSelection(def command.Def) error {
	count := d.effectiveCount()
	start, end, _, found := textobject.Resolve(d.Buf, def.ID, count)
	if !found {
		d.beep()
		d.discardChange()
		d.resetPending()
		return nil
	}
	d.Mode.SetSelectionBounds(start, end)
	d.Buf.MoveCursor(end.Row, end.Col)
	d.discardChange()
	d.resetPending()
	return nil
}
