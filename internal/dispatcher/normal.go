package dispatcher

import (
	"github.com/bmf-san/vigor/internal/buffer"
	"github.com/bmf-san/vigor/internal/command"
	"github.com/bmf-san/vigor/internal/keys"
	"github.com/bmf-san/vigor/internal/mode"
	"github.com/bmf-san/vigor/internal/operator"
)

// handleCommandKey runs the command grammar for
// Normal, Visual*, and Operator-Pending: accumulate an optional
// register selector and count, then match the remaining keys against
// the command registry, exactly or as a prefix.
func (d *Dispatcher) handleCommandKey(k keys.Key) error {
	if k.Special == keys.Esc {
		return d.handleEscape()
	}
	tok, ok := token(k)
	if !ok {
		return nil
	}

	if isDigit(tok) {
		buf := &d.pendingCountStr
		if d.pendingOperator != "" {
			buf = &d.motionCountStr
		}
		if tok != "0" || *buf != "" {
			*buf += tok
			return nil
		}
		// a bare "0" with no digits already accumulated is the '0'
		// motion itself, so it falls through to the registry lookup.
	}

	if d.pendingKeys == "" && !d.awaitingRegister && tok == "\"" {
		d.awaitingRegister = true
		return nil
	}
	if d.awaitingRegister {
		d.pendingRegister = k.Rune
		d.awaitingRegister = false
		return nil
	}

	curMode := d.Mode.Current()

	if d.pendingOperator != "" && d.pendingKeys == "" && isDoubledOperator(d.pendingOperator, tok) {
		return d.applyLinewiseOperatorShortcut()
	}

	d.pendingKeys += tok
	if def, found := d.Registry.Exact(d.pendingKeys, curMode); found {
		return d.onExactMatch(def, curMode)
	}
	if d.Registry.IsPrefix(d.pendingKeys, curMode) {
		return nil
	}

	d.setStatus("Unknown command: " + d.pendingKeys)
	d.beep()
	d.discardChange()
	d.resetPending()
	return ErrUnknownCommand
}

// isDoubledOperator reports whether tok completes a linewise-shortcut
// doubling of op (dd, cc, yy, >>, <<, ==, guu, gUU, g~~): vim spells
// these as the operator's last key pressed twice, not the whole operator
// sequence repeated.
func isDoubledOperator(op, tok string) bool {
	return op != "" && tok == op[len(op)-1:]
}

func (d *Dispatcher) onExactMatch(def command.Def, curMode mode.Mode) error {
	switch {
	case def.ConsumesArg:
		return d.beginArgWait(def)
	case def.SetsOperatorPending:
		return d.beginOperatorPending(def)
	case d.pendingOperator != "" && (def.Kind == command.MotionKind || def.Kind == command.TextObjectKind):
		return d.completeOperatorMotion(def, 0)
	case curMode.IsVisual() && def.Kind == command.TextObjectKind:
		return d.applyTextObjectToVisualSelection(def)
	case curMode.IsVisual() && def.Kind == command.OperatorKind:
		return d.applyOperatorOverVisualSelection(def)
	case def.Kind == command.MotionKind:
		return d.executeMotionStandalone(def, 0)
	default:
		return d.executeStandalone(def)
	}
}

// beginOperatorPending records the operator, entering the
// Operator-Pending substate to await a motion/text-object. The
// pre-operator count stays in its digit buffer; effectiveCount folds it
// in once the operand arrives.
func (d *Dispatcher) beginOperatorPending(def command.Def) error {
	d.pendingOperator = def.ID
	d.Mode.EnterOperatorPending(def.ID)
	d.pendingKeys = ""
	return nil
}

// applyLinewiseOperatorShortcut implements dd/cc/yy/>>/<</==/guu/gUU/g~~:
// the operator applied linewise to effectiveCount lines starting at the
// cursor row.
func (d *Dispatcher) applyLinewiseOperatorShortcut() error {
	op := d.pendingOperator
	count := d.effectiveCount()
	row := d.Buf.Cursor().Row
	last := row + count - 1
	if max := d.Buf.LineCount() - 1; last > max {
		last = max
	}
	start := buffer.Position{Row: row, Col: 0}
	end := buffer.Position{Row: last, Col: 0}
	register := d.resolveRegister()
	if op == "c" {
		d.beginInsertSession(mode.Insert)
	}
	outcome := operator.Apply(d.Buf, d.Regs, op, start, end, buffer.Linewise, register, false, d.Settings.ShiftWidth)
	if outcome.Ok {
		d.modified = true
	}
	d.finishChange(op != "y", outcome.EntersInsert)
	if outcome.EntersInsert {
		// Insert is not reachable from Operator-Pending; step through
		// Normal first.
		d.Mode.ExitToNormal()
		d.Mode.EnterInsert()
	}
	d.resetPending()
	return nil
}

// handleEscape cancels whatever Normal/Visual/Operator-Pending command
// is in progress, or leaves a visual mode back to Normal.
func (d *Dispatcher) handleEscape() error {
	d.discardChange()
	if d.Mode.Current().IsVisual() {
		d.Mode.ExitToNormal()
	}
	d.resetPending()
	return nil
}
