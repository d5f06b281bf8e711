package dispatcher

import (
	"github.com/bmf-san/vigor/internal/buffer"
	"github.com/bmf-san/vigor/internal/command"
	"github.com/bmf-san/vigor/internal/keys"
	"github.com/bmf-san/vigor/internal/mode"
	"github.com/bmf-san/vigor/internal/operator"
)

// beginArgWait starts the one-more-key wait for a ConsumesArg command,
// choosing the ArgExpected sub-state def.ID maps to. 'q' is special:
// pressed while already recording, it stops the recording immediately
// rather than waiting for a register name.
func (d *Dispatcher) beginArgWait(def command.Def) error {
	if def.ID == "q" && d.recorder.Active() {
		reg := d.recorder.Register()
		seq := d.recorder.Stop()
		if d.recordAppend {
			d.savedMacros[reg] = append(d.savedMacros[reg], seq...)
			d.recordAppend = false
		} else {
			d.savedMacros[reg] = seq
		}
		d.setStatus("Recorded @" + string(reg))
		d.discardChange()
		d.resetPending()
		return nil
	}

	d.argDef = def
	switch def.ID {
	case "f", "F", "t", "T":
		d.Mode.SetArgExpected(mode.ArgFind)
	case "r":
		d.Mode.EnterReplaceSingle()
		d.Mode.SetArgExpected(mode.ArgReplace)
	case "m", "`", "'":
		d.Mode.SetArgExpected(mode.ArgMark)
	case "q":
		d.Mode.SetArgExpected(mode.ArgMacroRecord)
	case "@":
		d.Mode.SetArgExpected(mode.ArgMacroPlay)
	default:
		d.Mode.SetArgExpected(mode.ArgMark)
	}
	return nil
}

// handleArgExpected completes whichever ConsumesArg command is waiting,
// per the ArgExpected sub-state recorded in beginArgWait.
func (d *Dispatcher) handleArgExpected(k keys.Key) error {
	def := d.argDef
	ae := d.Mode.GetArgExpected()
	d.Mode.ClearArgExpected()

	// Any named key (Esc included) cancels the wait: f<Esc>, r<Up> and
	// friends abandon the command rather than consuming a bogus rune.
	if k.Special != keys.None {
		if d.Mode.Current() == mode.ReplaceSingle {
			d.Mode.ExitReplaceSingle()
		}
		d.abortOperatorPending()
		return nil
	}

	switch ae {
	case mode.ArgFind:
		return d.completeFindArg(def, k.Rune)
	case mode.ArgReplace:
		return d.completeReplaceArg(k.Rune)
	case mode.ArgMark:
		return d.completeMarkArg(def, k.Rune)
	case mode.ArgMacroRecord:
		return d.completeMacroRecordArg(k.Rune)
	case mode.ArgMacroPlay:
		return d.completeMacroPlayArg(k.Rune)
	}
	d.resetPending()
	return nil
}

func (d *Dispatcher) completeFindArg(def command.Def, target rune) error {
	if d.pendingOperator != "" {
		return d.completeOperatorMotion(def, target)
	}
	return d.executeMotionStandalone(def, target)
}

func (d *Dispatcher) completeReplaceArg(r rune) error {
	d.Mode.ExitReplaceSingle()
	count := d.effectiveCount()
	if !d.Buf.ReplaceChar(r, count) {
		d.setStatus("Not enough characters to replace")
		d.beep()
		d.discardChange()
		d.resetPending()
		return nil
	}
	d.modified = true
	d.finishChange(true, false)
	d.resetPending()
	return nil
}

func (d *Dispatcher) completeMarkArg(def command.Def, name rune) error {
	switch def.ID {
	case "m":
		d.Buf.SetNamedMark(name)
		d.discardChange()
		d.resetPending()
		return nil
	case "`", "'":
		pos, ok := d.Buf.NamedMark(name)
		if !ok {
			d.setStatus("Mark not set")
			d.beep()
			d.abortOperatorPending()
			return ErrMarkNotSet
		}
		linewise := def.ID == "'"
		if d.pendingOperator != "" {
			return d.applyOperatorToMarkJump(pos, linewise)
		}
		d.Buf.PushJumpPosition()
		if linewise {
			d.Buf.MoveCursor(pos.Row, 0)
			d.Buf.MoveToFirstNonBlank()
		} else {
			d.Buf.MoveCursor(pos.Row, pos.Col)
		}
		d.discardChange()
		d.resetPending()
		return nil
	}
	d.resetPending()
	return nil
}

// applyOperatorToMarkJump completes an operator whose operand is a mark
// jump (d`a, d'a): neither a motion nor a text object, so it is folded
// into a range directly rather than going through rangeFromMotion.
func (d *Dispatcher) applyOperatorToMarkJump(pos buffer.Position, linewise bool) error {
	start := d.Buf.Cursor()
	end := pos
	kind := buffer.Charwise
	if linewise {
		kind = buffer.Linewise
	}
	if end.Row < start.Row || (!linewise && end.Row == start.Row && end.Col < start.Col) {
		start, end = end, start
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
		// Normal first.
		d.Mode.ExitToNormal()
		d.Mode.EnterInsert()
	}
	d.resetPending()
	return nil
}

func (d *Dispatcher) completeMacroRecordArg(register rune) error {
	if register == '"' {
		register = 0
	}
	// q{A-Z} records into the lowercase register, appending on stop.
	d.recordAppend = register >= 'A' && register <= 'Z'
	if d.recordAppend {
		register += 'a' - 'A'
	}
	d.recorder.Start(register)
	d.discardChange()
	d.resetPending()
	return nil
}

func (d *Dispatcher) completeMacroPlayArg(register rune) error {
	reg := register
	if reg == '@' {
		reg = d.lastPlayedReg
	}
	if reg == 0 {
		d.setStatus("No previously used register")
		d.beep()
		d.discardChange()
		d.resetPending()
		return nil
	}
	seq, ok := d.savedMacros[reg]
	if !ok {
		d.setStatus("No macro recorded in register " + string(reg))
		d.beep()
		d.discardChange()
		d.resetPending()
		return nil
	}
	d.lastPlayedReg = reg
	count := d.effectiveCount()
	// The '@' key (and any count typed before it) is still pending; clear
	// it so the played-back keys parse as fresh commands.
	d.resetPending()
	// One cancellation check per key: the external program may call
	// CancelMacro between keys, which aborts playback and returns the
	// editor to Normal mode with the buffer in its current state.
	feed := func(k keys.Key) error {
		if d.cancelled {
			return ErrPlaybackCancelled
		}
		return d.dispatchKey(k)
	}
	err := d.player.Play(seq, count, feed)
	d.discardChange()
	d.resetPending()
	if err == ErrPlaybackCancelled || d.cancelled {
		d.cancelled = false
		// A playback aborted mid-Insert leaves its session open; close
		// the undo bracket before forcing the mode back to Normal.
		if d.insertSession.active {
			d.Buf.EndCompoundChange()
			d.insertSession = insertSession{}
		}
		if d.Mode.Current() != mode.Normal {
			d.Mode.ExitToNormal()
		}
		d.setStatus("Interrupted")
		return nil
	}
	if err != nil {
		d.setStatus(err.Error())
		return ErrMacroDepthExceeded
	}
	return nil
}
