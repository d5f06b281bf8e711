package dispatcher

import "github.com/bmf-san/vigor/internal/keys"

// RepeatRecord is the raw key sequence '.' replays. Recording the actual
// keys (rather than a structured operator/motion/count triple) means '.'
// automatically handles every change-producing command, including ones
// that enter Insert mode and run for an arbitrary number of keystrokes,
// without the dispatcher needing a second code path per command kind.
type RepeatRecord struct {
	Keys []keys.Key
}

// beginChange resets the in-progress change-key buffer to just k,
// starting a fresh recording attempt. Call this at the start of any
// top-level (non-continuation) key in Normal/Visual/Operator-Pending.
func (d *Dispatcher) beginChange(k keys.Key) {
	if d.replaying {
		return
	}
	d.changeBuf = []keys.Key{k}
}

// continueChange appends k to the in-progress change-key buffer, for a
// key that extends a command already under way (count digits, an
// operator's motion, an f/r/m argument, or an Insert-mode keystroke).
func (d *Dispatcher) continueChange(k keys.Key) {
	if d.replaying {
		return
	}
	d.changeBuf = append(d.changeBuf, k)
}

// commitChange promotes the accumulated buffer to lastChange.
func (d *Dispatcher) commitChange() {
	if d.replaying || len(d.changeBuf) == 0 {
		return
	}
	d.lastChange = &RepeatRecord{Keys: append([]keys.Key(nil), d.changeBuf...)}
	d.changeBuf = nil
	d.changePendingInsert = false
}

// discardChange drops the accumulated buffer without recording a change
// (the command that just ran was not repeatable, e.g. a motion, a yank,
// undo, or a search).
func (d *Dispatcher) discardChange() {
	d.changeBuf = nil
	d.changePendingInsert = false
}

// finishChange is called once a standalone/operator command completes.
// repeatable commands that also enter Insert mode defer their commit
// until the Insert session ends (see leaveInsert); everything else
// resolves immediately.
func (d *Dispatcher) finishChange(repeatable, entersInsert bool) {
	if !repeatable {
		d.discardChange()
		return
	}
	if entersInsert {
		d.changePendingInsert = true
		return
	}
	d.commitChange()
}

// repeatLastChange replays lastChange ('.'). A nonzero count is spliced
// in by simply re-feeding the original keys count times, matching '.''s
// traditional behavior of repeating the whole recorded command verbatim
// once per invocation rather than trying to rewrite an embedded count.
func (d *Dispatcher) repeatLastChange(count int) error {
	if d.lastChange == nil {
		d.setStatus("No previous change")
		d.beep()
		return nil
	}
	if count < 1 {
		count = 1
	}
	// The '.' key (and any count typed before it) is still pending; clear
	// it so the replayed keys parse as a fresh command.
	d.resetPending()
	seq := d.lastChange.Keys
	d.replaying = true
	defer func() { d.replaying = false }()
	for i := 0; i < count; i++ {
		for _, k := range seq {
			if err := d.dispatchKey(k); err != nil {
				return err
			}
		}
	}
	return nil
}
