// Package termio owns the editor's side of the physical terminal: raw
// mode for the modal key loop, the readable-input probe that tells a
// lone Esc press apart from the head of an escape sequence, and the
// byte-to-key decoder that turns the raw stream into the key tokens the
// engine consumes.
package termio

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Console is the editing session's handle on its controlling terminal.
// Raw mode stays on for the whole session; Restore must run on every
// exit path or the user's shell is left in raw mode.
type Console struct {
	in    *os.File
	saved *term.State
}

// NewConsole wraps the tty the session reads keys from (normally
// os.Stdin).
func NewConsole(in *os.File) *Console { return &Console{in: in} }

// IsTerminal reports whether the console's input is an actual tty. The
// session refuses to start on a pipe: a modal editor with no terminal
// has no way to show the buffer it is editing.
func (c *Console) IsTerminal() bool { return term.IsTerminal(int(c.in.Fd())) }

// EnterRaw switches the terminal into raw mode for keystroke-at-a-time
// input, remembering the prior state for Restore.
func (c *Console) EnterRaw() error {
	st, err := term.MakeRaw(int(c.in.Fd()))
	if err != nil {
		return fmt.Errorf("termio: enter raw mode: %w", err)
	}
	c.saved = st
	return nil
}

// Restore puts the terminal back the way EnterRaw found it. Calling it
// without a prior EnterRaw (or twice) is a no-op.
func (c *Console) Restore() error {
	if c.saved == nil {
		return nil
	}
	st := c.saved
	c.saved = nil
	if err := term.Restore(int(c.in.Fd()), st); err != nil {
		return fmt.Errorf("termio: restore terminal: %w", err)
	}
	return nil
}

// Size returns the terminal's current dimensions in character cells.
func (c *Console) Size() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(int(c.in.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("termio: terminal size: %w", err)
	}
	return cols, rows, nil
}

// InputPending reports whether at least one byte is already readable
// without blocking. The decoder calls this right after reading an Esc
// byte: nothing pending means the user pressed the Escape key itself,
// anything pending means the Esc opens a CSI/SS3 sequence.
func (c *Console) InputPending() (bool, error) {
	return readReady(c.in.Fd())
}

// Decoder returns a key decoder over this console's input, wired to its
// pending-input probe.
func (c *Console) Decoder() *Decoder {
	return NewDecoder(c.in, c.InputPending)
}
