// Package dispatcher implements the heart of the editor: it parses the
// incoming key stream into (count, register, operator, motion|text_object)
// tuples against the command registry and the current modal state, and
// invokes the buffer/registers/search/macro subsystems to carry out the
// result.
//
// Command lookup goes through command.Registry for classification only;
// execution is an exhaustive switch over each Def's stable ID, never a
// string-keyed handler map. The Dispatcher owns every piece of state a
// key can touch — buffer, modal state, registers, search, macros —
// rather than passing a shared context object around.
package dispatcher

import (
	"github.com/bmf-san/vigor/internal/buffer"
	"github.com/bmf-san/vigor/internal/command"
	"github.com/bmf-san/vigor/internal/ex"
	"github.com/bmf-san/vigor/internal/keys"
	"github.com/bmf-san/vigor/internal/macro"
	"github.com/bmf-san/vigor/internal/mode"
	"github.com/bmf-san/vigor/internal/motion"
	"github.com/bmf-san/vigor/internal/registers"
	"github.com/bmf-san/vigor/internal/search"
)

// Dispatcher owns the full editing-session state: the buffer, the modal
// state machine, the command catalog, registers, the search engine, ex
// settings/abbreviations, and macro recording/playback. It is the single
// value pkg/editor.Editor embeds; everything else in this module is a
// pure function of (Dispatcher, incoming key).
type Dispatcher struct {
	Buf       *buffer.Buffer
	Mode      *mode.State
	Registry  *command.Registry
	Regs      *registers.Store
	Search    *search.Engine
	Settings  *ex.Settings
	Abbrevs   *ex.Abbreviations

	find     motion.Find
	viewport motion.Viewport

	// pending-key state machine.
	pendingKeys      string
	pendingCountStr  string // pre-operator count digits
	motionCountStr   string // post-operator count digits
	pendingRegister  rune
	awaitingRegister bool
	pendingOperator  string // operator Def.ID, empty when none pending
	argDef           command.Def

	// '.' repeat bookkeeping. changeBuf
	// accumulates the raw keys of the command currently being typed;
	// it is committed to lastChange at a completed, repeatable command
	// boundary and discarded otherwise. changePendingInsert defers that
	// commit until Insert/Replace mode is left, so an 'i...text...Esc'
	// change is captured whole.
	lastChange          *RepeatRecord
	replaying            bool
	changeBuf            []keys.Key
	changePendingInsert  bool
	insertSession        insertSession

	// macro recording/playback.
	recorder      *macro.Recorder
	player        *macro.Player
	savedMacros   map[rune][]keys.Key
	lastPlayedReg rune
	recordAppend  bool // q{A-Z}: append to the lowercase register on stop

	// command-line mode (':' '/' '?') text buffer.
	cmdlineKind  cmdlineKind
	cmdlineText  string
	lastExCmd    string
	lastSubst    ex.SubstituteSpec
	hasLastSubst bool
	hlSuppressed bool // :noh pressed; cleared by the next search

	fileLoader    FileLoader
	fileSaver     FileSaver
	quitRequested bool

	modified bool // true once any mutation happened since the last write
	readOnly bool // set for buffers opened view-only; writes are refused
	filename string

	statusMsg string
	beepFlag  bool

	cancelled bool // set by CancelMacro; observed once between keys during playback
}

type cmdlineKind int

const (
	cmdlineNone cmdlineKind = iota
	cmdlineEx
	cmdlineSearchForward
	cmdlineSearchBackward
)

// New returns a Dispatcher over an empty buffer with the default catalog
// and vi option defaults.
func New() *Dispatcher {
	return NewWithBuffer(buffer.New())
}

// NewWithBuffer returns a Dispatcher wrapping an already-populated buffer
// (the file-loader collaborator builds one of these from a loaded file).
func NewWithBuffer(b *buffer.Buffer) *Dispatcher {
	s := ex.DefaultSettings()
	return &Dispatcher{
		Buf:         b,
		Mode:        mode.New(),
		Registry:    command.NewRegistry(),
		Regs:        registers.New(),
		Search:      search.New(),
		Settings:    &s,
		Abbrevs:     ex.NewAbbreviations(),
		recorder:    macro.NewRecorder(),
		player:      macro.NewPlayer(),
		savedMacros: make(map[rune][]keys.Key),
	}
}

// SetViewport records the visible row range for H/M/L, supplied by the
// external renderer.
func (d *Dispatcher) SetViewport(top, bottom int) { d.viewport = motion.Viewport{Top: top, Bottom: bottom} }

// SetFilename records the buffer's associated path for ':w'/':e'/the '%'
// register.
func (d *Dispatcher) SetFilename(name string) {
	d.filename = name
	d.Regs.SetFilename(name)
}

// Filename returns the buffer's associated path, if any.
func (d *Dispatcher) Filename() string { return d.filename }

// Modified reports whether the buffer has unsaved changes.
func (d *Dispatcher) Modified() bool { return d.modified }

// ClearModified marks the buffer as saved (called by the file-saver
// collaborator once a write succeeds).
func (d *Dispatcher) ClearModified() { d.modified = false }

// SetReadOnly marks the buffer view-only: ':w' and friends refuse to
// write while it is set.
func (d *Dispatcher) SetReadOnly(ro bool) { d.readOnly = ro }

// ReadOnly reports whether the buffer refuses writes.
func (d *Dispatcher) ReadOnly() bool { return d.readOnly }

// StatusMessage returns and clears the most recent status-line message
// (renderer query).
func (d *Dispatcher) StatusMessage() string {
	m := d.statusMsg
	d.statusMsg = ""
	return m
}

// Beep returns and clears the beep flag.
func (d *Dispatcher) Beep() bool {
	b := d.beepFlag
	d.beepFlag = false
	return b
}

// CommandLineText returns the in-progress ':'/'/'/'?' buffer text, for
// the renderer's command-line display.
func (d *Dispatcher) CommandLineText() string {
	switch d.cmdlineKind {
	case cmdlineEx:
		return ":" + d.cmdlineText
	case cmdlineSearchForward:
		return "/" + d.cmdlineText
	case cmdlineSearchBackward:
		return "?" + d.cmdlineText
	default:
		return ""
	}
}

// Selection exposes the current visual selection, if any, for the
// renderer.
func (d *Dispatcher) Selection() (start, end buffer.Position, kind buffer.RangeKind, ok bool) {
	if !d.Mode.Current().IsVisual() {
		return buffer.Position{}, buffer.Position{}, buffer.Charwise, false
	}
	s, e, k := d.Mode.Selection()
	return s, e, k, true
}

// SearchHighlights returns the match set for the last search pattern
// when 'hlsearch' is on and :nohlsearch has not suppressed it since.
// The renderer polls this after each key; the underlying match list is
// cached against the buffer version, so repeated calls between
// mutations cost nothing.
func (d *Dispatcher) SearchHighlights() []search.Match {
	if !d.Settings.HLSearch || d.hlSuppressed {
		return nil
	}
	pattern := d.Search.LastPattern()
	if pattern == "" {
		return nil
	}
	matches, err := d.Search.Highlights(d.Buf, pattern, d.Settings.IgnoreCase, d.Settings.SmartCase)
	if err != nil {
		return nil
	}
	return matches
}

// CancelMacro requests that an in-flight macro playback stop at the next
// key boundary. Safe to call when no playback is running.
func (d *Dispatcher) CancelMacro() { d.cancelled = true }

func (d *Dispatcher) setStatus(msg string) { d.statusMsg = msg }
func (d *Dispatcher) beep()                { d.beepFlag = true }

// resetPending clears every piece of per-command accumulated state,
// matching the "reset" step that concludes a completed or abandoned
// command.
func (d *Dispatcher) resetPending() {
	d.pendingKeys = ""
	d.pendingCountStr = ""
	d.motionCountStr = ""
	d.pendingRegister = 0
	d.awaitingRegister = false
	d.pendingOperator = ""
	d.argDef = command.Def{}
	if d.Mode.Current() == mode.OperatorPending {
		d.Mode.ExitToNormal()
	}
	d.Mode.ClearPendingOperator()
	d.Mode.ClearPendingRegister()
	d.Mode.ClearArgExpected()
}

// count1 returns the resolved pre-operator count (0 means "none given").
func (d *Dispatcher) count1() int { return parseCountDigits(d.pendingCountStr) }

// count2 returns the resolved post-operator count.
func (d *Dispatcher) count2() int { return parseCountDigits(d.motionCountStr) }

// rawEffectiveCount is effectiveCount, except it returns 0 when no count
// digits were typed at all — count-sensitive motions (G, gg) need to
// tell "no count" apart from an explicit 1.
func (d *Dispatcher) rawEffectiveCount() int {
	if d.pendingCountStr == "" && d.motionCountStr == "" {
		return 0
	}
	return d.effectiveCount()
}

// effectiveCount returns count1*count2, defaulting each
// unset factor to 1.
func (d *Dispatcher) effectiveCount() int {
	c1, c2 := d.count1(), d.count2()
	if c1 == 0 {
		c1 = 1
	}
	if c2 == 0 {
		c2 = 1
	}
	return c1 * c2
}

func parseCountDigits(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func (d *Dispatcher) resolveRegister() rune {
	if d.pendingRegister != 0 {
		return d.pendingRegister
	}
	return registers.Unnamed
}

// Feed delivers one key token to the dispatcher. It is the single entry
// point an embedder calls for every key, in order, with no batching.
func (d *Dispatcher) Feed(k keys.Key) error {
	wasActive := d.recorder.Active()
	err := d.dispatchKey(k)
	// The keystroke that starts a recording (q<reg>) and the one that
	// stops it (q) are both excluded per macro.Recorder's contract;
	// only keys typed while a recording was already in progress both
	// before and after they ran belong in the captured sequence.
	if wasActive && d.recorder.Active() {
		d.recorder.Record(k)
	}
	return err
}

// dispatchKey routes k to the handler for the current mode, without the
// macro-recording side effect (used by macro playback, which replays
// already-recorded raw keys and must not re-record them).
func (d *Dispatcher) dispatchKey(k keys.Key) error {
	if !d.replaying && d.Mode.Current() != mode.CommandLine {
		if d.changeBuf == nil {
			d.beginChange(k)
		} else {
			d.continueChange(k)
		}
	}
	switch {
	case d.Mode.GetArgExpected() != mode.ArgNone:
		return d.handleArgExpected(k)
	case d.Mode.Current() == mode.Insert, d.Mode.Current() == mode.Replace, d.Mode.Current() == mode.ReplaceSingle:
		return d.handleInsertLike(k)
	case d.Mode.Current() == mode.CommandLine:
		return d.handleCommandLine(k)
	default:
		return d.handleCommandKey(k)
	}
}
