// Package editor exposes the root Editor value an embedding program (a
// terminal front-end, a test harness) drives: it owns the dispatcher and
// everything the dispatcher owns, wires the file-I/O collaborator in,
// and presents the renderer-facing query surface.
package editor

import (
	"fmt"

	"github.com/bmf-san/vigor/internal/buffer"
	"github.com/bmf-san/vigor/internal/config"
	"github.com/bmf-san/vigor/internal/dispatcher"
	"github.com/bmf-san/vigor/internal/fileio"
	"github.com/bmf-san/vigor/internal/keys"
	"github.com/bmf-san/vigor/internal/search"
)

// Position is re-exported so embedders don't have to import the internal
// buffer package.
type Position = buffer.Position

// Match re-exports a search hit for the highlight query.
type Match = search.Match

// Editor is the single long-lived value owning an editing session.
type Editor struct {
	d *dispatcher.Dispatcher

	encoding   fileio.Encoding
	lineEnding fileio.LineEnding

	swap *fileio.Swap
}

// New returns an editor over an empty buffer.
func New() *Editor {
	e := &Editor{
		d:          dispatcher.New(),
		encoding:   fileio.EncodingUTF8,
		lineEnding: fileio.LF,
	}
	e.d.SetFileIO(loader{}, saver{e})
	return e
}

// NewFromText returns an editor whose buffer is seeded with text.
func NewFromText(text string) *Editor {
	e := New()
	e.d.Buf = buffer.NewFromText(text)
	return e
}

// Open loads path into the buffer, remembering its encoding and
// line-ending style for the eventual write-back.
func (e *Editor) Open(path string) error {
	f, err := fileio.Load(path)
	if err != nil {
		return err
	}
	e.d.Buf = buffer.NewFromText(f.Content)
	e.d.SetFilename(path)
	e.d.ClearModified()
	e.encoding = f.Encoding
	e.lineEnding = f.LineEnding
	return nil
}

// ApplyConfig copies persisted options onto the live settings.
func (e *Editor) ApplyConfig(cfg *config.Config) {
	s := e.d.Settings
	s.Number = cfg.Options.Number
	s.IgnoreCase = cfg.Options.IgnoreCase
	s.SmartCase = cfg.Options.SmartCase
	s.HLSearch = cfg.Options.HLSearch
	s.Incsearch = cfg.Options.Incsearch
	s.Wrap = cfg.Options.Wrap
	s.List = cfg.Options.List
	s.AutoIndent = cfg.Options.AutoIndent
	s.ExpandTab = cfg.Options.ExpandTab
	s.TabStop = cfg.Options.TabStop
	s.ShiftWidth = cfg.Options.ShiftWidth
	s.ScrollOff = cfg.Options.ScrollOff
	s.AutoRead = cfg.Options.AutoRead
	s.SwapFile = cfg.Options.SwapFile
	s.Backup = cfg.Options.Backup
}

// StartSwap creates the session swap file for the currently open file
// (the 'swapfile' behavior). No-op without a filename.
func (e *Editor) StartSwap() error {
	name := e.d.Filename()
	if name == "" || e.swap != nil {
		return nil
	}
	sw, err := fileio.NewSwap(name)
	if err != nil {
		return err
	}
	e.swap = sw
	return nil
}

// SyncSwap rewrites the swap file with the buffer's current content.
func (e *Editor) SyncSwap() error {
	if e.swap == nil {
		return nil
	}
	return e.swap.Update(e.d.Buf.Content())
}

// CloseSwap removes the swap file on a clean exit.
func (e *Editor) CloseSwap() error {
	if e.swap == nil {
		return nil
	}
	err := e.swap.Remove()
	e.swap = nil
	return err
}

// Feed delivers one key token, in order, no batching.
func (e *Editor) Feed(k keys.Key) error { return e.d.Feed(k) }

// FeedString delivers each rune of s as a plain key — the convenient
// form for tests and scripted input. Named keys must go through Feed.
func (e *Editor) FeedString(s string) error {
	var firstErr error
	for _, r := range s {
		if err := e.d.Feed(keys.Char(r)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Ex executes one ':' command line as if typed and entered.
func (e *Editor) Ex(cmd string) error {
	if err := e.Feed(keys.Char(':')); err != nil {
		return err
	}
	if err := e.FeedString(cmd); err != nil {
		return err
	}
	return e.Feed(keys.Named(keys.Enter))
}

// Renderer queries.

// Lines returns the buffer's lines.
func (e *Editor) Lines() []string { return e.d.Buf.Lines() }

// Content returns the whole buffer joined with \n.
func (e *Editor) Content() string { return e.d.Buf.Content() }

// Cursor returns the cursor position.
func (e *Editor) Cursor() Position { return e.d.Buf.Cursor() }

// Mode returns the current mode's display name.
func (e *Editor) Mode() string { return e.d.Mode.Current().String() }

// ModeIndicator returns the status-line mode tag ("-- INSERT --" etc.),
// empty in Normal mode.
func (e *Editor) ModeIndicator() string {
	m := e.d.Mode.Current().String()
	if m == "NORMAL" || m == "OPERATOR-PENDING" || m == "COMMAND-LINE" {
		return ""
	}
	return fmt.Sprintf("-- %s --", m)
}

// CommandLineText returns the ':'/'/'/'?' line being typed, if any.
func (e *Editor) CommandLineText() string { return e.d.CommandLineText() }

// StatusMessage returns and clears the most recent status message.
func (e *Editor) StatusMessage() string { return e.d.StatusMessage() }

// Beep returns and clears the beep flag.
func (e *Editor) Beep() bool { return e.d.Beep() }

// SearchHighlights returns the 'hlsearch' match set.
func (e *Editor) SearchHighlights() []Match { return e.d.SearchHighlights() }

// Selection returns the active visual selection, if any.
func (e *Editor) Selection() (start, end Position, ok bool) {
	s, en, _, ok := e.d.Selection()
	return s, en, ok
}

// Modified reports unsaved changes.
func (e *Editor) Modified() bool { return e.d.Modified() }

// Filename returns the associated file path, if any.
func (e *Editor) Filename() string { return e.d.Filename() }

// QuitRequested reports whether a ':q'-family command has run.
func (e *Editor) QuitRequested() bool { return e.d.QuitRequested() }

// SetViewport tells the engine which rows are visible, for H/M/L.
func (e *Editor) SetViewport(top, bottom int) { e.d.SetViewport(top, bottom) }

// CancelMacro aborts an in-flight macro playback at its next key.
func (e *Editor) CancelMacro() { e.d.CancelMacro() }

// SetReadOnly marks the buffer view-only; ':w' and friends refuse to
// write while it is set.
func (e *Editor) SetReadOnly(ro bool) { e.d.SetReadOnly(ro) }

// Settings exposes the live option values for renderers that honor
// 'number', 'list', 'scrolloff' and friends.
func (e *Editor) Settings() SettingsView {
	s := e.d.Settings
	return SettingsView{
		Number:     s.Number,
		List:       s.List,
		TabStop:    s.TabStop,
		ScrollOff:  s.ScrollOff,
		HLSearch:   s.HLSearch,
		Wrap:       s.Wrap,
	}
}

// SettingsView is the read-only slice of options a renderer needs.
type SettingsView struct {
	Number    bool
	List      bool
	TabStop   int
	ScrollOff int
	HLSearch  bool
	Wrap      bool
}

// loader adapts fileio.Load to the engine's narrow FileLoader port.
type loader struct{}

func (loader) Load(path string) (string, error) {
	f, err := fileio.Load(path)
	if err != nil {
		return "", err
	}
	return f.Content, nil
}

// saver adapts fileio.Save, writing back with the encoding and
// line-ending style the file was loaded with.
type saver struct{ e *Editor }

func (s saver) Save(path, content string) error {
	return fileio.Save(path, content, fileio.SaveOptions{
		Encoding:     s.e.encoding,
		LineEnding:   s.e.lineEnding,
		CreateBackup: s.e.d.Settings.Backup,
	})
}
