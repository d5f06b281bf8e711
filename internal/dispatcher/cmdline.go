package dispatcher

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/bmf-san/vigor/internal/buffer"
	"github.com/bmf-san/vigor/internal/ex"
	"github.com/bmf-san/vigor/internal/keys"
	"github.com/bmf-san/vigor/internal/registers"
	"github.com/bmf-san/vigor/internal/search"
)

// FileLoader is the file-reading collaborator the ex commands ':e' and
// ':r' delegate to. The engine never touches the filesystem itself;
// internal/fileio provides the concrete implementation and pkg/editor
// wires it in.
type FileLoader interface {
	Load(path string) (content string, err error)
}

// FileSaver is the file-writing collaborator ':w' and friends delegate
// to.
type FileSaver interface {
	Save(path, content string) error
}

// SetFileIO wires the load/save collaborators. Either may be nil, in
// which case the corresponding ex commands report an error instead of
// performing I/O.
func (d *Dispatcher) SetFileIO(loader FileLoader, saver FileSaver) {
	d.fileLoader = loader
	d.fileSaver = saver
}

// QuitRequested reports whether a ':q'-family command asked the
// surrounding program to exit. The flag latches; the embedder decides
// what exiting means.
func (d *Dispatcher) QuitRequested() bool { return d.quitRequested }

// handleCommandLine accumulates the ':'/'/'/'?' line being typed and
// executes or cancels it on Enter/Esc.
func (d *Dispatcher) handleCommandLine(k keys.Key) error {
	switch {
	case k.Special == keys.Esc:
		d.cmdlineKind = cmdlineNone
		d.cmdlineText = ""
		d.Mode.ExitToNormal()
		return nil
	case k.Special == keys.Backspace:
		if d.cmdlineText == "" {
			d.cmdlineKind = cmdlineNone
			d.Mode.ExitToNormal()
			return nil
		}
		r := []rune(d.cmdlineText)
		d.cmdlineText = string(r[:len(r)-1])
		return nil
	case k.Special == keys.Enter:
		kind, text := d.cmdlineKind, d.cmdlineText
		d.cmdlineKind = cmdlineNone
		d.cmdlineText = ""
		d.Mode.ExitToNormal()
		switch kind {
		case cmdlineEx:
			return d.executeExLine(text)
		case cmdlineSearchForward:
			return d.executeSearchLine(text, true)
		case cmdlineSearchBackward:
			return d.executeSearchLine(text, false)
		}
		return nil
	case k.IsRune():
		d.cmdlineText += string(k.Rune)
		return nil
	}
	return nil
}

// executeSearchLine runs the pattern typed after '/' or '?'. An empty
// pattern repeats the previous search in the given direction, as vi
// does.
func (d *Dispatcher) executeSearchLine(pattern string, forward bool) error {
	if pattern == "" {
		if d.Search.LastPattern() == "" {
			d.setStatus("No previous search pattern")
			d.beep()
			return ErrNoPreviousPattern
		}
		pattern = d.Search.LastPattern()
	}
	var m search.Match
	var found bool
	var err error
	if forward {
		m, found, err = d.Search.Forward(d.Buf, pattern, d.Buf.Cursor(), d.Settings.IgnoreCase, d.Settings.SmartCase)
	} else {
		m, found, err = d.Search.Backward(d.Buf, pattern, d.Buf.Cursor(), d.Settings.IgnoreCase, d.Settings.SmartCase)
	}
	if err != nil {
		d.setStatus("Invalid pattern: " + pattern)
		d.beep()
		return ErrInvalidPattern
	}
	d.Regs.SetSpecial(registers.SearchReg, pattern, registers.Charwise)
	d.hlSuppressed = false
	if !found || d.rejectedByWrapscan(d.Buf.Cursor(), m.Start, forward) {
		d.setStatus("Pattern not found: " + pattern)
		d.beep()
		return ErrPatternNotFound
	}
	d.Buf.PushJumpPosition()
	d.Buf.MoveCursor(m.Start.Row, m.Start.Col)
	return nil
}

// executeExLine parses and runs one ':' command line.
func (d *Dispatcher) executeExLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	d.lastExCmd = line
	d.Regs.SetSpecial(registers.CommandReg, line, registers.Charwise)

	cmd := ex.Parse(line)
	ctx := d.rangeContext()

	switch {
	case cmd.Name == "":
		// A bare range jumps to its last line, cursor on the first
		// non-blank.
		if !cmd.Range.HasStart && !cmd.Range.WholeBuf {
			return nil
		}
		_, end, ok := cmd.Range.Resolve(ctx, d.Buf.Cursor().Row)
		if !ok {
			d.setStatus("Invalid range")
			d.beep()
			return ErrUnknownExCommand
		}
		d.Buf.PushJumpPosition()
		d.Buf.MoveCursor(end, 0)
		d.Buf.MoveToFirstNonBlank()
		return nil

	case ex.MatchesName(cmd.Name, "substitute", 1):
		return d.executeSubstitute(cmd, ctx)

	case ex.MatchesName(cmd.Name, "set", 2) || cmd.Name == "se":
		return d.executeSet(cmd.Args)

	case ex.MatchesName(cmd.Name, "registers", 3) || cmd.Name == "reg":
		return d.executeRegisters()

	case ex.MatchesName(cmd.Name, "nohlsearch", 3) || cmd.Name == "noh":
		d.hlSuppressed = true
		return nil

	case ex.MatchesName(cmd.Name, "write", 1):
		return d.executeWrite(cmd.Args)

	case ex.MatchesName(cmd.Name, "quit", 1):
		return d.executeQuit(cmd.Bang)

	case cmd.Name == "wq":
		if err := d.executeWrite(cmd.Args); err != nil {
			return err
		}
		d.quitRequested = true
		return nil

	case cmd.Name == "x" || ex.MatchesName(cmd.Name, "exit", 2):
		if d.modified {
			if err := d.executeWrite(cmd.Args); err != nil {
				return err
			}
		}
		d.quitRequested = true
		return nil

	case ex.MatchesName(cmd.Name, "edit", 1):
		return d.executeEdit(cmd.Args, cmd.Bang)

	case ex.MatchesName(cmd.Name, "read", 1):
		return d.executeRead(cmd, ctx)

	case ex.MatchesName(cmd.Name, "abbreviate", 2):
		return d.executeAbbreviate(cmd.Args)

	case ex.MatchesName(cmd.Name, "unabbreviate", 3):
		d.Abbrevs.Remove(strings.TrimSpace(cmd.Args))
		return nil
	}

	d.setStatus("Not an editor command: " + cmd.Name)
	d.beep()
	return ErrUnknownExCommand
}

// rangeContext builds the mark/search resolution hooks an ex range needs.
func (d *Dispatcher) rangeContext() ex.ResolveContext {
	return ex.ResolveContext{
		CurrentLine: d.Buf.Cursor().Row,
		LastLine:    d.Buf.LineCount(),
		Mark: func(name rune) (int, bool) {
			pos, ok := d.Buf.NamedMark(name)
			if !ok {
				return 0, false
			}
			return pos.Row, true
		},
		SearchLine: func(pattern string, forward bool) (int, bool) {
			var m search.Match
			var found bool
			var err error
			if forward {
				m, found, err = d.Search.Forward(d.Buf, pattern, d.Buf.Cursor(), d.Settings.IgnoreCase, d.Settings.SmartCase)
			} else {
				m, found, err = d.Search.Backward(d.Buf, pattern, d.Buf.Cursor(), d.Settings.IgnoreCase, d.Settings.SmartCase)
			}
			if err != nil || !found {
				return 0, false
			}
			return m.Start.Row, true
		},
	}
}

// executeSubstitute runs [range]s/pat/repl/[flags]. A bare ':s' repeats
// the previous substitution; an empty pattern reuses the previous
// substitution's pattern (or the last search pattern). An omitted
// replacement is taken as empty, not reused. The explicit 'i' flag
// always wins over a smartcase inference.
func (d *Dispatcher) executeSubstitute(cmd ex.Command, ctx ex.ResolveContext) error {
	spec, err := ex.ParseSubstituteArgs(cmd.Args)
	if err == ex.ErrEmptyPattern {
		if !d.hasLastSubst {
			d.setStatus("No previous substitute")
			d.beep()
			return ErrNoPreviousCommand
		}
		spec = d.lastSubst
	} else if err != nil {
		d.setStatus(err.Error())
		d.beep()
		return ErrInvalidPattern
	}
	if spec.Pattern == "" {
		switch {
		case d.hasLastSubst:
			spec.Pattern = d.lastSubst.Pattern
		case d.Search.LastPattern() != "":
			spec.Pattern = d.Search.LastPattern()
		default:
			d.setStatus("No previous pattern")
			d.beep()
			return ErrNoPreviousPattern
		}
	}

	opts := regexp2.None
	ignoreCase := spec.IgnoreCase
	if !ignoreCase && d.Settings.IgnoreCase {
		ignoreCase = !(d.Settings.SmartCase && hasUpperRune(spec.Pattern))
	}
	if ignoreCase {
		opts = regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(spec.Pattern, opts)
	if err != nil {
		d.setStatus("Invalid pattern: " + spec.Pattern)
		d.beep()
		return ErrInvalidPattern
	}

	startRow, endRow, ok := cmd.Range.Resolve(ctx, d.Buf.Cursor().Row)
	if !ok {
		d.setStatus("Invalid range")
		d.beep()
		return ErrUnknownExCommand
	}

	linesChanged := 0
	total := d.Buf.SubstituteRange(startRow, endRow, func(line string) (string, int, error) {
		result, n, lerr := ex.SubstituteLine(re, line, spec.Replacement, spec.Global)
		if n > 0 {
			linesChanged++
		}
		return result, n, lerr
	})

	d.lastSubst = spec
	d.hasLastSubst = true
	d.Regs.SetSpecial(registers.SearchReg, spec.Pattern, registers.Charwise)

	if total == 0 {
		d.setStatus("Pattern not found: " + spec.Pattern)
		d.beep()
		return ErrPatternNotFound
	}
	d.modified = true
	d.setStatus(fmt.Sprintf("%d %s on %d %s",
		total, plural(total, "substitution"), linesChanged, plural(linesChanged, "line")))
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func hasUpperRune(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

// executeSet applies each whitespace-separated :set argument in turn;
// with no arguments it lists the options whose values differ from the
// defaults.
func (d *Dispatcher) executeSet(args string) error {
	args = strings.TrimSpace(args)
	if args == "" {
		diffs := d.Settings.NonDefault()
		if len(diffs) == 0 {
			d.setStatus("no options changed")
		} else {
			d.setStatus(strings.Join(diffs, " "))
		}
		return nil
	}
	var msgs []string
	for _, arg := range strings.Fields(args) {
		msg, err := d.Settings.ApplySet(arg)
		if err != nil {
			d.setStatus("Unknown option: " + arg)
			d.beep()
			return ErrUnknownOption
		}
		if msg != "" {
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) > 0 {
		d.setStatus(strings.Join(msgs, " "))
	}
	return nil
}

// executeRegisters renders the :registers listing into the status
// message, one register per line.
func (d *Dispatcher) executeRegisters() error {
	entries := d.Regs.List()
	if len(entries) == 0 {
		d.setStatus("--- Registers ---")
		return nil
	}
	lines := []string{"--- Registers ---"}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("\"%c   %s", e.Name, e.Preview))
	}
	d.setStatus(strings.Join(lines, "\n"))
	return nil
}

func (d *Dispatcher) executeWrite(args string) error {
	if d.readOnly {
		d.setStatus("Buffer is read-only")
		d.beep()
		return ErrReadOnly
	}
	path := strings.TrimSpace(args)
	if path == "" {
		path = d.filename
	}
	if path == "" {
		d.setStatus("No file name")
		d.beep()
		return ErrUnknownExCommand
	}
	if d.fileSaver == nil {
		d.setStatus("No file saver configured")
		d.beep()
		return ErrUnknownExCommand
	}
	if err := d.fileSaver.Save(path, d.Buf.Content()); err != nil {
		d.setStatus("Error writing " + path + ": " + err.Error())
		d.beep()
		return err
	}
	d.SetFilename(path)
	d.modified = false
	d.setStatus(fmt.Sprintf("\"%s\" %dL written", path, d.Buf.LineCount()))
	return nil
}

func (d *Dispatcher) executeQuit(bang bool) error {
	if d.modified && !bang {
		d.setStatus("No write since last change (add ! to override)")
		d.beep()
		return ErrNoWriteSinceChange
	}
	d.quitRequested = true
	return nil
}

func (d *Dispatcher) executeEdit(args string, bang bool) error {
	if d.modified && !bang {
		d.setStatus("No write since last change (add ! to override)")
		d.beep()
		return ErrNoWriteSinceChange
	}
	path := strings.TrimSpace(args)
	if path == "" {
		path = d.filename
	}
	if path == "" {
		d.setStatus("No file name")
		d.beep()
		return ErrUnknownExCommand
	}
	if d.fileLoader == nil {
		d.setStatus("No file loader configured")
		d.beep()
		return ErrUnknownExCommand
	}
	content, err := d.fileLoader.Load(path)
	if err != nil {
		d.setStatus("Error reading " + path + ": " + err.Error())
		d.beep()
		return err
	}
	d.Buf = buffer.NewFromText(content)
	d.SetFilename(path)
	d.modified = false
	d.setStatus(fmt.Sprintf("\"%s\" %dL", path, d.Buf.LineCount()))
	return nil
}

// executeRead inserts the named file's contents below the addressed line
// (default: the current line).
func (d *Dispatcher) executeRead(cmd ex.Command, ctx ex.ResolveContext) error {
	path := strings.TrimSpace(cmd.Args)
	if path == "" {
		d.setStatus("No file name")
		d.beep()
		return ErrUnknownExCommand
	}
	if d.fileLoader == nil {
		d.setStatus("No file loader configured")
		d.beep()
		return ErrUnknownExCommand
	}
	content, err := d.fileLoader.Load(path)
	if err != nil {
		d.setStatus("Error reading " + path + ": " + err.Error())
		d.beep()
		return err
	}
	_, row, ok := cmd.Range.Resolve(ctx, d.Buf.Cursor().Row)
	if !ok {
		row = d.Buf.Cursor().Row
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	d.Buf.InsertLinesBelow(row, lines)
	d.Buf.MoveCursor(row+1, 0)
	d.modified = true
	return nil
}

func (d *Dispatcher) executeAbbreviate(args string) error {
	fields := strings.Fields(args)
	switch len(fields) {
	case 0:
		entries := d.Abbrevs.List()
		if len(entries) == 0 {
			d.setStatus("No abbreviations")
		} else {
			d.setStatus(strings.Join(entries, "\n"))
		}
	case 1:
		if rhs, ok := d.Abbrevs.Expand(fields[0]); ok {
			d.setStatus(fields[0] + " " + rhs)
		} else {
			d.setStatus("No abbreviation for " + fields[0])
		}
	default:
		d.Abbrevs.Set(fields[0], strings.Join(fields[1:], " "))
	}
	return nil
}
