package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmf-san/vigor/internal/charwidth"
	"github.com/bmf-san/vigor/internal/config"
	"github.com/bmf-san/vigor/internal/keys"
	"github.com/bmf-san/vigor/internal/termio"
	"github.com/bmf-san/vigor/pkg/editor"
)

// session drives one interactive editing run: raw mode on, decode keys,
// feed the engine, redraw, until a quit command lands.
type session struct {
	ed    *editor.Editor
	con   *termio.Console
	out   *os.File
	rows  int
	cols  int
	top   int // first buffer row on screen
	remap map[string]keys.Key
}

func runSession(ed *editor.Editor, cfg *config.Config) error {
	con := termio.NewConsole(os.Stdin)
	if !con.IsTerminal() {
		return fmt.Errorf("standard input is not a terminal")
	}
	if err := con.EnterRaw(); err != nil {
		return err
	}
	defer func() { _ = con.Restore() }()

	s := &session{ed: ed, con: con, out: os.Stdout, remap: buildRemap(cfg)}
	s.resize()

	dec := con.Decoder()
	s.render()
	for {
		k, err := dec.Next()
		if err != nil {
			return err
		}
		k = s.applyRemap(k)
		_ = ed.Feed(k) // command errors surface through the status line
		if ed.QuitRequested() {
			s.clear()
			return nil
		}
		if cfg.Options.SwapFile {
			_ = ed.SyncSwap()
		}
		s.resize()
		s.render()
	}
}

// buildRemap compiles the config's physical->logical key table.
func buildRemap(cfg *config.Config) map[string]keys.Key {
	out := make(map[string]keys.Key)
	for phys, logical := range cfg.Keybindings.Remap {
		if k, ok := parseKeySpec(logical); ok {
			out[normalizeSpec(phys)] = k
		}
	}
	return out
}

func normalizeSpec(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func parseKeySpec(s string) (keys.Key, bool) {
	n := normalizeSpec(s)
	named := map[string]keys.Special{
		"ESC": keys.Esc, "ENTER": keys.Enter, "TAB": keys.Tab,
		"BACKSPACE": keys.Backspace, "DELETE": keys.Delete,
		"UP": keys.Up, "DOWN": keys.Down, "LEFT": keys.Left, "RIGHT": keys.Right,
		"HOME": keys.Home, "END": keys.End,
		"PAGEUP": keys.PageUp, "PAGEDOWN": keys.PageDown,
	}
	if sp, ok := named[n]; ok {
		return keys.Named(sp), true
	}
	if strings.HasPrefix(n, "CTRL+") && len(n) == 6 {
		return keys.CtrlKey(rune(n[5] | 0x20)), true
	}
	if strings.HasPrefix(n, "ALT+") && len(n) == 5 {
		return keys.AltKey(rune(n[4] | 0x20)), true
	}
	r := []rune(strings.TrimSpace(s))
	if len(r) == 1 {
		return keys.Char(r[0]), true
	}
	return keys.Key{}, false
}

func (s *session) applyRemap(k keys.Key) keys.Key {
	if len(s.remap) == 0 {
		return k
	}
	if mapped, ok := s.remap[normalizeSpec(k.String())]; ok {
		return mapped
	}
	return k
}

func (s *session) resize() {
	cols, rows, err := s.con.Size()
	if err != nil || rows < 2 {
		cols, rows = 80, 24
	}
	s.cols, s.rows = cols, rows
}

func (s *session) clear() {
	fmt.Fprint(s.out, "\x1b[2J\x1b[H")
}

// render repaints the whole screen: text rows, then the status line,
// then the hardware cursor over the buffer cursor.
func (s *session) render() {
	textRows := s.rows - 1
	cur := s.ed.Cursor()
	view := s.ed.Settings()

	// Scroll to keep the cursor (plus scrolloff margin) visible.
	off := view.ScrollOff
	if cur.Row < s.top+off {
		s.top = cur.Row - off
	}
	if cur.Row >= s.top+textRows-off {
		s.top = cur.Row - textRows + 1 + off
	}
	if s.top < 0 {
		s.top = 0
	}
	s.ed.SetViewport(s.top, s.top+textRows-1)

	var b strings.Builder
	b.WriteString("\x1b[2J\x1b[H")
	lines := s.ed.Lines()
	gutter := 0
	if view.Number {
		gutter = numberGutterWidth(len(lines))
	}
	for i := 0; i < textRows; i++ {
		row := s.top + i
		if row >= len(lines) {
			b.WriteString("~\r\n")
			continue
		}
		if view.Number {
			fmt.Fprintf(&b, "%*d ", gutter-1, row+1)
		}
		b.WriteString(expandLine(lines[row], view.TabStop, view.List, s.cols-gutter))
		b.WriteString("\r\n")
	}
	b.WriteString(s.statusLine())

	// Hardware cursor: row within viewport, column in display cells.
	lineRunes := []rune("")
	if cur.Row < len(lines) {
		lineRunes = []rune(lines[cur.Row])
	}
	col := charwidth.ColumnAt(lineRunes, cur.Col, view.TabStop)
	fmt.Fprintf(&b, "\x1b[%d;%dH", cur.Row-s.top+1, gutter+col+1)
	fmt.Fprint(s.out, b.String())
}

func numberGutterWidth(lineCount int) int {
	w := 2
	for n := lineCount; n >= 10; n /= 10 {
		w++
	}
	return w + 1
}

// expandLine renders one buffer line for display: tabs expanded, the
// 'list' option's trailing-$ marker, clipped to the viewport width.
func expandLine(line string, tabStop int, list bool, maxCols int) string {
	var b strings.Builder
	col := 0
	for _, r := range line {
		var w int
		if r == '\t' {
			w = tabStop - (col % tabStop)
			if w < 1 {
				w = 1
			}
			if list {
				b.WriteString("^I")
			} else {
				b.WriteString(strings.Repeat(" ", w))
			}
		} else {
			w = charwidth.RuneWidth(r)
			b.WriteRune(r)
		}
		col += w
		if col >= maxCols {
			break
		}
	}
	if list {
		b.WriteString("$")
	}
	return b.String()
}

// statusLine composes the bottom row: an in-progress command line wins,
// then a pending status message, then the mode indicator and ruler.
func (s *session) statusLine() string {
	if cl := s.ed.CommandLineText(); cl != "" {
		return cl
	}
	if msg := s.ed.StatusMessage(); msg != "" {
		// Multi-line messages (":registers") show only their final line;
		// a full pager is out of scope for this front-end.
		parts := strings.Split(msg, "\n")
		return parts[len(parts)-1]
	}
	cur := s.ed.Cursor()
	ind := s.ed.ModeIndicator()
	name := s.ed.Filename()
	if name == "" {
		name = "[No Name]"
	}
	mod := ""
	if s.ed.Modified() {
		mod = " [+]"
	}
	left := fmt.Sprintf("%s%s  %s", name, mod, ind)
	right := fmt.Sprintf("%d,%d", cur.Row+1, cur.Col+1)
	pad := s.cols - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}
