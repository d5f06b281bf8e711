package termio

import (
	"io"
	"unicode/utf8"

	"github.com/bmf-san/vigor/internal/keys"
)

// Decoder turns the terminal's raw byte stream into the engine's key
// tokens. It lives on this side of the boundary: the engine consumes
// keys.Key values and never sees bytes.
type Decoder struct {
	r       io.Reader
	pending func() (bool, error)
}

// NewDecoder wraps a raw-mode input stream. pending is consulted when an
// Esc byte arrives, distinguishing a lone Escape press from the first
// byte of an escape sequence; Console.Decoder wires in the console's own
// probe, tests pass a closure over their fake input.
func NewDecoder(r io.Reader, pending func() (bool, error)) *Decoder {
	return &Decoder{r: r, pending: pending}
}

func (d *Decoder) readByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Next blocks for the next key token.
func (d *Decoder) Next() (keys.Key, error) {
	b, err := d.readByte()
	if err != nil {
		return keys.Key{}, err
	}
	switch {
	case b == 0x1b:
		return d.decodeEscape()
	case b == '\r' || b == '\n':
		return keys.Named(keys.Enter), nil
	case b == '\t':
		return keys.Named(keys.Tab), nil
	case b == 0x7f || b == 0x08:
		return keys.Named(keys.Backspace), nil
	case b < 0x20:
		return keys.CtrlKey(rune(b | 0x60)), nil
	case b < 0x80:
		return keys.Char(rune(b)), nil
	default:
		return d.decodeUTF8(b)
	}
}

// decodeEscape handles the byte stream after an ESC. With no pending
// input the ESC stands alone; otherwise it introduces a CSI/SS3
// sequence or an Alt-modified character.
func (d *Decoder) decodeEscape() (keys.Key, error) {
	if ready, err := d.pending(); err != nil || !ready {
		return keys.Named(keys.Esc), nil
	}
	b, err := d.readByte()
	if err != nil {
		return keys.Named(keys.Esc), nil
	}
	switch b {
	case '[':
		return d.decodeCSI()
	case 'O':
		return d.decodeSS3()
	default:
		return keys.AltKey(rune(b)), nil
	}
}

func (d *Decoder) decodeCSI() (keys.Key, error) {
	var params []byte
	for {
		b, err := d.readByte()
		if err != nil {
			return keys.Key{}, err
		}
		if (b >= 'A' && b <= 'Z') || b == '~' {
			return csiKey(b, string(params)), nil
		}
		params = append(params, b)
	}
}

func csiKey(final byte, params string) keys.Key {
	switch final {
	case 'A':
		return keys.Named(keys.Up)
	case 'B':
		return keys.Named(keys.Down)
	case 'C':
		return keys.Named(keys.Right)
	case 'D':
		return keys.Named(keys.Left)
	case 'H':
		return keys.Named(keys.Home)
	case 'F':
		return keys.Named(keys.End)
	case 'Z':
		return keys.Named(keys.Tab)
	case '~':
		switch params {
		case "1", "7":
			return keys.Named(keys.Home)
		case "2":
			return keys.Named(keys.InsertKey)
		case "3":
			return keys.Named(keys.Delete)
		case "4", "8":
			return keys.Named(keys.End)
		case "5":
			return keys.Named(keys.PageUp)
		case "6":
			return keys.Named(keys.PageDown)
		case "15":
			return keys.Named(keys.F5)
		case "17":
			return keys.Named(keys.F6)
		case "18":
			return keys.Named(keys.F7)
		case "19":
			return keys.Named(keys.F8)
		case "20":
			return keys.Named(keys.F9)
		case "21":
			return keys.Named(keys.F10)
		case "23":
			return keys.Named(keys.F11)
		case "24":
			return keys.Named(keys.F12)
		}
	}
	return keys.Named(keys.Esc)
}

// decodeSS3 handles application-cursor-mode sequences (ESC O x).
func (d *Decoder) decodeSS3() (keys.Key, error) {
	b, err := d.readByte()
	if err != nil {
		return keys.Key{}, err
	}
	switch b {
	case 'A':
		return keys.Named(keys.Up), nil
	case 'B':
		return keys.Named(keys.Down), nil
	case 'C':
		return keys.Named(keys.Right), nil
	case 'D':
		return keys.Named(keys.Left), nil
	case 'H':
		return keys.Named(keys.Home), nil
	case 'F':
		return keys.Named(keys.End), nil
	case 'P':
		return keys.Named(keys.F1), nil
	case 'Q':
		return keys.Named(keys.F2), nil
	case 'R':
		return keys.Named(keys.F3), nil
	case 'S':
		return keys.Named(keys.F4), nil
	}
	return keys.Named(keys.Esc), nil
}

// decodeUTF8 finishes a multi-byte code point whose first byte was b.
func (d *Decoder) decodeUTF8(b byte) (keys.Key, error) {
	buf := []byte{b}
	want := 1
	switch {
	case b&0xE0 == 0xC0:
		want = 2
	case b&0xF0 == 0xE0:
		want = 3
	case b&0xF8 == 0xF0:
		want = 4
	}
	for len(buf) < want {
		nb, err := d.readByte()
		if err != nil {
			return keys.Key{}, err
		}
		buf = append(buf, nb)
	}
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		r = '?'
	}
	return keys.Char(r), nil
}
