package termio

import (
	"bytes"
	"io"
	"testing"

	"github.com/bmf-san/vigor/internal/keys"
)

// decodeAll drains the reader through a Decoder whose pending-input
// probe reports "bytes available" until the stream is empty, so escape
// sequences parse instead of being read as lone ESC presses.
func decodeAll(t *testing.T, data []byte) []keys.Key {
	t.Helper()
	r := bytes.NewReader(data)
	d := NewDecoder(r, func() (bool, error) { return r.Len() > 0, nil })
	var out []keys.Key
	for {
		k, err := d.Next()
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, k)
	}
}

func TestDecodePrintable(t *testing.T) {
	got := decodeAll(t, []byte("ab"))
	want := []keys.Key{keys.Char('a'), keys.Char('b')}
	if len(got) != len(want) {
		t.Fatalf("got %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("key %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecodeNamedKeys(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want keys.Key
	}{
		{"enter", []byte{'\r'}, keys.Named(keys.Enter)},
		{"tab", []byte{'\t'}, keys.Named(keys.Tab)},
		{"backspace", []byte{0x7f}, keys.Named(keys.Backspace)},
		{"ctrl-r", []byte{0x12}, keys.CtrlKey('r')},
		{"up arrow", []byte{0x1b, '[', 'A'}, keys.Named(keys.Up)},
		{"left arrow", []byte{0x1b, '[', 'D'}, keys.Named(keys.Left)},
		{"delete", []byte{0x1b, '[', '3', '~'}, keys.Named(keys.Delete)},
		{"pageup", []byte{0x1b, '[', '5', '~'}, keys.Named(keys.PageUp)},
		{"f1 ss3", []byte{0x1b, 'O', 'P'}, keys.Named(keys.F1)},
		{"home ss3", []byte{0x1b, 'O', 'H'}, keys.Named(keys.Home)},
		{"alt-x", []byte{0x1b, 'x'}, keys.AltKey('x')},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAll(t, tt.in)
			if len(got) != 1 {
				t.Fatalf("got %d keys, want 1", len(got))
			}
			if !got[0].Equal(tt.want) {
				t.Errorf("got %v, want %v", got[0], tt.want)
			}
		})
	}
}

func TestDecodeLoneEscape(t *testing.T) {
	r := bytes.NewReader([]byte{0x1b})
	// nothing pending after the ESC byte itself was consumed
	d := NewDecoder(r, func() (bool, error) { return false, nil })
	k, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !k.Equal(keys.Named(keys.Esc)) {
		t.Errorf("got %v, want ESC", k)
	}
}

func TestDecodeUTF8Multibyte(t *testing.T) {
	got := decodeAll(t, []byte("é漢"))
	if len(got) != 2 {
		t.Fatalf("got %d keys, want 2", len(got))
	}
	if got[0].Rune != 'é' || got[1].Rune != '漢' {
		t.Errorf("got %v %v, want é 漢", got[0], got[1])
	}
}
