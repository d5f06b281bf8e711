package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmf-san/vigor/internal/buffer"
)

func TestYankWritesUnnamedAndZero(t *testing.T) {
	t.Parallel()
	s := New()
	s.Yank("the ", 0, Charwise)
	assert.Equal(t, "the ", s.Get(Unnamed).Text)
	assert.Equal(t, "the ", s.Get('0').Text)
}

func TestDeleteShiftsNumberedRegisters(t *testing.T) {
	t.Parallel()
	s := New()
	s.DeleteAndYank("first\n", 0, Linewise, false)
	assert.Equal(t, "first\n", s.Get('1').Text)
	s.DeleteAndYank("second\n", 0, Linewise, false)
	assert.Equal(t, "second\n", s.Get('1').Text)
	assert.Equal(t, "first\n", s.Get('2').Text)
	assert.Equal(t, s.Get(Unnamed).Text, s.Get('1').Text)
}

func TestSingleCharDeleteDoesNotTouchNumbered(t *testing.T) {
	t.Parallel()
	s := New()
	s.DeleteAndYank("x", 0, Charwise, true)
	assert.Equal(t, "x", s.Get(Unnamed).Text)
	assert.Equal(t, "", s.Get('1').Text)
}

func TestUppercaseNamedAppends(t *testing.T) {
	t.Parallel()
	s := New()
	s.Yank("foo\n", 'a', Linewise)
	s.Yank("bar\n", 'A', Linewise)
	assert.Equal(t, "foo\nbar\n", s.Get('a').Text)
}

func TestBlackHoleDiscards(t *testing.T) {
	t.Parallel()
	s := New()
	s.Yank("keepme", 0, Charwise)
	s.Yank("discarded", '_', Charwise)
	assert.Equal(t, "", s.Get('_').Text)
	assert.Equal(t, "keepme", s.Get(Unnamed).Text)
}

func TestLinewiseYankPutBelow(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("alpha\nbeta\ngamma")
	s := New()
	text := b.TextRange(buffer.Position{Row: 0, Col: 0}, buffer.Position{Row: 0, Col: 4}, buffer.Linewise)
	s.Yank(text, 0, Linewise)
	b.MoveCursor(1, 0)
	s.PutAfter(b, 0, 1)
	require.Equal(t, []string{"alpha", "beta", "alpha", "gamma"}, b.Lines())
	assert.Equal(t, 2, b.Cursor().Row)
}

func TestCharwisePutAfterAtEndOfLine(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("ab")
	s := New()
	s.Yank("X", 0, Charwise)
	b.MoveCursor(0, 1)
	s.PutAfter(b, 0, 1)
	assert.Equal(t, "abX", b.Line(0))
}

func TestRegisterListTruncatesPreview(t *testing.T) {
	t.Parallel()
	s := New()
	long := ""
	for i := 0; i < 60; i++ {
		long += "x"
	}
	s.Yank(long, 0, Charwise)
	entries := s.List()
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.LessOrEqual(t, len([]rune(e.Preview)), 50)
	}
}

func TestClipboardRegistersRoundTrip(t *testing.T) {
	t.Parallel()
	s := New()
	s.Yank("copied", ClipboardA, Charwise)
	assert.Equal(t, "copied", s.Get(ClipboardA).Text)
	s.DeleteAndYank("cut", ClipboardB, Charwise, false)
	assert.Equal(t, "cut", s.Get(ClipboardB).Text)
}

func TestExplicitRegisterYankDoesNotLatchZero(t *testing.T) {
	t.Parallel()
	s := New()
	s.Yank("plain", 0, Charwise)
	s.Yank("named", 'a', Charwise)
	assert.Equal(t, "plain", s.Get('0').Text)
	assert.Equal(t, "named", s.Get(Unnamed).Text)
}
