package textobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmf-san/vigor/internal/buffer"
)

func at(b *buffer.Buffer, row, col int) { b.MoveCursor(row, col) }

func TestInnerWord(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("foo bar baz")
	at(b, 0, 5)
	start, end, kind, ok := Resolve(b, "iw", 1)
	require.True(t, ok)
	assert.Equal(t, buffer.Charwise, kind)
	assert.Equal(t, "bar", b.TextRange(start, end, kind))
}

func TestAroundWordIncludesTrailingSpace(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("foo bar baz")
	at(b, 0, 0)
	start, end, _, ok := Resolve(b, "aw", 1)
	require.True(t, ok)
	assert.Equal(t, "foo ", b.TextRange(start, end, buffer.Charwise))
}

func TestInnerParenthesesNested(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("f(a, g(b), c)")
	at(b, 0, 7) // inside the inner g(b)
	start, end, kind, ok := Resolve(b, "i(", 1)
	require.True(t, ok)
	assert.Equal(t, "b", b.TextRange(start, end, kind))

	at(b, 0, 3) // sits just inside the outer pair, outside the inner one
	start, end, kind, ok = Resolve(b, "i(", 1)
	require.True(t, ok)
	assert.Equal(t, "a, g(b), c", b.TextRange(start, end, kind))
}

func TestAroundParenthesesIncludesDelimiters(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("f(a)")
	at(b, 0, 2)
	start, end, kind, ok := Resolve(b, "a(", 1)
	require.True(t, ok)
	assert.Equal(t, "(a)", b.TextRange(start, end, kind))
}

func TestEmptyParenthesesHasNoInnerObject(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("f()")
	at(b, 0, 1)
	_, _, _, ok := Resolve(b, "i(", 1)
	assert.False(t, ok)
}

func TestInnerQuotedString(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText(`say "hello world" now`)
	at(b, 0, 6)
	start, end, kind, ok := Resolve(b, "i\"", 1)
	require.True(t, ok)
	assert.Equal(t, "hello world", b.TextRange(start, end, kind))
}

func TestInnerParagraphStopsAtBlankLine(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("one\ntwo\n\nthree")
	at(b, 0, 0)
	start, end, kind, ok := Resolve(b, "ip", 1)
	require.True(t, ok)
	assert.Equal(t, buffer.Linewise, kind)
	assert.Equal(t, 0, start.Row)
	assert.Equal(t, 1, end.Row)
}
