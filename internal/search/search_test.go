package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmf-san/vigor/internal/buffer"
)

func TestForwardFindsNextMatchAndWraps(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("foo\nbar\nfoo")
	e := New()
	m, ok, err := e.Forward(b, "foo", buffer.Position{Row: 0, Col: 0}, false, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, m.Start.Row)

	m, ok, err = e.Forward(b, "foo", buffer.Position{Row: 2, Col: 0}, false, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, m.Start.Row)
}

func TestBackwardWraps(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("foo\nbar\nfoo")
	e := New()
	m, ok, err := e.Backward(b, "foo", buffer.Position{Row: 0, Col: 0}, false, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, m.Start.Row)
}

func TestRepeatNAndReverseN(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("a x a x a")
	e := New()
	m, ok, _ := e.Forward(b, "x", buffer.Position{Row: 0, Col: 0}, false, false)
	require.True(t, ok)
	first := m.Start.Col

	m, ok, _ = e.Repeat(b, m.Start, false, false, false)
	require.True(t, ok)
	assert.Greater(t, m.Start.Col, first)

	m, ok, _ = e.Repeat(b, m.Start, true, false, false)
	require.True(t, ok)
	assert.Equal(t, first, m.Start.Col)
}

func TestFindAllNonOverlapping(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("aa aa aa")
	e := New()
	matches, err := e.FindAll(b, "aa", false, false)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestIgnoreCaseAndSmartCase(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("Hello hello")
	e := New()
	matches, err := e.FindAll(b, "hello", true, false)
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = e.FindAll(b, "Hello", true, true)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestHighlightsCacheInvalidatesOnMutation(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("cat cat")
	e := New()
	first, err := e.Highlights(b, "cat", false, false)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	b.InsertText(" cat")
	second, err := e.Highlights(b, "cat", false, false)
	require.NoError(t, err)
	assert.Len(t, second, 3)
}

func TestWordAtCursorEscapesRegexMetacharacters(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("a.b foo")
	b.MoveCursor(0, 1) // the '.' between two idents is not itself a word char
	_, ok := WordAtCursor(b)
	assert.False(t, ok)

	b.MoveCursor(0, 4)
	word, ok := WordAtCursor(b)
	require.True(t, ok)
	assert.Equal(t, "foo", word)
}

func TestBackreferenceSubstitutionPattern(t *testing.T) {
	t.Parallel()
	e := New()
	re, err := e.Compile(`(ab)\1`, false, false)
	require.NoError(t, err)
	m, err := re.FindStringMatch("abab")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "abab", m.String())
}
