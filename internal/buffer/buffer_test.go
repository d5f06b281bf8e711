package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicEditUndo(t *testing.T) {
	t.Parallel()
	b := NewFromText("hello")
	require.Equal(t, Position{0, 0}, b.Cursor())

	for i := 0; i < 5; i++ {
		b.DeleteCharAtCursor(1)
	}
	assert.Equal(t, []string{""}, b.Lines())
	assert.Equal(t, Position{0, 0}, b.Cursor())

	for i := 0; i < 5; i++ {
		b.Undo()
	}
	assert.Equal(t, []string{"hello"}, b.Lines())
	assert.Equal(t, Position{0, 0}, b.Cursor())
}

func TestUndoRedoNoCrossContamination(t *testing.T) {
	t.Parallel()
	b := NewFromText("abc")
	b.MoveCursor(0, 0)
	b.DeleteCharAtCursor(1) // "bc"
	b.DeleteCharAtCursor(1) // "c"
	require.True(t, b.Undo())
	assert.Equal(t, "bc", b.Line(0))
	b.DeleteCharAtCursor(1) // a fresh mutation M' after undo: "c"
	// M' clears the redo stack, so replaying redo must not resurrect the
	// pre-undo future; it is a no-op and "c" (M's result) stands.
	assert.False(t, b.Redo())
	assert.Equal(t, "c", b.Line(0))
}

func TestUndoRedoEmptyStacks(t *testing.T) {
	t.Parallel()
	b := New()
	assert.False(t, b.Undo())
	assert.False(t, b.Redo())
}

func TestInvariantsOnEmptyBuffer(t *testing.T) {
	t.Parallel()
	b := New()
	b.MoveDown(5)
	b.MoveUp(5)
	b.MoveRight(5, false)
	b.MoveLeft(5)
	assert.Equal(t, Position{0, 0}, b.Cursor())
	b.DeleteLine(1)
	assert.Equal(t, []string{""}, b.Lines())
	b.DeleteCharAtCursor(1)
	assert.Equal(t, []string{""}, b.Lines())
}

func TestSingleCharLineXProducesEmptyLine(t *testing.T) {
	t.Parallel()
	b := NewFromText("a")
	b.DeleteCharAtCursor(1)
	assert.Equal(t, "", b.Line(0))
}

func TestMoveRightNoWrapAtLastColumn(t *testing.T) {
	t.Parallel()
	b := NewFromText("ab")
	b.MoveCursor(0, 1)
	b.MoveRight(1, false)
	assert.Equal(t, Position{0, 1}, b.Cursor())
}

func TestGotoLineClampsBeyondEnd(t *testing.T) {
	t.Parallel()
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "x"
	}
	b := NewFromText(joinLines(lines))
	b.GotoLine(10000)
	assert.Equal(t, 99, b.Cursor().Row)
}

func TestDeleteAllLines(t *testing.T) {
	t.Parallel()
	lines := make([]string, 1000)
	for i := range lines {
		lines[i] = "line"
	}
	b := NewFromText(joinLines(lines))
	b.DeleteLine(1000)
	assert.Equal(t, []string{""}, b.Lines())
	assert.Equal(t, Position{0, 0}, b.Cursor())
}

func TestWordMotions(t *testing.T) {
	t.Parallel()
	b := NewFromText("the quick brown fox")
	b.WordForward(1, false)
	assert.Equal(t, Position{0, 4}, b.Cursor())
	b.WordForward(1, false)
	assert.Equal(t, Position{0, 10}, b.Cursor())
	b.WordBackward(1, false)
	assert.Equal(t, Position{0, 4}, b.Cursor())
}

func TestWordEndMotion(t *testing.T) {
	t.Parallel()
	b := NewFromText("the quick")
	b.WordEnd(1, false)
	assert.Equal(t, Position{0, 2}, b.Cursor())
}

func TestFindChar(t *testing.T) {
	t.Parallel()
	b := NewFromText("the quick brown fox")
	ok := b.FindChar('q', 1, true, false)
	require.True(t, ok)
	assert.Equal(t, 4, b.Cursor().Col)

	b.MoveCursor(0, 0)
	ok = b.FindChar('q', 1, true, true)
	require.True(t, ok)
	assert.Equal(t, 3, b.Cursor().Col)
}

func TestBracketMatch(t *testing.T) {
	t.Parallel()
	b := NewFromText("foo(bar(baz))")
	b.MoveCursor(0, 3)
	ok := b.BracketMatch()
	require.True(t, ok)
	assert.Equal(t, 12, b.Cursor().Col)
}

func TestMarkJumpOutOfBoundsAfterDelete(t *testing.T) {
	t.Parallel()
	b := NewFromText("a\nb\nc")
	b.MoveCursor(2, 0)
	b.SetNamedMark('x')
	b.MoveCursor(0, 0)
	b.DeleteLine(3)
	ok := b.JumpToMark('x')
	assert.False(t, ok)
	assert.True(t, b.Cursor().Row < b.LineCount())
}

func TestJumpToUnsetMarkFails(t *testing.T) {
	t.Parallel()
	b := NewFromText("a")
	before := b.Cursor()
	ok := b.JumpToMark('z')
	assert.False(t, ok)
	assert.Equal(t, before, b.Cursor())
}

func TestYankPutRoundTrip(t *testing.T) {
	t.Parallel()
	b := NewFromText("alpha\nbeta\ngamma")
	text := b.TextRange(Position{0, 0}, Position{0, 4}, Linewise)
	assert.Equal(t, "alpha\n", text)
	b.InsertLinesBelow(1, []string{"alpha"})
	assert.Equal(t, []string{"alpha", "beta", "alpha", "gamma"}, b.Lines())
}

func joinLines(lines []string) string {
	s := ""
	for i, l := range lines {
		if i > 0 {
			s += "\n"
		}
		s += l
	}
	return s
}
