package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bmf-san/vigor/internal/buffer"
)

func TestDollarIsInclusive(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("hello")
	var f Find
	r := Apply(b, "$", 1, 0, Viewport{}, &f)
	assert.True(t, r.Inclusive)
	assert.Equal(t, buffer.Position{Row: 0, Col: 4}, b.Cursor())
}

func TestWordMotionExclusive(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("foo bar")
	var f Find
	r := Apply(b, "w", 1, 0, Viewport{}, &f)
	assert.False(t, r.Inclusive)
	assert.False(t, r.Linewise)
	assert.Equal(t, buffer.Position{Row: 0, Col: 4}, b.Cursor())
}

func TestLineMotionsAreLinewise(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("a\nb\nc")
	var f Find
	r := Apply(b, "j", 1, 0, Viewport{}, &f)
	assert.True(t, r.Linewise)
	r = Apply(b, "G", 0, 0, Viewport{}, &f)
	assert.True(t, r.Linewise)
	assert.Equal(t, 2, b.Cursor().Row)
}

func TestFindCharRecordsLastAndSemicolonRepeats(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("a.b.c.d")
	var f Find
	r := Apply(b, "f", 1, '.', Viewport{}, &f)
	assert.True(t, r.Ok)
	assert.Equal(t, 1, b.Cursor().Col)

	r = Apply(b, ";", 1, 0, Viewport{}, &f)
	assert.True(t, r.Ok)
	assert.Equal(t, 3, b.Cursor().Col)

	r = Apply(b, ",", 1, 0, Viewport{}, &f)
	assert.True(t, r.Ok)
	assert.Equal(t, 1, b.Cursor().Col)
}

func TestFindCharNotFoundLeavesCursor(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("abc")
	var f Find
	r := Apply(b, "f", 1, 'z', Viewport{}, &f)
	assert.False(t, r.Ok)
	assert.Equal(t, 0, b.Cursor().Col)
}

func TestSemicolonWithNoPriorFindFails(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("abc")
	var f Find
	r := Apply(b, ";", 1, 0, Viewport{}, &f)
	assert.False(t, r.Ok)
}

func TestViewportMotions(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("a\nb\nc\nd\ne")
	var f Find
	vp := Viewport{Top: 0, Bottom: 4}
	r := Apply(b, "L", 1, 0, vp, &f)
	assert.True(t, r.Linewise)
	assert.Equal(t, 4, b.Cursor().Row)
	r = Apply(b, "M", 1, 0, vp, &f)
	assert.True(t, r.Linewise)
	assert.Equal(t, 2, b.Cursor().Row)
}
