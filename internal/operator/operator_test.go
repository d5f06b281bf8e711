package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmf-san/vigor/internal/buffer"
	"github.com/bmf-san/vigor/internal/registers"
)

func TestDeleteOperatorWritesUnnamedRegister(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("hello world")
	regs := registers.New()
	out := Apply(b, regs, "d", buffer.Position{Row: 0, Col: 0}, buffer.Position{Row: 0, Col: 4}, buffer.Charwise, '"', false, 4)
	require.True(t, out.Ok)
	assert.Equal(t, " world", b.Line(0))
	assert.Equal(t, "hello", regs.Get('"').Text)
}

func TestChangeOperatorLinewiseOpensBlankLine(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("one\ntwo\nthree")
	regs := registers.New()
	out := Apply(b, regs, "c", buffer.Position{Row: 0, Col: 0}, buffer.Position{Row: 1, Col: 0}, buffer.Linewise, '"', false, 4)
	require.True(t, out.Ok)
	require.True(t, out.EntersInsert)
	assert.Equal(t, 2, b.LineCount())
	assert.Equal(t, "", b.Line(0))
	assert.Equal(t, "three", b.Line(1))
}

func TestYankOperatorDoesNotMutateBuffer(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("abc\ndef")
	regs := registers.New()
	out := Apply(b, regs, "y", buffer.Position{Row: 0, Col: 0}, buffer.Position{Row: 1, Col: 0}, buffer.Linewise, '"', false, 4)
	require.True(t, out.Ok)
	assert.Equal(t, "abc\ndef", b.Content())
	assert.Equal(t, "abc\ndef\n", regs.Get('"').Text)
}

func TestIndentAndUnindent(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("a\nb")
	regs := registers.New()
	Apply(b, regs, ">", buffer.Position{Row: 0, Col: 0}, buffer.Position{Row: 1, Col: 0}, buffer.Linewise, '"', false, 4)
	assert.Equal(t, "    a", b.Line(0))
	assert.Equal(t, "    b", b.Line(1))
	Apply(b, regs, "<", buffer.Position{Row: 0, Col: 0}, buffer.Position{Row: 1, Col: 0}, buffer.Linewise, '"', false, 4)
	assert.Equal(t, "a", b.Line(0))
	assert.Equal(t, "b", b.Line(1))
}

func TestToggleCaseOperatorCharwise(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("AbC")
	regs := registers.New()
	out := Apply(b, regs, "g~", buffer.Position{Row: 0, Col: 0}, buffer.Position{Row: 0, Col: 2}, buffer.Charwise, '"', false, 4)
	require.True(t, out.Ok)
	assert.Equal(t, "aBc", b.Line(0))
}

func TestUppercaseOperatorBlockwise(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("abc\ndef\nghi")
	regs := registers.New()
	out := Apply(b, regs, "gU", buffer.Position{Row: 0, Col: 0}, buffer.Position{Row: 2, Col: 1}, buffer.Blockwise, '"', false, 4)
	require.True(t, out.Ok)
	assert.Equal(t, "ABc", b.Line(0))
	assert.Equal(t, "DEf", b.Line(1))
	assert.Equal(t, "GHi", b.Line(2))
}

func TestDeleteSingleCharDoesNotShiftNumberedRegisters(t *testing.T) {
	t.Parallel()
	b := buffer.NewFromText("xyz")
	regs := registers.New()
	regs.Yank("previous", '"', buffer.Charwise)
	Apply(b, regs, "d", buffer.Position{Row: 0, Col: 0}, buffer.Position{Row: 0, Col: 0}, buffer.Charwise, '"', true, 4)
	assert.Equal(t, "", regs.Get('1').Text)
}
