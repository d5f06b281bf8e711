package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmf-san/vigor/internal/buffer"
)

func TestEscAlwaysReturnsToNormal(t *testing.T) {
	t.Parallel()
	for _, m := range []Mode{Insert, Visual, VisualLine, VisualBlock, CommandLine, Replace, ReplaceSingle} {
		s := New()
		switch m {
		case Insert:
			s.EnterInsert()
		case Visual, VisualLine, VisualBlock:
			s.EnterVisual(m, buffer.Position{})
		case CommandLine:
			s.EnterCommandLine()
		case Replace:
			s.EnterReplace()
		case ReplaceSingle:
			s.EnterReplaceSingle()
		}
		require.True(t, s.ExitToNormal())
		assert.Equal(t, Normal, s.Current())
	}
}

func TestOperatorPendingThenMotionResetsToNormal(t *testing.T) {
	t.Parallel()
	s := New()
	require.True(t, s.EnterOperatorPending("d"))
	assert.Equal(t, OperatorPending, s.Current())
	op, ok := s.PendingOperator()
	assert.True(t, ok)
	assert.Equal(t, "d", op)
	s.ClearPendingOperator()
	require.True(t, s.ExitToNormal())
}

func TestVisualSwitchBetweenKinds(t *testing.T) {
	t.Parallel()
	s := New()
	s.EnterVisual(Visual, buffer.Position{Row: 1, Col: 2})
	require.True(t, s.EnterVisual(VisualLine, buffer.Position{Row: 1, Col: 2}))
	assert.Equal(t, VisualLine, s.Current())
}

func TestCharwiseSelectionNormalizesOrder(t *testing.T) {
	t.Parallel()
	s := New()
	s.EnterVisual(Visual, buffer.Position{Row: 2, Col: 5})
	s.UpdateVisualHead(buffer.Position{Row: 0, Col: 1})
	start, end, kind := s.Selection()
	assert.Equal(t, buffer.Charwise, kind)
	assert.Equal(t, buffer.Position{Row: 0, Col: 1}, start)
	assert.Equal(t, buffer.Position{Row: 2, Col: 5}, end)
}

func TestBlockSelectionNormalizesCorners(t *testing.T) {
	t.Parallel()
	s := New()
	s.EnterVisual(VisualBlock, buffer.Position{Row: 3, Col: 5})
	s.UpdateVisualHead(buffer.Position{Row: 0, Col: 1})
	start, end, kind := s.Selection()
	assert.Equal(t, buffer.Blockwise, kind)
	assert.Equal(t, buffer.Position{Row: 0, Col: 1}, start)
	assert.Equal(t, buffer.Position{Row: 3, Col: 5}, end)
}

func TestInsertOnlyReachesNormalOrReplace(t *testing.T) {
	t.Parallel()
	s := New()
	s.EnterInsert()
	assert.True(t, s.EnterReplace())
	assert.Equal(t, Replace, s.Current())
}

func TestReplaceSingleAutoExits(t *testing.T) {
	t.Parallel()
	s := New()
	s.EnterReplaceSingle()
	assert.Equal(t, ReplaceSingle, s.Current())
	s.ExitReplaceSingle()
	assert.Equal(t, Normal, s.Current())
}
