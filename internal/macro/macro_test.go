package macro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmf-san/vigor/internal/keys"
)

func TestRecorderCapturesKeysExcludingTerminator(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	require.True(t, r.Start('a'))
	r.Record(keys.Char('i'))
	r.Record(keys.Char('x'))
	r.Record(keys.Named(keys.Esc))
	got := r.Stop()
	assert.Equal(t, []keys.Key{keys.Char('i'), keys.Char('x'), keys.Named(keys.Esc)}, got)
	assert.False(t, r.Active())
}

func TestRecorderRejectsDoubleStart(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	require.True(t, r.Start('a'))
	assert.False(t, r.Start('b'))
}

func TestPlayerReplaysSequenceCountTimes(t *testing.T) {
	t.Parallel()
	p := NewPlayer()
	seq := []keys.Key{keys.Char('x')}
	var fed []keys.Key
	err := p.Play(seq, 3, func(k keys.Key) error {
		fed = append(fed, k)
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, fed, 3)
}

func TestPlayerStopsOnFirstError(t *testing.T) {
	t.Parallel()
	p := NewPlayer()
	seq := []keys.Key{keys.Char('a'), keys.Char('b'), keys.Char('c')}
	sentinel := errors.New("boom")
	var fed []keys.Key
	err := p.Play(seq, 1, func(k keys.Key) error {
		fed = append(fed, k)
		if k.Rune == 'b' {
			return sentinel
		}
		return nil
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Len(t, fed, 2)
}

func TestPlayerRejectsExcessiveNesting(t *testing.T) {
	t.Parallel()
	p := NewPlayer()
	p.depth = MaxPlaybackDepth
	err := p.Play([]keys.Key{keys.Char('x')}, 1, func(keys.Key) error { return nil })
	assert.ErrorIs(t, err, ErrMaxDepthExceeded)
}
