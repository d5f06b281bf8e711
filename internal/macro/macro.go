// Package macro implements recording and playback of raw key sequences
// into named registers.
package macro

import (
	"errors"

	"github.com/bmf-san/vigor/internal/keys"
)

// MaxPlaybackDepth bounds nested @-playback recursion (a macro invoking
// itself, directly or through another macro, stops after this many
// levels rather than hanging).
const MaxPlaybackDepth = 100

// ErrMaxDepthExceeded is returned by a playback driver when nesting
// would exceed MaxPlaybackDepth.
var ErrMaxDepthExceeded = errors.New("macro: max playback depth exceeded")

// Recorder tracks an in-progress `q{register}` recording.
type Recorder struct {
	active   bool
	register rune
	keys     []keys.Key
}

// NewRecorder returns an idle recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Start begins recording into register. Returns false if already
// recording (vim ignores a second 'q' while one is in progress, other
// than the one that stops it — Stop handles that path).
func (r *Recorder) Start(register rune) bool {
	if r.active {
		return false
	}
	r.active = true
	r.register = register
	r.keys = nil
	return true
}

// Active reports whether a recording is in progress.
func (r *Recorder) Active() bool { return r.active }

// Register returns the register currently being recorded into.
func (r *Recorder) Register() rune { return r.register }

// Record appends one key to the in-progress recording. It is a no-op
// when not recording.
func (r *Recorder) Record(k keys.Key) {
	if r.active {
		r.keys = append(r.keys, k)
	}
}

// Stop ends the recording (the terminating 'q' itself is never recorded
// — the dispatcher must not call Record for it) and returns the
// recorded key sequence.
func (r *Recorder) Stop() []keys.Key {
	r.active = false
	k := r.keys
	r.keys = nil
	return k
}

// Player replays a recorded key sequence count times, tracking nesting
// depth so a macro that plays itself (directly or via another macro)
// cannot recurse forever. StopOnError controls whether a failing command
// halts the rest of the playback (the default) or is skipped.
type Player struct {
	depth       int
	StopOnError bool
}

// NewPlayer returns an idle player that halts playback on the first
// erroring command.
func NewPlayer() *Player { return &Player{StopOnError: true} }

// Play invokes feed(k) once for every key in seq, count times in a row.
// With StopOnError set, the first error from feed halts playback and is
// returned; otherwise errors are swallowed and the remaining keys still
// run. Nested Play calls (a macro that plays another macro from within
// feed) share the same depth counter.
func (p *Player) Play(seq []keys.Key, count int, feed func(keys.Key) error) error {
	if p.depth >= MaxPlaybackDepth {
		return ErrMaxDepthExceeded
	}
	if count < 1 {
		count = 1
	}
	p.depth++
	defer func() { p.depth-- }()
	for i := 0; i < count; i++ {
		for _, k := range seq {
			if err := feed(k); err != nil {
				if p.StopOnError {
					return err
				}
			}
		}
	}
	return nil
}

// Depth reports the current nesting depth, for tests and diagnostics.
func (p *Player) Depth() int { return p.depth }
