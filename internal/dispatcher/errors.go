package dispatcher

import "errors"

// Sentinel errors the dispatcher returns so a caller (pkg/editor, tests)
// can distinguish failure conditions, without
// the core ever panicking or using exceptions for control flow.
var (
	ErrUnknownCommand      = errors.New("unknown command")
	ErrNoPreviousPattern   = errors.New("no previous search pattern")
	ErrNoPreviousCommand   = errors.New("no previous command")
	ErrPatternNotFound     = errors.New("pattern not found")
	ErrMarkNotSet          = errors.New("mark not set")
	ErrNoWriteSinceChange  = errors.New("no write since last change (add ! to override)")
	ErrReadOnly            = errors.New("buffer is read-only")
	ErrInvalidPattern      = errors.New("invalid pattern")
	ErrNothingToUndo       = errors.New("nothing to undo")
	ErrNothingToRedo       = errors.New("nothing to redo")
	ErrMacroDepthExceeded  = errors.New("macro: max playback depth exceeded")
	ErrPlaybackCancelled   = errors.New("macro: playback cancelled")
	ErrUnknownOption       = errors.New("unknown option")
	ErrUnknownExCommand    = errors.New("unknown ex command")
	ErrNoRegisteredMacro   = errors.New("no previously recorded macro")
)
