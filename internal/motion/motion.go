// Package motion executes the cursor-moving commands and classifies each
// one as inclusive/exclusive or linewise: an operator's span is computed
// from the motion's classification, not from the motion itself.
package motion

import "github.com/bmf-san/vigor/internal/buffer"

// Viewport describes the visible row range, needed by the H/M/L motions.
// The dispatcher/editor owns scrolling; motion only reads it.
type Viewport struct {
	Top    int
	Bottom int
}

// Result reports how the motion that just ran should be treated when it
// is the operand of a pending operator.
type Result struct {
	Inclusive bool
	Linewise  bool
	Ok        bool // false means the motion failed to find a destination (e.g. 'f' with no match); the buffer is left unchanged and a pending operator must be cancelled
}

// Find remembers the last f/F/t/T invocation so ';' and ',' can repeat it.
type Find struct {
	Target  rune
	Forward bool
	Till    bool
	Set     bool
}

// Apply runs the motion named id, moving b's cursor, and returns its
// range classification. arg carries the target character for f/F/t/T;
// it is ignored otherwise. count is the raw repeat count (callers pass 0
// for "no count given").
func Apply(b *buffer.Buffer, id string, count int, arg rune, vp Viewport, last *Find) Result {
	// count == 0 means "no count given"; G/gg treat that as a distinct
	// destination (last/first line) from an explicit "1G"/"1gg", so they
	// inspect the raw value below. Every other motion just wants >= 1.
	rawCount := count
	if count < 1 {
		count = 1
	}
	switch id {
	case "h":
		b.MoveLeft(count)
		return Result{Ok: true}
	case "l":
		b.MoveRight(count, false)
		return Result{Ok: true}
	case "j":
		b.MoveDown(count)
		return Result{Linewise: true, Ok: true}
	case "k":
		b.MoveUp(count)
		return Result{Linewise: true, Ok: true}
	case "0":
		b.MoveToLineStart()
		return Result{Ok: true}
	case "^":
		b.MoveToFirstNonBlank()
		return Result{Ok: true}
	case "$":
		b.MoveToLineEnd()
		return Result{Inclusive: true, Ok: true}
	case "w":
		b.WordForward(count, false)
		return Result{Ok: true}
	case "W":
		b.WordForward(count, true)
		return Result{Ok: true}
	case "b":
		b.WordBackward(count, false)
		return Result{Ok: true}
	case "B":
		b.WordBackward(count, true)
		return Result{Ok: true}
	case "e":
		b.WordEnd(count, false)
		return Result{Inclusive: true, Ok: true}
	case "E":
		b.WordEnd(count, true)
		return Result{Inclusive: true, Ok: true}
	case "gg":
		n := count
		if rawCount == 0 {
			n = 1
		}
		b.GotoLine(n)
		return Result{Linewise: true, Ok: true}
	case "G":
		n := count
		if rawCount == 0 {
			n = b.LineCount()
		}
		b.GotoLine(n)
		return Result{Linewise: true, Ok: true}
	case "}":
		b.ParagraphForward(count)
		return Result{Linewise: true, Ok: true}
	case "{":
		b.ParagraphBackward(count)
		return Result{Linewise: true, Ok: true}
	case "%":
		return Result{Inclusive: true, Ok: b.BracketMatch()}
	case "H":
		b.MoveCursor(vp.Top, 0)
		b.MoveToFirstNonBlank()
		return Result{Linewise: true, Ok: true}
	case "M":
		b.MoveCursor((vp.Top+vp.Bottom)/2, 0)
		b.MoveToFirstNonBlank()
		return Result{Linewise: true, Ok: true}
	case "L":
		b.MoveCursor(vp.Bottom, 0)
		b.MoveToFirstNonBlank()
		return Result{Linewise: true, Ok: true}
	case "f":
		*last = Find{Target: arg, Forward: true, Till: false, Set: true}
		return Result{Inclusive: true, Ok: b.FindChar(arg, count, true, false)}
	case "F":
		*last = Find{Target: arg, Forward: false, Till: false, Set: true}
		return Result{Inclusive: true, Ok: b.FindChar(arg, count, false, false)}
	case "t":
		*last = Find{Target: arg, Forward: true, Till: true, Set: true}
		return Result{Inclusive: true, Ok: b.FindChar(arg, count, true, true)}
	case "T":
		*last = Find{Target: arg, Forward: false, Till: true, Set: true}
		return Result{Inclusive: true, Ok: b.FindChar(arg, count, false, true)}
	case ";":
		if !last.Set {
			return Result{Ok: false}
		}
		return Result{Inclusive: true, Ok: b.FindChar(last.Target, count, last.Forward, last.Till)}
	case ",":
		if !last.Set {
			return Result{Ok: false}
		}
		return Result{Inclusive: true, Ok: b.FindChar(last.Target, count, !last.Forward, last.Till)}
	}
	return Result{}
}
