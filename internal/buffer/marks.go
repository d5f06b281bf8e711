package buffer

// SetMark records the anonymous visual-anchor mark at the cursor.
func (b *Buffer) SetMark() {
	pos := b.cursor
	b.mark = &pos
}

// Mark returns the anonymous mark, if set.
func (b *Buffer) Mark() (Position, bool) {
	if b.mark == nil {
		return Position{}, false
	}
	return *b.mark, true
}

// ClearMark removes the anonymous mark.
func (b *Buffer) ClearMark() { b.mark = nil }

// SetNamedMark records mark name (a-z) at the cursor.
func (b *Buffer) SetNamedMark(name rune) {
	b.namedMarks[name] = b.cursor
}

// NamedMark returns the position of a named mark, if set.
func (b *Buffer) NamedMark(name rune) (Position, bool) {
	pos, ok := b.namedMarks[name]
	return pos, ok
}

// JumpToMark moves the cursor to named mark `name`. Marks on deleted
// lines are dropped by the deletion paths (DeleteNamedMarksInRange), and
// the stored position is clamped into current bounds here as a second
// line of defense, so a jump can never land out of bounds. Returns false
// if the mark is not set, without mutating the buffer.
func (b *Buffer) JumpToMark(name rune) bool {
	pos, ok := b.namedMarks[name]
	if !ok {
		return false
	}
	b.PushJumpPosition()
	b.cursor = b.ClampPosition(pos, false)
	return true
}

// DeleteNamedMarksInRange drops marks whose row falls inside [start,end]
// (inclusive) after a line-range deletion, then shifts marks below the
// deleted range up by the number of removed lines. A mark on a deleted
// line is dropped rather than best-effort-shifted onto a surviving one.
func (b *Buffer) DeleteNamedMarksInRange(start, end int) {
	removed := end - start + 1
	for name, pos := range b.namedMarks {
		switch {
		case pos.Row >= start && pos.Row <= end:
			delete(b.namedMarks, name)
		case pos.Row > end:
			pos.Row -= removed
			b.namedMarks[name] = pos
		}
	}
	if b.mark != nil {
		switch {
		case b.mark.Row >= start && b.mark.Row <= end:
			b.mark = nil
		case b.mark.Row > end:
			b.mark.Row -= removed
		}
	}
}
