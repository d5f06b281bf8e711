package buffer

// PushJumpPosition records the current cursor position in the jump list
// before a large motion relocates the cursor. Consecutive duplicates are
// coalesced; the list is capped at JumpCap and old entries drop off the
// front.
func (b *Buffer) PushJumpPosition() {
	pos := b.cursor
	if n := len(b.jumpList); n > 0 && b.jumpList[n-1] == pos {
		b.jumpIndex = n - 1
		return
	}
	b.jumpList = append(b.jumpList, pos)
	if len(b.jumpList) > JumpCap {
		b.jumpList = b.jumpList[len(b.jumpList)-JumpCap:]
	}
	b.jumpIndex = len(b.jumpList) - 1
}

// JumpOlder moves to the previous entry in the jump list (Ctrl-O
// semantics). Returns false if already at the oldest entry or the list is
// empty.
func (b *Buffer) JumpOlder() bool {
	if len(b.jumpList) == 0 || b.jumpIndex <= 0 {
		return false
	}
	b.jumpIndex--
	b.cursor = b.ClampPosition(b.jumpList[b.jumpIndex], false)
	return true
}

// JumpNewer moves to the next entry in the jump list (Ctrl-I semantics).
// Returns false if already at the newest entry or the list is empty.
func (b *Buffer) JumpNewer() bool {
	if len(b.jumpList) == 0 || b.jumpIndex >= len(b.jumpList)-1 {
		return false
	}
	b.jumpIndex++
	b.cursor = b.ClampPosition(b.jumpList[b.jumpIndex], false)
	return true
}

// JumpList returns a copy of the jump list and the current index, for
// introspection and tests.
func (b *Buffer) JumpList() ([]Position, int) {
	out := make([]Position, len(b.jumpList))
	copy(out, b.jumpList)
	return out, b.jumpIndex
}
