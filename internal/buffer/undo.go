package buffer

// snapshot captures everything needed to restore buffer state. A full
// deep copy per mutation is deliberate: at editor-buffer sizes it is
// cheap, and it keeps undo independent of every mutation path.
type snapshot struct {
	lines  [][]rune
	cursor Position
	mark   *Position
}

func (b *Buffer) snapshotNow() snapshot {
	lines := make([][]rune, len(b.lines))
	for i, l := range b.lines {
		cp := make([]rune, len(l))
		copy(cp, l)
		lines[i] = cp
	}
	var mark *Position
	if b.mark != nil {
		m := *b.mark
		mark = &m
	}
	return snapshot{lines: lines, cursor: b.cursor, mark: mark}
}

func (b *Buffer) restore(s snapshot) {
	lines := make([][]rune, len(s.lines))
	for i, l := range s.lines {
		cp := make([]rune, len(l))
		copy(cp, l)
		lines[i] = cp
	}
	b.lines = lines
	b.cursor = s.cursor
	if s.mark != nil {
		m := *s.mark
		b.mark = &m
	} else {
		b.mark = nil
	}
}

// SaveState pushes a snapshot of the current state onto the undo stack and
// clears the redo stack, unless a compound change is open. It must be
// called before a mutation commits.
func (b *Buffer) SaveState() {
	if b.compound > 0 {
		return
	}
	b.pushUndo()
}

func (b *Buffer) pushUndo() {
	b.undoStack = append(b.undoStack, b.snapshotNow())
	if len(b.undoStack) > UndoCap {
		b.undoStack = b.undoStack[len(b.undoStack)-UndoCap:]
	}
	b.redoStack = nil
}

// BeginCompoundChange saves once (if not already nested) and suppresses
// further SaveState calls until EndCompoundChange closes the bracket.
// Bracketing nests: only the outermost Begin saves, only the matching End
// re-enables saving.
func (b *Buffer) BeginCompoundChange() {
	if b.compound == 0 {
		b.pushUndo()
	}
	b.compound++
}

// EndCompoundChange closes a compound-change bracket opened by
// BeginCompoundChange. Calling it without a matching Begin is a no-op,
// so a handler that errors partway through still closes its bracket
// safely (compound-change guards must pair even on error paths).
func (b *Buffer) EndCompoundChange() {
	if b.compound > 0 {
		b.compound--
	}
}

// Undo restores the most recent snapshot, pushing the current state to
// redo. Returns false if there is nothing to undo.
func (b *Buffer) Undo() bool {
	if len(b.undoStack) == 0 {
		return false
	}
	cur := b.snapshotNow()
	s := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.redoStack = append(b.redoStack, cur)
	if len(b.redoStack) > UndoCap {
		b.redoStack = b.redoStack[len(b.redoStack)-UndoCap:]
	}
	b.restore(s)
	b.touch()
	return true
}

// Redo re-applies the most recently undone snapshot. Returns false if
// there is nothing to redo.
func (b *Buffer) Redo() bool {
	if len(b.redoStack) == 0 {
		return false
	}
	cur := b.snapshotNow()
	s := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.undoStack = append(b.undoStack, cur)
	if len(b.undoStack) > UndoCap {
		b.undoStack = b.undoStack[len(b.undoStack)-UndoCap:]
	}
	b.restore(s)
	b.touch()
	return true
}

// UndoDepth and RedoDepth expose stack sizes for tests and :undolist-style
// introspection.
func (b *Buffer) UndoDepth() int { return len(b.undoStack) }
func (b *Buffer) RedoDepth() int { return len(b.redoStack) }
