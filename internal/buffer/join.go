package buffer

import "strings"

// JoinLines implements 'J'/'gJ': folds count-1 lines below the cursor row
// into it. space inserts a single space at the join point unless the
// join is already whitespace-bounded on either side (vi's 'J'); gJ calls
// this with space=false and never inserts anything. The cursor lands on
// the first inserted join point (or stays put if nothing was joined).
func (b *Buffer) JoinLines(count int, space bool) bool {
	if count < 2 {
		count = 2 // J/gJ with no explicit count joins exactly two lines
	}
	row := b.cursor.Row
	last := row + count - 1
	if last >= len(b.lines) {
		last = len(b.lines) - 1
	}
	if last <= row {
		return false
	}
	b.SaveState()
	b.BeginCompoundChange()
	defer b.EndCompoundChange()

	joinCol := -1
	for row < last && row+1 < len(b.lines) {
		cur := b.lines[row]
		next := b.lines[row+1]
		trimmed := strings.TrimLeft(string(next), " \t")

		needsSpace := space && len(cur) > 0 && trimmed != "" &&
			cur[len(cur)-1] != ' ' && !strings.HasPrefix(trimmed, ")")
		joined := string(cur)
		if needsSpace {
			if joinCol < 0 {
				joinCol = len(cur)
			}
			joined += " "
		} else if joinCol < 0 {
			joinCol = len(cur)
		}
		joined += trimmed

		rest := make([][]rune, 0, len(b.lines)-1)
		rest = append(rest, b.lines[:row]...)
		rest = append(rest, []rune(joined))
		rest = append(rest, b.lines[row+2:]...)
		b.DeleteNamedMarksInRange(row+1, row+1)
		b.lines = rest
		last--
	}
	b.cursor = b.ClampPosition(Position{Row: row, Col: joinCol}, false)
	b.touch()
	return true
}
