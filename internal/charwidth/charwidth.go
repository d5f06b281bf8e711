// Package charwidth computes the terminal display width of runes,
// needed by the terminal renderer (line layout and hardware-cursor
// column) to account for wide East-Asian characters and tabs.
package charwidth

import (
	"unicode"

	"golang.org/x/text/width"
)

// DefaultTabStop is the fallback tab width used by StringWidth and
// ColumnAt when the caller passes a non-positive tabStop.
const DefaultTabStop = 8

// RuneWidth returns the number of terminal columns r occupies: 0 for
// combining marks, 1 for narrow/ambiguous runes, 2 for runes classified
// East-Asian Wide or Fullwidth.
func RuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	case width.EastAsianAmbiguous:
		return 1
	default:
		if r == 0 || unicode.In(r, unicode.Mn, unicode.Me) {
			return 0
		}
		return 1
	}
}

// StringWidth returns the total display width of s, expanding tabs to
// the next multiple of tabStop.
func StringWidth(s string, tabStop int) int {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	col := 0
	for _, r := range s {
		if r == '\t' {
			col += tabStop - (col % tabStop)
			continue
		}
		col += RuneWidth(r)
	}
	return col
}

// ColumnAt returns the display column of the rune at byte-independent
// rune index idx within runes, expanding tabs at tabStop.
func ColumnAt(runes []rune, idx, tabStop int) int {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	col := 0
	for i := 0; i < idx && i < len(runes); i++ {
		if runes[i] == '\t' {
			col += tabStop - (col % tabStop)
			continue
		}
		col += RuneWidth(runes[i])
	}
	return col
}
