package ex

import "sort"

// Abbreviations is the `:abbreviate` table of lhs -> rhs pairs, which
// `:abbreviate` sets, lists and looks up. Insert mode does not expand
// them.
type Abbreviations struct {
	table map[string]string
}

// NewAbbreviations returns an empty abbreviation table.
func NewAbbreviations() *Abbreviations {
	return &Abbreviations{table: make(map[string]string)}
}

// Set records lhs -> rhs (`:abbreviate lhs rhs`).
func (a *Abbreviations) Set(lhs, rhs string) { a.table[lhs] = rhs }

// Remove deletes an abbreviation (`:unabbreviate lhs`).
func (a *Abbreviations) Remove(lhs string) { delete(a.table, lhs) }

// Expand returns the replacement for word, if any is defined.
func (a *Abbreviations) Expand(word string) (string, bool) {
	rhs, ok := a.table[word]
	return rhs, ok
}

// List returns every defined abbreviation as "lhs rhs" lines, sorted.
func (a *Abbreviations) List() []string {
	var out []string
	for lhs, rhs := range a.table {
		out = append(out, lhs+" "+rhs)
	}
	sort.Strings(out)
	return out
}
