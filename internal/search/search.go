// Package search implements pattern search over a buffer: forward/
// backward scan with wraparound, find-all, word-under-cursor lookup, and
// a bounded history ring. Patterns compile through
// regexp2 rather than the standard library's regexp so that ex
// substitutions (internal/ex) can share the same engine and support
// backreferences in replacement text.
package search

import (
	"unicode"

	"github.com/dlclark/regexp2"

	"github.com/bmf-san/vigor/internal/buffer"
)

// HistoryCap bounds the search pattern history ring.
const HistoryCap = 50

// CompileCacheCap bounds the compiled-pattern cache; least recently used
// entries are evicted once it fills.
const CompileCacheCap = 64

// Match is one hit: the inclusive [Start,End] range of the matched text.
type Match struct {
	Start, End buffer.Position
}

// Engine holds compiled-pattern cache keyed by source+flags, the search
// history ring, and the last pattern/direction for 'n'/'N' repeats.
type Engine struct {
	history     []string
	cache       map[string]*regexp2.Regexp
	cacheOrder  []string // least recently used first
	lastPattern string
	lastForward bool

	highlightVer     int
	highlightPattern string
	highlightCache   []Match
}

// New returns an empty search engine.
func New() *Engine {
	return &Engine{cache: make(map[string]*regexp2.Regexp)}
}

// Compile parses pattern into a cached regexp2.Regexp. ignoreCase mirrors
// :set ignorecase; ignoreCase && smartCase disables it when the
// pattern itself contains an uppercase letter (:set smartcase).
func (e *Engine) Compile(pattern string, ignoreCase, smartCase bool) (*regexp2.Regexp, error) {
	key := pattern
	effectiveIC := ignoreCase
	if smartCase && hasUpper(pattern) {
		effectiveIC = false
	}
	if effectiveIC {
		key = "\x00ic\x00" + pattern
	}
	if re, ok := e.cache[key]; ok {
		e.touchCacheKey(key)
		return re, nil
	}
	opts := regexp2.None
	if effectiveIC {
		opts = regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	if len(e.cache) >= CompileCacheCap && len(e.cacheOrder) > 0 {
		oldest := e.cacheOrder[0]
		e.cacheOrder = e.cacheOrder[1:]
		delete(e.cache, oldest)
	}
	e.cache[key] = re
	e.cacheOrder = append(e.cacheOrder, key)
	return re, nil
}

func (e *Engine) touchCacheKey(key string) {
	for i, k := range e.cacheOrder {
		if k == key {
			e.cacheOrder = append(e.cacheOrder[:i], e.cacheOrder[i+1:]...)
			e.cacheOrder = append(e.cacheOrder, key)
			return
		}
	}
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// RecordHistory appends pattern to the search history ring, deduping a
// consecutive repeat and capping at HistoryCap entries.
func (e *Engine) RecordHistory(pattern string) {
	if len(e.history) > 0 && e.history[len(e.history)-1] == pattern {
		return
	}
	e.history = append(e.history, pattern)
	if len(e.history) > HistoryCap {
		e.history = e.history[len(e.history)-HistoryCap:]
	}
}

// History returns the recorded search patterns, oldest first.
func (e *Engine) History() []string { return append([]string(nil), e.history...) }

// LastPattern returns the most recently searched pattern, or "" if no
// search has run yet.
func (e *Engine) LastPattern() string { return e.lastPattern }

// LastForward reports the stored direction of the last search.
func (e *Engine) LastForward() bool { return e.lastForward }

// Forward searches from just after from for the next match of pattern,
// wrapping around the buffer once. Returns ok=false if nothing matches
// anywhere in the buffer.
func (e *Engine) Forward(b *buffer.Buffer, pattern string, from buffer.Position, ignoreCase, smartCase bool) (Match, bool, error) {
	re, err := e.Compile(pattern, ignoreCase, smartCase)
	if err != nil {
		return Match{}, false, err
	}
	e.lastPattern, e.lastForward = pattern, true
	e.RecordHistory(pattern)
	n := b.LineCount()
	for i := 0; i <= n; i++ {
		row := (from.Row + i) % n
		line := b.Line(row)
		startCol := 0
		if i == 0 {
			startCol = from.Col + 1
		}
		if startCol > len([]rune(line)) {
			continue
		}
		if m, ok := firstMatchFrom(re, line, startCol); ok {
			return Match{
				Start: buffer.Position{Row: row, Col: m.start},
				End:   buffer.Position{Row: row, Col: m.end},
			}, true, nil
		}
	}
	return Match{}, false, nil
}

// Backward searches from just before from for the previous match,
// wrapping around once.
func (e *Engine) Backward(b *buffer.Buffer, pattern string, from buffer.Position, ignoreCase, smartCase bool) (Match, bool, error) {
	re, err := e.Compile(pattern, ignoreCase, smartCase)
	if err != nil {
		return Match{}, false, err
	}
	e.lastPattern, e.lastForward = pattern, false
	e.RecordHistory(pattern)
	n := b.LineCount()
	for i := 0; i <= n; i++ {
		row := from.Row - i
		for row < 0 {
			row += n
		}
		line := b.Line(row)
		endCol := len([]rune(line))
		if i == 0 {
			endCol = from.Col
		}
		if m, ok := lastMatchBefore(re, line, endCol); ok {
			return Match{
				Start: buffer.Position{Row: row, Col: m.start},
				End:   buffer.Position{Row: row, Col: m.end},
			}, true, nil
		}
	}
	return Match{}, false, nil
}

// Repeat re-runs the last search in its original direction ('n'), or the
// opposite direction when reverse is set ('N').
func (e *Engine) Repeat(b *buffer.Buffer, from buffer.Position, reverse, ignoreCase, smartCase bool) (Match, bool, error) {
	if e.lastPattern == "" {
		return Match{}, false, nil
	}
	forward := e.lastForward
	if reverse {
		forward = !forward
	}
	if forward {
		return e.forwardNoHistory(b, e.lastPattern, from, ignoreCase, smartCase)
	}
	return e.backwardNoHistory(b, e.lastPattern, from, ignoreCase, smartCase)
}

func (e *Engine) forwardNoHistory(b *buffer.Buffer, pattern string, from buffer.Position, ic, sc bool) (Match, bool, error) {
	p, f := e.lastPattern, e.lastForward
	m, ok, err := e.Forward(b, pattern, from, ic, sc)
	e.lastPattern, e.lastForward = p, f
	return m, ok, err
}

func (e *Engine) backwardNoHistory(b *buffer.Buffer, pattern string, from buffer.Position, ic, sc bool) (Match, bool, error) {
	p, f := e.lastPattern, e.lastForward
	m, ok, err := e.Backward(b, pattern, from, ic, sc)
	e.lastPattern, e.lastForward = p, f
	return m, ok, err
}

// FindAll returns every non-overlapping match of pattern across the
// whole buffer, in document order (used to build the highlight set).
func (e *Engine) FindAll(b *buffer.Buffer, pattern string, ignoreCase, smartCase bool) ([]Match, error) {
	re, err := e.Compile(pattern, ignoreCase, smartCase)
	if err != nil {
		return nil, err
	}
	var out []Match
	for row := 0; row < b.LineCount(); row++ {
		line := b.Line(row)
		col := 0
		for {
			m, ok := firstMatchFrom(re, line, col)
			if !ok {
				break
			}
			out = append(out, Match{
				Start: buffer.Position{Row: row, Col: m.start},
				End:   buffer.Position{Row: row, Col: m.end},
			})
			if m.end < m.start { // zero-width match; avoid an infinite loop
				col = m.start + 1
			} else {
				col = m.end + 1
			}
		}
	}
	return out, nil
}

// Highlights returns every match of pattern, reusing the cached result
// from the last call unless the pattern changed or b was mutated since
// (tracked via b.Version()) — the search-highlight set is recomputed
// only when the text it describes could actually have changed.
func (e *Engine) Highlights(b *buffer.Buffer, pattern string, ignoreCase, smartCase bool) ([]Match, error) {
	if pattern == e.highlightPattern && b.Version() == e.highlightVer {
		return e.highlightCache, nil
	}
	matches, err := e.FindAll(b, pattern, ignoreCase, smartCase)
	if err != nil {
		return nil, err
	}
	e.highlightPattern = pattern
	e.highlightVer = b.Version()
	e.highlightCache = matches
	return matches, nil
}

// WordAtCursor returns the identifier under the cursor, regex-escaped as
// a literal pattern, for '*'/'#'. No word-boundary anchors are added.
func WordAtCursor(b *buffer.Buffer) (string, bool) {
	cur := b.Cursor()
	line := []rune(b.Line(cur.Row))
	if cur.Col >= len(line) {
		return "", false
	}
	isWord := func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }
	if !isWord(line[cur.Col]) {
		return "", false
	}
	start, end := cur.Col, cur.Col
	for start > 0 && isWord(line[start-1]) {
		start--
	}
	for end+1 < len(line) && isWord(line[end+1]) {
		end++
	}
	word := string(line[start : end+1])
	return regexp2.Escape(word), true
}

type runeMatch struct{ start, end int }

// firstMatchFrom finds the first match at or after rune-index startCol.
// regexp2 indexes and lengths are counted in runes (it works over a
// []rune internally to support variable-width lookaround), so the
// offsets below need no further byte/rune conversion.
func firstMatchFrom(re *regexp2.Regexp, line string, startCol int) (runeMatch, bool) {
	runes := []rune(line)
	if startCol < 0 {
		startCol = 0
	}
	if startCol > len(runes) {
		return runeMatch{}, false
	}
	sub := string(runes[startCol:])
	m, err := re.FindStringMatch(sub)
	if err != nil || m == nil {
		return runeMatch{}, false
	}
	s := startCol + m.Index
	end := s + m.Length - 1
	if m.Length == 0 {
		end = s - 1
	}
	return runeMatch{start: s, end: end}, true
}

// lastMatchBefore finds the match with the greatest start offset that
// ends at or before rune-index endCol.
func lastMatchBefore(re *regexp2.Regexp, line string, endCol int) (runeMatch, bool) {
	runes := []rune(line)
	if endCol > len(runes) {
		endCol = len(runes)
	}
	sub := string(runes[:endCol])
	var best runeMatch
	found := false
	m, err := re.FindStringMatch(sub)
	for err == nil && m != nil {
		s := m.Index
		end := s + m.Length - 1
		if m.Length == 0 {
			end = s - 1
		}
		best = runeMatch{start: s, end: end}
		found = true
		m, err = re.FindNextMatch(m)
	}
	return best, found
}
