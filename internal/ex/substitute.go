package ex

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/bmf-san/vigor/internal/buffer"
)

// ErrEmptyPattern is returned by ParseSubstituteArgs when the command had
// no delimiter at all (bare ":s"), meaning "repeat the last substitution"
// — the caller is expected to already be holding that state.
var ErrEmptyPattern = errors.New("ex: no pattern given, repeat last substitution")

// SubstituteSpec is a fully parsed `:s` invocation, ready to compile.
type SubstituteSpec struct {
	Pattern     string
	Replacement string
	Global      bool // g flag: every match per line, not just the first
	IgnoreCase  bool // i flag
	Confirm     bool // c flag: caller should prompt per match (no-op here; no interactive UI in this package)
}

// ParseSubstituteArgs parses the text following ":s" (or ":substitute"),
// e.g. "/foo/bar/g". The delimiter is whatever non-alphanumeric,
// non-backslash character follows the command name; a backslash-escaped
// delimiter inside pattern/replacement is kept literal.
func ParseSubstituteArgs(args string) (SubstituteSpec, error) {
	args = strings.TrimLeft(args, " \t")
	if args == "" {
		return SubstituteSpec{}, ErrEmptyPattern
	}
	delim := args[0]
	if isNameRune(delim) || (delim >= '0' && delim <= '9') {
		return SubstituteSpec{}, errors.New("ex: invalid substitute delimiter")
	}
	parts := splitUnescaped(args[1:], delim)
	var spec SubstituteSpec
	if len(parts) > 0 {
		spec.Pattern = unescapeDelim(parts[0], delim)
	}
	if len(parts) > 1 {
		spec.Replacement = unescapeDelim(parts[1], delim)
	}
	if len(parts) > 2 {
		for _, f := range parts[2] {
			switch f {
			case 'g':
				spec.Global = true
			case 'i':
				spec.IgnoreCase = true
			case 'c':
				spec.Confirm = true
			}
		}
	}
	return spec, nil
}

func splitUnescaped(s string, delim byte) []string {
	var out []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			cur.WriteByte(s[i])
			cur.WriteByte(s[i+1])
			i++
			continue
		}
		if s[i] == delim {
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(s[i])
	}
	out = append(out, cur.String())
	return out
}

func unescapeDelim(s string, delim byte) string {
	return strings.ReplaceAll(s, "\\"+string(delim), string(delim))
}

// Compile builds the regexp2 pattern for spec, applying its IgnoreCase
// flag.
func (spec SubstituteSpec) Compile() (*regexp2.Regexp, error) {
	opts := regexp2.None
	if spec.IgnoreCase {
		opts = regexp2.IgnoreCase
	}
	return regexp2.Compile(spec.Pattern, opts)
}

// Substitute runs spec over [startRow,endRow] of b and returns the total
// number of replacements made.
func Substitute(b *buffer.Buffer, re *regexp2.Regexp, replacement string, startRow, endRow int, global bool) int {
	return b.SubstituteRange(startRow, endRow, func(line string) (string, int, error) {
		return SubstituteLine(re, line, replacement, global)
	})
}

// SubstituteLine applies re to one line, returning the rewritten line
// and the number of replacements made (one, or every match when global).
func SubstituteLine(re *regexp2.Regexp, line, replacement string, global bool) (string, int, error) {
	runes := []rune(line)
	var sb strings.Builder
	count := 0
	pos := 0
	searchFrom := 0
	for searchFrom <= len(runes) {
		sub := string(runes[searchFrom:])
		m, err := re.FindStringMatch(sub)
		if err != nil {
			return line, count, err
		}
		if m == nil {
			break
		}
		start := searchFrom + m.Index
		length := m.Length
		if start > len(runes) || start+length > len(runes) {
			break
		}
		sb.WriteString(string(runes[pos:start]))
		sb.WriteString(expandReplacement(replacement, m))
		count++
		pos = start + length
		if length == 0 {
			if pos < len(runes) {
				sb.WriteRune(runes[pos])
			}
			pos++
		}
		searchFrom = pos
		if !global {
			break
		}
	}
	if pos < len(runes) {
		sb.WriteString(string(runes[pos:]))
	}
	return sb.String(), count, nil
}

// expandReplacement renders vim-style replacement syntax: \1-\9 for
// capture groups, & for the whole match, \& and \\ for literal
// ampersand/backslash.
func expandReplacement(repl string, m *regexp2.Match) string {
	var sb strings.Builder
	rs := []rune(repl)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		if c == '\\' && i+1 < len(rs) {
			n := rs[i+1]
			switch {
			case n >= '0' && n <= '9':
				if g := m.GroupByNumber(int(n - '0')); g != nil {
					sb.WriteString(g.String())
				}
			case n == '&':
				sb.WriteRune('&')
			case n == '\\':
				sb.WriteRune('\\')
			default:
				sb.WriteRune(n)
			}
			i++
			continue
		}
		if c == '&' {
			sb.WriteString(m.String())
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}
