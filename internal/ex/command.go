package ex

import "strings"

// Command is one parsed Ex command line (the text after ':').
type Command struct {
	Range Range
	Name  string
	Bang  bool
	Args  string
}

// Parse splits an Ex command line into its range, command name, an
// optional '!', and trailing argument text. The command name is left
// unabbreviated (e.g. "s", "su", "subst" and "substitute" all come
// through as given); callers match against known prefixes.
func Parse(line string) Command {
	r, rest := parseRange(line)
	rest = strings.TrimLeft(rest, " \t")

	if rest == "" {
		return Command{Range: r}
	}
	// A bare range with no command (":5") is a jump-to-line, represented
	// as the synthetic command name "".
	i := 0
	for i < len(rest) && isNameRune(rest[i]) {
		i++
	}
	name := rest[:i]
	tail := rest[i:]
	bang := false
	if strings.HasPrefix(tail, "!") {
		bang = true
		tail = tail[1:]
	}
	tail = strings.TrimLeft(tail, " \t")
	return Command{Range: r, Name: name, Bang: bang, Args: tail}
}

func isNameRune(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// MatchesName reports whether name is a valid abbreviation of full,
// vim-style: any non-empty prefix of full matches, down to min chars.
func MatchesName(name, full string, min int) bool {
	if len(name) < min || len(name) > len(full) {
		return false
	}
	return strings.HasPrefix(full, name)
}
