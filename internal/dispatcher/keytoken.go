package dispatcher

import "github.com/bmf-san/vigor/internal/keys"

// controlCode maps a Ctrl-<letter> combination to the ASCII control byte
// vi command tables are traditionally keyed by (Ctrl-R == 0x12, etc).
func controlCode(r rune) rune {
	lower := r
	if lower >= 'A' && lower <= 'Z' {
		lower += 'a' - 'A'
	}
	if lower >= 'a' && lower <= 'z' {
		return lower & 0x1f
	}
	return r
}

// token renders k as the string the command registry is keyed by. Arrow
// keys and Home/End are folded onto their h/j/k/l/0/$ equivalents so a
// terminal front-end that also decodes arrow keys gets vi motions for
// free; Tab maps to Ctrl-I. Returns ok=false for any other named key
// (Enter, Backspace, ...), which the caller silently ignores.
func token(k keys.Key) (string, bool) {
	switch {
	case k.Ctrl:
		return string(controlCode(k.Rune)), true
	case k.Special != keys.None:
		switch k.Special {
		case keys.Left:
			return "h", true
		case keys.Down:
			return "j", true
		case keys.Up:
			return "k", true
		case keys.Right:
			return "l", true
		case keys.Home:
			return "0", true
		case keys.End:
			return "$", true
		case keys.Tab:
			// Tab and Ctrl-I are the same byte on a terminal; in Normal
			// mode it means "jump newer".
			return "\x09", true
		default:
			return "", false
		}
	default:
		return string(k.Rune), true
	}
}

func isDigit(tok string) bool {
	return len(tok) == 1 && tok[0] >= '0' && tok[0] <= '9'
}
