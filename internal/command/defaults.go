package command

import "github.com/bmf-san/vigor/internal/mode"

var normalVisualOp = []mode.Mode{mode.Normal, mode.Visual, mode.VisualLine, mode.VisualBlock, mode.OperatorPending}
var visualOp = []mode.Mode{mode.Visual, mode.VisualLine, mode.VisualBlock, mode.OperatorPending}

func motion(keys, name string, inclusive, linewise bool, modes []mode.Mode) Def {
	return Def{Keys: keys, Name: name, ID: keys, Kind: MotionKind, Modes: modes,
		TakesCount: true, IsMotion: true, Inclusive: inclusive, Linewise: linewise}
}

func operatorDef(keys, name string) Def {
	return Def{Keys: keys, Name: name, ID: keys, Kind: OperatorKind,
		Modes: []mode.Mode{mode.Normal}, TakesCount: true, TakesRegister: true,
		SetsOperatorPending: true, Repeatable: true}
}

func textObj(keys, name string) Def {
	return Def{Keys: keys, Name: name, ID: keys, Kind: TextObjectKind, Modes: visualOp}
}

func action(keys, name string, modes []mode.Mode, opts ...func(*Def)) Def {
	d := Def{Keys: keys, Name: name, ID: keys, Kind: ActionKind, Modes: modes,
		TakesCount: true, TakesRegister: true}
	for _, o := range opts {
		o(&d)
	}
	return d
}

func repeatable(d *Def)          { d.Repeatable = true }
func consumesArg(d *Def)         { d.ConsumesArg = true }
func noCount(d *Def)             { d.TakesCount = false }
func modeChange(keys, name string, modes []mode.Mode) Def {
	return Def{Keys: keys, Name: name, ID: keys, Kind: ModeChangeKind, Modes: modes}
}

// defaultDefs is the built-in catalog: every motion/operator/text-object/
// action/mode-change the editor ships with.
func defaultDefs() []Def {
	var defs []Def

	// Motions (valid standalone in Normal/Visual and as operator operands).
	defs = append(defs,
		motion("h", "char left", false, false, normalVisualOp),
		motion("l", "char right", false, false, normalVisualOp),
		motion("j", "line down", false, true, normalVisualOp),
		motion("k", "line up", false, true, normalVisualOp),
		motion("0", "line start", false, false, normalVisualOp),
		motion("^", "first non-blank", false, false, normalVisualOp),
		motion("$", "line end", true, false, normalVisualOp),
		motion("w", "next word", false, false, normalVisualOp),
		motion("W", "next WORD", false, false, normalVisualOp),
		motion("b", "prev word", false, false, normalVisualOp),
		motion("B", "prev WORD", false, false, normalVisualOp),
		motion("e", "word end", true, false, normalVisualOp),
		motion("E", "WORD end", true, false, normalVisualOp),
		motion("gg", "first line", false, true, normalVisualOp),
		motion("G", "last/Nth line", false, true, normalVisualOp),
		motion("}", "next paragraph", false, true, normalVisualOp),
		motion("{", "prev paragraph", false, true, normalVisualOp),
		motion("H", "viewport top", false, true, normalVisualOp),
		motion("M", "viewport middle", false, true, normalVisualOp),
		motion("L", "viewport bottom", false, true, normalVisualOp),
		motion("%", "bracket match", true, false, normalVisualOp),
		motion(";", "repeat find same dir", true, false, normalVisualOp),
		motion(",", "repeat find opp dir", true, false, normalVisualOp),
	)
	defs = append(defs,
		Def{Keys: "f", Name: "find char", ID: "f", Kind: MotionKind, Modes: normalVisualOp,
			TakesCount: true, IsMotion: true, Inclusive: true, ConsumesArg: true},
		Def{Keys: "F", Name: "find char back", ID: "F", Kind: MotionKind, Modes: normalVisualOp,
			TakesCount: true, IsMotion: true, Inclusive: true, ConsumesArg: true},
		Def{Keys: "t", Name: "till char", ID: "t", Kind: MotionKind, Modes: normalVisualOp,
			TakesCount: true, IsMotion: true, Inclusive: true, ConsumesArg: true},
		Def{Keys: "T", Name: "till char back", ID: "T", Kind: MotionKind, Modes: normalVisualOp,
			TakesCount: true, IsMotion: true, Inclusive: true, ConsumesArg: true},
	)

	// Operators (Normal mode only; they set Operator-Pending and consume
	// a subsequent motion/text-object).
	for _, o := range []struct{ keys, name string }{
		{"d", "delete"}, {"c", "change"}, {"y", "yank"},
		{"=", "auto-indent"}, {">", "indent"}, {"<", "unindent"},
		{"gu", "lowercase"}, {"gU", "uppercase"}, {"g~", "toggle case"},
	} {
		defs = append(defs, operatorDef(o.keys, o.name))
		// Operators are also valid applied directly over a Visual selection.
		vd := operatorDef(o.keys, o.name)
		vd.Modes = []mode.Mode{mode.Visual, mode.VisualLine, mode.VisualBlock}
		vd.SetsOperatorPending = false
		defs = append(defs, vd)
	}

	// Text objects.
	for _, c := range []string{"w", "W", "s", "p", "\"", "'", "`", "(", ")", "[", "]", "{", "}", "<", ">"} {
		defs = append(defs, textObj("i"+c, "inner "+c))
		defs = append(defs, textObj("a"+c, "around "+c))
	}

	// Actions.
	defs = append(defs,
		action("x", "delete char", []mode.Mode{mode.Normal}, repeatable),
		action("X", "delete char before", []mode.Mode{mode.Normal}, repeatable),
		action("D", "delete to eol", []mode.Mode{mode.Normal}, repeatable),
		action("C", "change to eol", []mode.Mode{mode.Normal}, repeatable),
		action("Y", "yank line", []mode.Mode{mode.Normal}),
		action("s", "substitute char", []mode.Mode{mode.Normal}, repeatable),
		action("S", "substitute line", []mode.Mode{mode.Normal}, repeatable),
		action("p", "put after", []mode.Mode{mode.Normal}, repeatable),
		action("P", "put before", []mode.Mode{mode.Normal}, repeatable),
		action("J", "join", []mode.Mode{mode.Normal}, repeatable),
		action("gJ", "join no space", []mode.Mode{mode.Normal}, repeatable),
		action("~", "toggle case char", []mode.Mode{mode.Normal}, repeatable),
		action("u", "undo", []mode.Mode{mode.Normal}, noCount),
		action("U", "undo line", []mode.Mode{mode.Normal}, noCount),
		action(".", "repeat", []mode.Mode{mode.Normal}, noCount),
		action("/", "search forward", []mode.Mode{mode.Normal}, noCount),
		action("?", "search backward", []mode.Mode{mode.Normal}, noCount),
		action("n", "repeat search", []mode.Mode{mode.Normal}, noCount),
		action("N", "repeat search opposite", []mode.Mode{mode.Normal}, noCount),
		action("*", "search word forward", []mode.Mode{mode.Normal}, noCount),
		action("#", "search word backward", []mode.Mode{mode.Normal}, noCount),
		action("r", "replace char", []mode.Mode{mode.Normal}, consumesArg),
		action("m", "set mark", []mode.Mode{mode.Normal}, consumesArg, noCount),
		action("`", "jump mark exact", normalVisualOp, consumesArg, noCount),
		action("'", "jump mark line", normalVisualOp, consumesArg, noCount),
		action("q", "macro record toggle", []mode.Mode{mode.Normal}, consumesArg, noCount),
		action("@", "macro playback", []mode.Mode{mode.Normal}, consumesArg),
	)
	defs = append(defs, Def{Keys: "\x12", Name: "redo", ID: "ctrl-r", Kind: ActionKind, Modes: []mode.Mode{mode.Normal}})
	defs = append(defs, Def{Keys: "\x0f", Name: "jump older", ID: "ctrl-o", Kind: ActionKind, Modes: []mode.Mode{mode.Normal}})
	defs = append(defs, Def{Keys: "\x09", Name: "jump newer", ID: "ctrl-i", Kind: ActionKind, Modes: []mode.Mode{mode.Normal}})

	// Mode changes.
	defs = append(defs,
		modeChange("i", "insert before", []mode.Mode{mode.Normal}),
		modeChange("a", "insert after", []mode.Mode{mode.Normal}),
		modeChange("I", "insert at first non-blank", []mode.Mode{mode.Normal}),
		modeChange("A", "insert at eol", []mode.Mode{mode.Normal}),
		modeChange("o", "open below", []mode.Mode{mode.Normal}),
		modeChange("O", "open above", []mode.Mode{mode.Normal}),
		modeChange("R", "enter replace", []mode.Mode{mode.Normal}),
		modeChange("v", "visual char", []mode.Mode{mode.Normal, mode.Visual, mode.VisualLine, mode.VisualBlock}),
		modeChange("V", "visual line", []mode.Mode{mode.Normal, mode.Visual, mode.VisualLine, mode.VisualBlock}),
		modeChange("\x16", "visual block", []mode.Mode{mode.Normal, mode.Visual, mode.VisualLine, mode.VisualBlock}),
		modeChange(":", "command line", []mode.Mode{mode.Normal}),
	)

	return defs
}
