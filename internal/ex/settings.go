package ex

import (
	"fmt"
	"strconv"
	"strings"
)

// Settings holds the `:set`-able options. DefaultSettings returns vi's
// traditional defaults; the zero value has every option off or zero.
type Settings struct {
	Number         bool
	RelativeNumber bool
	IgnoreCase     bool
	SmartCase      bool
	HLSearch       bool
	Wrap           bool
	WrapScan       bool
	Incsearch      bool
	List           bool
	AutoIndent     bool
	SmartIndent    bool
	ExpandTab      bool
	Ruler          bool
	ShowCmd        bool
	ShowMode       bool
	Backup         bool
	WriteBackup    bool
	SwapFile       bool
	AutoWrite      bool
	AutoRead       bool
	ShiftWidth     int
	TabStop        int
	SoftTabStop    int
	ScrollOff      int
	SideScrollOff  int
	History        int
	Report         int
	LastStatus     int
	Backspace      string
}

// DefaultSettings returns the traditional vi option defaults.
func DefaultSettings() Settings {
	return Settings{
		Wrap:        true,
		WrapScan:    true,
		ShowCmd:     true,
		ShowMode:    true,
		Backup:      true,
		WriteBackup: true,
		SwapFile:    true,
		ShiftWidth:  8,
		TabStop:     8,
		History:     50,
		Report:      2,
		LastStatus:  1,
		Backspace:   "indent,eol,start",
	}
}

type optionKind int

const (
	boolOption optionKind = iota
	numberOption
	stringOption
)

type optionDef struct {
	name, abbrev string
	kind         optionKind
	get          func(*Settings) interface{}
	setBool      func(*Settings, bool)
	setNumber    func(*Settings, int)
	setString    func(*Settings, string)
}

var optionDefs = []optionDef{
	{"number", "nu", boolOption,
		func(s *Settings) interface{} { return s.Number },
		func(s *Settings, v bool) { s.Number = v }, nil, nil},
	{"relativenumber", "rnu", boolOption,
		func(s *Settings) interface{} { return s.RelativeNumber },
		func(s *Settings, v bool) { s.RelativeNumber = v }, nil, nil},
	{"ignorecase", "ic", boolOption,
		func(s *Settings) interface{} { return s.IgnoreCase },
		func(s *Settings, v bool) { s.IgnoreCase = v }, nil, nil},
	{"smartcase", "scs", boolOption,
		func(s *Settings) interface{} { return s.SmartCase },
		func(s *Settings, v bool) { s.SmartCase = v }, nil, nil},
	{"hlsearch", "hls", boolOption,
		func(s *Settings) interface{} { return s.HLSearch },
		func(s *Settings, v bool) { s.HLSearch = v }, nil, nil},
	{"incsearch", "is", boolOption,
		func(s *Settings) interface{} { return s.Incsearch },
		func(s *Settings, v bool) { s.Incsearch = v }, nil, nil},
	{"wrap", "wrap", boolOption,
		func(s *Settings) interface{} { return s.Wrap },
		func(s *Settings, v bool) { s.Wrap = v }, nil, nil},
	{"wrapscan", "ws", boolOption,
		func(s *Settings) interface{} { return s.WrapScan },
		func(s *Settings, v bool) { s.WrapScan = v }, nil, nil},
	{"list", "list", boolOption,
		func(s *Settings) interface{} { return s.List },
		func(s *Settings, v bool) { s.List = v }, nil, nil},
	{"autoindent", "ai", boolOption,
		func(s *Settings) interface{} { return s.AutoIndent },
		func(s *Settings, v bool) { s.AutoIndent = v }, nil, nil},
	{"smartindent", "si", boolOption,
		func(s *Settings) interface{} { return s.SmartIndent },
		func(s *Settings, v bool) { s.SmartIndent = v }, nil, nil},
	{"expandtab", "et", boolOption,
		func(s *Settings) interface{} { return s.ExpandTab },
		func(s *Settings, v bool) { s.ExpandTab = v }, nil, nil},
	{"ruler", "ru", boolOption,
		func(s *Settings) interface{} { return s.Ruler },
		func(s *Settings, v bool) { s.Ruler = v }, nil, nil},
	{"showcmd", "sc", boolOption,
		func(s *Settings) interface{} { return s.ShowCmd },
		func(s *Settings, v bool) { s.ShowCmd = v }, nil, nil},
	{"showmode", "smd", boolOption,
		func(s *Settings) interface{} { return s.ShowMode },
		func(s *Settings, v bool) { s.ShowMode = v }, nil, nil},
	{"backup", "bk", boolOption,
		func(s *Settings) interface{} { return s.Backup },
		func(s *Settings, v bool) { s.Backup = v }, nil, nil},
	{"writebackup", "wb", boolOption,
		func(s *Settings) interface{} { return s.WriteBackup },
		func(s *Settings, v bool) { s.WriteBackup = v }, nil, nil},
	{"swapfile", "swf", boolOption,
		func(s *Settings) interface{} { return s.SwapFile },
		func(s *Settings, v bool) { s.SwapFile = v }, nil, nil},
	{"autowrite", "aw", boolOption,
		func(s *Settings) interface{} { return s.AutoWrite },
		func(s *Settings, v bool) { s.AutoWrite = v }, nil, nil},
	{"autoread", "ar", boolOption,
		func(s *Settings) interface{} { return s.AutoRead },
		func(s *Settings, v bool) { s.AutoRead = v }, nil, nil},
	{"shiftwidth", "sw", numberOption,
		func(s *Settings) interface{} { return s.ShiftWidth },
		nil, func(s *Settings, v int) { s.ShiftWidth = v }, nil},
	{"tabstop", "ts", numberOption,
		func(s *Settings) interface{} { return s.TabStop },
		nil, func(s *Settings, v int) { s.TabStop = v }, nil},
	{"softtabstop", "sts", numberOption,
		func(s *Settings) interface{} { return s.SoftTabStop },
		nil, func(s *Settings, v int) { s.SoftTabStop = v }, nil},
	{"scrolloff", "so", numberOption,
		func(s *Settings) interface{} { return s.ScrollOff },
		nil, func(s *Settings, v int) { s.ScrollOff = v }, nil},
	{"sidescrolloff", "siso", numberOption,
		func(s *Settings) interface{} { return s.SideScrollOff },
		nil, func(s *Settings, v int) { s.SideScrollOff = v }, nil},
	{"history", "hi", numberOption,
		func(s *Settings) interface{} { return s.History },
		nil, func(s *Settings, v int) { s.History = v }, nil},
	{"report", "report", numberOption,
		func(s *Settings) interface{} { return s.Report },
		nil, func(s *Settings, v int) { s.Report = v }, nil},
	{"laststatus", "ls", numberOption,
		func(s *Settings) interface{} { return s.LastStatus },
		nil, func(s *Settings, v int) { s.LastStatus = v }, nil},
	{"backspace", "bs", stringOption,
		func(s *Settings) interface{} { return s.Backspace },
		nil, nil, func(s *Settings, v string) { s.Backspace = v }},
}

func findOption(name string) (optionDef, bool) {
	for _, d := range optionDefs {
		if d.name == name || d.abbrev == name {
			return d, true
		}
	}
	return optionDef{}, false
}

// NonDefault returns "name=value"/"name"/"noname" strings for every
// option whose current value differs from the default, in catalog order
// — the `:set` with no arguments listing.
func (s *Settings) NonDefault() []string {
	def := DefaultSettings()
	var out []string
	for _, d := range optionDefs {
		cur, base := d.get(s), d.get(&def)
		if cur == base {
			continue
		}
		switch d.kind {
		case boolOption:
			if cur.(bool) {
				out = append(out, d.name)
			} else {
				out = append(out, "no"+d.name)
			}
		case numberOption:
			out = append(out, fmt.Sprintf("%s=%d", d.name, cur.(int)))
		case stringOption:
			out = append(out, fmt.Sprintf("%s=%s", d.name, cur.(string)))
		}
	}
	return out
}

// ApplySet parses and applies one `:set` argument, e.g. "number",
// "nonumber", "ignorecase!", "shiftwidth=4", or "sw?" (query, returns the
// current value as the message string).
func (s *Settings) ApplySet(arg string) (message string, err error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", nil
	}
	if strings.HasSuffix(arg, "?") {
		name := arg[:len(arg)-1]
		d, ok := findOption(name)
		if !ok {
			return "", fmt.Errorf("unknown option: %s", name)
		}
		return fmt.Sprintf("%s=%v", d.name, d.get(s)), nil
	}
	if strings.HasSuffix(arg, "!") {
		name := arg[:len(arg)-1]
		d, ok := findOption(name)
		if !ok || d.kind != boolOption {
			return "", fmt.Errorf("unknown option: %s", name)
		}
		d.setBool(s, !d.get(s).(bool))
		return "", nil
	}
	if eq := strings.IndexByte(arg, '='); eq >= 0 {
		name, val := arg[:eq], arg[eq+1:]
		d, ok := findOption(name)
		if !ok || d.kind == boolOption {
			return "", fmt.Errorf("unknown option: %s", name)
		}
		if d.kind == stringOption {
			d.setString(s, val)
			return "", nil
		}
		n, convErr := strconv.Atoi(val)
		if convErr != nil {
			return "", fmt.Errorf("invalid number for %s: %s", name, val)
		}
		d.setNumber(s, n)
		return "", nil
	}
	name := arg
	value := true
	if strings.HasPrefix(name, "no") {
		if d, ok := findOption(name[2:]); ok && d.kind == boolOption {
			d.setBool(s, false)
			return "", nil
		}
	}
	if strings.HasPrefix(name, "inv") {
		if d, ok := findOption(name[3:]); ok && d.kind == boolOption {
			d.setBool(s, !d.get(s).(bool))
			return "", nil
		}
	}
	d, ok := findOption(name)
	if !ok || d.kind != boolOption {
		return "", fmt.Errorf("unknown option: %s", name)
	}
	d.setBool(s, value)
	return "", nil
}
