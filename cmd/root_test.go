package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bmf-san/vigor/internal/keys"
)

func TestVersionCommandOutput(t *testing.T) {
	SetVersionGetter(func() (string, string) { return "1.2.3", "abcdef0" })
	t.Cleanup(func() { SetVersionGetter(func() (string, string) { return "", "" }) })

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "vigor 1.2.3") || !strings.Contains(got, "abcdef0") {
		t.Errorf("version output = %q", got)
	}
}

func TestVersionFallsBackToDev(t *testing.T) {
	SetVersionGetter(func() (string, string) { return "", "" })
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "vigor dev") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestParseKeySpec(t *testing.T) {
	tests := []struct {
		in   string
		want keys.Key
		ok   bool
	}{
		{"ESC", keys.Named(keys.Esc), true},
		{"enter", keys.Named(keys.Enter), true},
		{"ctrl+k", keys.CtrlKey('k'), true},
		{"alt+x", keys.AltKey('x'), true},
		{"j", keys.Char('j'), true},
		{"", keys.Key{}, false},
		{"toolong", keys.Key{}, false},
	}
	for _, tt := range tests {
		got, ok := parseKeySpec(tt.in)
		if ok != tt.ok {
			t.Errorf("parseKeySpec(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("parseKeySpec(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExpandLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		tabStop int
		list    bool
		want    string
	}{
		{"plain", "abc", 8, false, "abc"},
		{"tab expands", "a\tb", 8, false, "a       b"},
		{"list shows marker", "a\tb", 8, true, "a^Ib$"},
		{"empty with list", "", 8, true, "$"},
	}
	for _, tt := range tests {
		got := expandLine(tt.line, tt.tabStop, tt.list, 80)
		if got != tt.want {
			t.Errorf("%s: expandLine = %q, want %q", tt.name, got, tt.want)
		}
	}
}
