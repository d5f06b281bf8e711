package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// memFileOps implements FileOps in memory for load/save tests.
type memFileOps struct {
	files map[string][]byte
}

func newMemFileOps() *memFileOps {
	return &memFileOps{files: make(map[string][]byte)}
}

func (m *memFileOps) ReadFile(name string) ([]byte, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *memFileOps) WriteFile(name string, data []byte, _ os.FileMode) error {
	m.files[name] = data
	return nil
}

func (m *memFileOps) Stat(name string) (os.FileInfo, error) {
	if _, ok := m.files[name]; !ok {
		return nil, os.ErrNotExist
	}
	return fakeInfo{name: filepath.Base(name)}, nil
}

func (m *memFileOps) MkdirAll(string, os.FileMode) error { return nil }

func (m *memFileOps) CreateTemp(dir, pattern string) (TempFile, error) {
	name := filepath.Join(dir, pattern+".mem")
	return &memTemp{ops: m, name: name}, nil
}

func (m *memFileOps) Remove(name string) error {
	delete(m.files, name)
	return nil
}

func (m *memFileOps) Rename(oldpath, newpath string) error {
	data, ok := m.files[oldpath]
	if !ok {
		return os.ErrNotExist
	}
	m.files[newpath] = data
	delete(m.files, oldpath)
	return nil
}

func (m *memFileOps) Chmod(string, os.FileMode) error { return nil }

type memTemp struct {
	ops  *memFileOps
	name string
	buf  bytes.Buffer
}

func (t *memTemp) Write(p []byte) (int, error) { return t.buf.Write(p) }
func (t *memTemp) Close() error {
	t.ops.files[t.name] = t.buf.Bytes()
	return nil
}
func (t *memTemp) Name() string { return t.name }

type fakeInfo struct{ name string }

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() os.FileMode  { return 0600 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() any           { return nil }

func TestDefaultsMatchEditorDefaults(t *testing.T) {
	t.Parallel()
	c := DefaultConfig()
	if !c.Options.Wrap {
		t.Error("wrap should default on")
	}
	if c.Options.TabStop != 8 || c.Options.ShiftWidth != 8 {
		t.Errorf("tabstop/shiftwidth = %d/%d, want 8/8", c.Options.TabStop, c.Options.ShiftWidth)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	t.Parallel()
	fs := newMemFileOps()
	cm := NewManagerWithPath("/home/u/.config/vigor/config.yaml")
	cm.GetConfig().Options.Number = true
	cm.GetConfig().Options.TabStop = 4

	if err := cm.SaveWithFileOps(fs); err != nil {
		t.Fatalf("save: %v", err)
	}

	cm2 := NewManagerWithPath("/home/u/.config/vigor/config.yaml")
	if err := cm2.LoadWithFileOps(fs); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cm2.Loaded() {
		t.Fatal("expected Loaded() after a successful read")
	}
	got := cm2.GetConfig()
	if !got.Options.Number || got.Options.TabStop != 4 {
		t.Errorf("round trip lost values: number=%v tabstop=%d", got.Options.Number, got.Options.TabStop)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	cm := NewManagerWithPath("/nowhere/config.yaml")
	if err := cm.LoadWithFileOps(newMemFileOps()); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cm.Loaded() {
		t.Error("Loaded() should be false when no file was found")
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	t.Parallel()
	fs := newMemFileOps()
	fs.files["/cfg/config.yaml"] = []byte("options: [not a map")
	cm := NewManagerWithPath("/cfg/config.yaml")
	if err := cm.LoadWithFileOps(fs); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cm := NewManagerWithPath("/cfg/config.yaml")
	cm.GetConfig().Options.TabStop = 0
	err := cm.SaveWithFileOps(newMemFileOps())
	if err == nil {
		t.Fatal("expected validation failure")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestValidateKeybindings(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		phys    string
		logical string
		wantErr bool
	}{
		{"single char", "j", "DOWN", false},
		{"named key", "ESC", "q", false},
		{"ctrl combo", "ctrl+k", "ESC", false},
		{"alt combo", "alt+x", "DELETE", false},
		{"empty replacement", "x", "", true},
		{"multi char physical", "abc", "x", true},
		{"dangling modifier", "ctrl+", "x", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := DefaultConfig()
			c.Keybindings.Remap = map[string]string{tt.phys: tt.logical}
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
