package termio

import (
	"os"
	"strings"
	"testing"
)

func pipeReader(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return r, w
}

func TestConsolePipeIsNotTerminal(t *testing.T) {
	r, _ := pipeReader(t)
	c := NewConsole(r)
	if c.IsTerminal() {
		t.Fatal("IsTerminal on a pipe = true, want false")
	}
}

func TestEnterRawFailsOffTerminal(t *testing.T) {
	r, _ := pipeReader(t)
	c := NewConsole(r)
	err := c.EnterRaw()
	if err == nil {
		t.Fatal("EnterRaw on a pipe succeeded, want error")
	}
	if !strings.Contains(err.Error(), "termio: enter raw mode") {
		t.Errorf("EnterRaw error = %q, want the termio wrap prefix", err)
	}
}

func TestRestoreWithoutEnterRawIsNoop(t *testing.T) {
	r, _ := pipeReader(t)
	c := NewConsole(r)
	if err := c.Restore(); err != nil {
		t.Fatalf("Restore without EnterRaw returned %v, want nil", err)
	}
	// and again: Restore must stay idempotent
	if err := c.Restore(); err != nil {
		t.Fatalf("second Restore returned %v, want nil", err)
	}
}

func TestConsoleDecoderReadsItsInput(t *testing.T) {
	r, w := pipeReader(t)
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("write to pipe failed: %v", err)
	}
	dec := NewConsole(r).Decoder()
	k, err := dec.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if k.Rune != 'x' {
		t.Errorf("decoded %v, want x", k)
	}
}
