//go:build !windows

package termio

import (
	"os"
	"testing"
)

// InputPending drives the lone-Esc decision, so it has to flip from
// false to true the moment a byte lands and back once it is drained.
func TestInputPendingTracksPipeContent(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	c := NewConsole(r)

	ready, err := c.InputPending()
	if err != nil {
		t.Fatalf("InputPending before write: %v", err)
	}
	if ready {
		t.Fatal("InputPending before write = true, want false")
	}

	if _, err := w.Write([]byte{0x1b}); err != nil {
		t.Fatalf("write to pipe failed: %v", err)
	}
	ready, err = c.InputPending()
	if err != nil {
		t.Fatalf("InputPending after write: %v", err)
	}
	if !ready {
		t.Fatal("InputPending after write = false, want true")
	}

	var buf [1]byte
	if _, err := r.Read(buf[:]); err != nil {
		t.Fatalf("read from pipe failed: %v", err)
	}
	ready, err = c.InputPending()
	if err != nil {
		t.Fatalf("InputPending after drain: %v", err)
	}
	if ready {
		t.Fatal("InputPending after drain = true, want false")
	}
}
