//go:build windows

package termio

import "testing"

func TestReadReadyStubNeverReportsPending(t *testing.T) {
	ready, err := readReady(0)
	if err != nil {
		t.Fatalf("readReady returned error: %v", err)
	}
	if ready {
		t.Fatal("readReady = true, want false on Windows")
	}
}
