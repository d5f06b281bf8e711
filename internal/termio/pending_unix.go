//go:build !windows

package termio

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// readReady polls fd with a zero timeout and reports whether a read
// would return immediately. This is what lets the decoder treat a bare
// Esc byte as the Escape key the instant it arrives, instead of stalling
// the editor waiting for sequence bytes that are never coming.
func readReady(fd uintptr) (bool, error) {
	pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(pollFds, 0)
	if err != nil {
		return false, fmt.Errorf("termio: poll input: %w", err)
	}
	return n > 0 && pollFds[0].Revents&unix.POLLIN != 0, nil
}
