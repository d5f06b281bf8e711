//go:build windows

package termio

// readReady always reports false on Windows: the console API has no
// cheap poll equivalent, so a bare Esc byte is always taken as the
// Escape key. Arrow keys and friends still work because the Windows
// terminal delivers their whole sequence in one read, ahead of the
// decoder's next byte.
func readReady(uintptr) (bool, error) {
	return false, nil
}
