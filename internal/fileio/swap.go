package fileio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Swap is the editing-session swap file backing the 'swapfile' option:
// a sibling of the edited file holding the buffer's latest content so a
// crashed session leaves something recoverable behind. The name embeds a
// UUID so concurrent sessions on the same file never collide.
type Swap struct {
	path string
}

// NewSwap creates the swap file next to target (".target.<uuid>.swp")
// and returns a handle for updating and removing it. A target in an
// unwritable directory fails here, before any editing happens.
func NewSwap(target string) (*Swap, error) {
	dir := filepath.Dir(target)
	base := filepath.Base(target)
	path := filepath.Join(dir, fmt.Sprintf(".%s.%s.swp", base, uuid.NewString()))
	if err := os.WriteFile(path, nil, 0600); err != nil {
		return nil, fmt.Errorf("fileio: create swap for %s: %w", target, err)
	}
	return &Swap{path: path}, nil
}

// Path returns the swap file's location.
func (s *Swap) Path() string { return s.path }

// Update rewrites the swap file with the buffer's current content.
func (s *Swap) Update(content string) error {
	if err := os.WriteFile(s.path, []byte(content), 0600); err != nil {
		return fmt.Errorf("fileio: update swap %s: %w", s.path, err)
	}
	return nil
}

// Remove deletes the swap file; called on a clean exit.
func (s *Swap) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("fileio: remove swap %s: %w", s.path, err)
	}
	return nil
}

// HasSwap reports whether any swap file for target already exists,
// meaning another session may be editing it (or a previous one crashed).
func HasSwap(target string) bool {
	dir := filepath.Dir(target)
	base := filepath.Base(target)
	matches, err := filepath.Glob(filepath.Join(dir, "."+base+".*.swp"))
	return err == nil && len(matches) > 0
}
