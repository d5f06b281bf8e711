package fileio

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the edited file for external modification and delivers
// each change on Changed. Neither the editor nor the terminal front-end
// starts one, so the 'autoread' option does not reload the buffer.
type Watcher struct {
	fsw     *fsnotify.Watcher
	path    string
	Changed chan string
	done    chan struct{}
}

// Watch begins watching path's directory (watching the directory rather
// than the file itself survives the rename step of an atomic save, which
// replaces the inode a file-level watch would be pinned to).
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fileio: watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("fileio: watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("fileio: watch %s: %w", path, err)
	}
	w := &Watcher{
		fsw:     fsw,
		path:    abs,
		Changed: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Coalesce: a pending notification not yet consumed means
			// the reader will already see the newest content.
			select {
			case w.Changed <- w.path:
			default:
			}
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher and releases its OS resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
