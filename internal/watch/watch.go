// Package watch monitors a project description file for changes and
// emits debounced reload signals. The watch is placed on the parent
// directory rather than the file itself: editors and Xcode replace the
// file atomically, which silently drops a watch held on the old inode.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the coalescing window applied when none is
// configured.
const DefaultDebounce = 250 * time.Millisecond

// Reload is one debounced change notification for the watched file.
type Reload struct {
	Path string
	At   time.Time
}

// Watcher monitors one project file using fsnotify.
type Watcher struct {
	Path    string
	Reloads <-chan Reload // Read-only external channel

	reloads  chan Reload // Internal write channel
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a watcher for the given project file. A
// non-positive debounce falls back to DefaultDebounce.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	ch := make(chan Reload, 16)
	w := &Watcher{
		Path:     path,
		Reloads:  ch,
		reloads:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: debounce,
	}
	return w, nil
}

// Start begins watching the file's parent directory for changes.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.Path, err)
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: a burst of events collapses into one reload once the
	// window has passed without further activity.
	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				// Drain pending on close.
				if !pending.IsZero() {
					w.reloads <- Reload{Path: w.Path, At: time.Now()}
				}
				return
			}

			if !w.isTarget(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case now, ok := <-ticker.C:
			if !ok {
				return
			}
			if !pending.IsZero() && now.Sub(pending) >= w.debounce {
				w.reloads <- Reload{Path: w.Path, At: now}
				pending = time.Time{}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

// isTarget reports whether an event refers to the watched file.
func (w *Watcher) isTarget(name string) bool {
	return filepath.Base(name) == filepath.Base(w.Path)
}
