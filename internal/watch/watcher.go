// Package watch observes a template tree for changes so the injector
// can be re-run on edited files.
package watch

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches every directory under a root for file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	onChange func(changedFiles []string)
	done     chan struct{}

	// Track changed files during debounce window
	pendingMu    sync.Mutex
	pendingFiles map[string]bool
}

// New creates a watcher over the tree rooted at root. The onChange
// callback receives the full paths that changed since the last batch.
func New(root string, onChange func(changedFiles []string)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// fsnotify is not recursive; register every directory up front.
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		w.Close()
		return nil, err
	}

	return &Watcher{
		watcher:      w,
		root:         root,
		onChange:     onChange,
		done:         make(chan struct{}),
		pendingFiles: make(map[string]bool),
	}, nil
}

// Start begins watching for changes
func (w *Watcher) Start() {
	go w.run()
}

// Stop stops the watcher
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

func (w *Watcher) run() {
	// Debounce timer - wait for rapid changes to settle
	var debounceTimer *time.Timer
	debounceDelay := 200 * time.Millisecond

	for {
		select {
		case <-w.done:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// New subdirectories join the watch set.
			if event.Op&fsnotify.Create != 0 {
				w.maybeWatchDir(event.Name)
			}

			// Only react to relevant events
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.pendingMu.Lock()
				w.pendingFiles[event.Name] = true
				w.pendingMu.Unlock()

				// Debounce: reset timer on each event
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					// Collect and clear pending files
					w.pendingMu.Lock()
					files := make([]string, 0, len(w.pendingFiles))
					for f := range w.pendingFiles {
						files = append(files, f)
					}
					w.pendingFiles = make(map[string]bool)
					w.pendingMu.Unlock()

					w.onChange(files)
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Template watcher error: %v", err)
		}
	}
}

func (w *Watcher) maybeWatchDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		log.Printf("Watching %s: %v", path, err)
	}
}
