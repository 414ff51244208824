package project

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ideatui/idea-tui/internal/logging"
)

// watchDebounce coalesces bursts of filesystem events into one rescan.
const watchDebounce = 600 * time.Millisecond

// Watcher observes the base directory and its category subdirectories
// and emits a rescan signal when projects appear or disappear.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan struct{}
	done   chan struct{}
}

// NewWatcher starts watching baseDir and its first-level subdirectories.
func NewWatcher(baseDir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:    fsw,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	if err := fsw.Add(baseDir); err != nil {
		fsw.Close()
		return nil, err
	}
	if dirents, err := os.ReadDir(baseDir); err == nil {
		for _, dirent := range dirents {
			if !dirent.IsDir() || strings.HasPrefix(dirent.Name(), ".") {
				continue
			}
			// Best effort: an unwatchable category only loses live
			// updates, not manual rescans.
			_ = fsw.Add(filepath.Join(baseDir, dirent.Name()))
		}
	}
	go w.run()
	return w, nil
}

// Events signals that the directory tree changed and a rescan is due.
// The channel carries at most one pending signal.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Stop shuts the watcher down.
func (w *Watcher) Stop() {
	close(w.done)
	if w.fsw != nil {
		_ = w.fsw.Close()
	}
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(ev.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				fire = timer.C
			} else {
				// A tick may already be buffered when the timer fired
				// between selects; drain it or Reset fires immediately.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(watchDebounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Error(err)
		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.events <- struct{}{}:
			default:
			}
		}
	}
}
