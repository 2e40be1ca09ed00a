package watch

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a fixed set of files. Directories are watched
// rather than the files themselves so that editors which save by renaming a
// temporary file over the original are still noticed.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changes chan string
	done    chan struct{}
}

// New starts watching paths.
func New(paths ...string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		watcher: fw,
		files:   make(map[string]bool),
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			// Coalesce: one pending notification is enough.
			select {
			case w.changes <- name:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// Changes delivers the path of a changed file. Bursts of events collapse
// into a single pending notification.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Poll reports whether a change is pending without blocking.
func (w *Watcher) Poll() (string, bool) {
	select {
	case name := <-w.changes:
		return name, true
	default:
		return "", false
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
