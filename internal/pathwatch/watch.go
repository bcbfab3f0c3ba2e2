// Package pathwatch provides file system change notifications.
package pathwatch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// A Watcher keeps track of a set of paths and sends notifications on
// user-provided channels whenever the file at one of them changes in any
// way, including being created, replaced, or deleted. The specific nature
// of the change is not reported; it is up to the user to determine what
// happened.
//
// The watcher observes the parent directory of each path, so it also sees
// editors that save by writing a temporary file and renaming it over the
// original.
//
// Any errors that the Watcher encounters while monitoring the paths are
// delivered on the channel returned by Errors.
type Watcher struct {
	fsw     *fsnotify.Watcher
	files   map[string][]chan<- struct{}
	dirs    map[string]int
	errors  chan error
	control chan func()
}

// NewWatcher starts a new watcher.
// When no longer in use, the user should call Close to release resources
// associated with it.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:     fsw,
		files:   map[string][]chan<- struct{}{},
		dirs:    map[string]int{},
		errors:  make(chan error, 10),
		control: make(chan func(), 10),
	}
	go w.run()
	return w, nil
}

// Normally we don't want a notification when we add a file, since it's redundant,
// but for testing we need it in order to be able to reliably detect modifications without
// races.
var notifyOnAdd = false

// Add begins sending change notifications for a path on the given channel.
// Multiple calls to Add for the same path, but different channels, are permitted;
// in that case, the notifications will be sent on all of them.
func (w *Watcher) Add(path string, ch chan<- struct{}) {
	w.control <- func() {
		path = filepath.Clean(path)
		dir := filepath.Dir(path)
		if w.dirs[dir] == 0 {
			if err := w.fsw.Add(dir); err != nil {
				w.reportError(err)
			}
		}
		w.dirs[dir]++
		w.files[path] = append(w.files[path], ch)
		if notifyOnAdd {
			ch <- struct{}{}
		}
	}
}

// Remove stops sending change notifications for a path on the given channel.
// It does not cancel other calls to Add made for the same path, but different
// channels.
func (w *Watcher) Remove(path string, ch chan<- struct{}) {
	w.control <- func() {
		path = filepath.Clean(path)
		obs, ok := w.files[path]
		if !ok {
			return
		}
		for i, ob := range obs {
			if ob != ch {
				continue
			}
			if len(obs) == 1 {
				delete(w.files, path)
			} else {
				n := len(obs) - 1
				obs[i] = obs[n]
				w.files[path] = obs[:n]
			}
			dir := filepath.Dir(path)
			if w.dirs[dir]--; w.dirs[dir] == 0 {
				delete(w.dirs, dir)
				w.fsw.Remove(dir)
			}
			return
		}
	}
}

// Errors returns a channel on which the Watcher delivers errors it encounters.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops delivering change notifications for any paths and releases all resources
// associated with the watcher.
func (w *Watcher) Close() { w.control <- nil }

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			for _, ob := range w.files[filepath.Clean(ev.Name)] {
				select {
				case ob <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.fsw.Errors:
			if ok {
				w.reportError(err)
			}
		case f := <-w.control:
			if f == nil {
				w.fsw.Close()
				return
			}
			f()
		}
	}
}

func (w *Watcher) reportError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
