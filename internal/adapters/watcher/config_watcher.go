package watcher

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/bale/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultDebounceWindow is the default time window for coalescing balefile
// events.
const DefaultDebounceWindow = 250 * time.Millisecond

// ConfigWatcher warns when the balefile changes underneath a live watch
// session. The session deliberately keeps the effective configuration it
// was started with; the warning tells the user a restart is needed to pick
// the edit up.
type ConfigWatcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	logger    ports.Logger
	debounce  *Debouncer
	done      chan struct{}
}

// NewConfigWatcher creates a watcher for the given balefile path.
func NewConfigWatcher(path string, logger ports.Logger) (*ConfigWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}

	// Watch the directory, not the file: editors replace files on save,
	// which would silently drop a direct file watch.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		_ = fsWatcher.Close()
		return nil, zerr.Wrap(err, "failed to watch config directory")
	}

	w := &ConfigWatcher{
		fsWatcher: fsWatcher,
		path:      path,
		logger:    logger,
		done:      make(chan struct{}),
	}
	w.debounce = NewDebouncer(DefaultDebounceWindow, w.notify)

	go w.processEvents()

	return w, nil
}

// Close stops the watcher and releases its resources.
func (w *ConfigWatcher) Close() error {
	w.debounce.Stop()
	err := w.fsWatcher.Close()
	<-w.done
	return err
}

func (w *ConfigWatcher) processEvents() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.debounce.Trigger()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(zerr.Wrap(err, "config watcher error"))
		}
	}
}

func (w *ConfigWatcher) notify() {
	w.logger.Warn(filepath.Base(w.path) + " changed; the running session keeps its original configuration until restarted")
}
