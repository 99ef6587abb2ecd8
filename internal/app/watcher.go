package app

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// SceneWatcher polls a scene file and calls back when it is rewritten, so an
// open viewer follows edits to the file.
type SceneWatcher struct {
	mu            sync.Mutex
	path          string
	baseline      time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	onChange      func(path string)
}

// NewSceneWatcher creates a watcher for path. It returns nil if the file
// cannot be found.
func NewSceneWatcher(path string, checkInterval time.Duration) *SceneWatcher {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return &SceneWatcher{
		path:          path,
		baseline:      info.ModTime(),
		checkInterval: checkInterval,
	}
}

// OnChange sets the callback. It runs on the watcher goroutine.
func (w *SceneWatcher) OnChange(callback func(path string)) {
	w.mu.Lock()
	w.onChange = callback
	w.mu.Unlock()
}

// Start begins polling in a background goroutine. It does nothing if the
// watcher is already running.
func (w *SceneWatcher) Start() {
	w.mu.Lock()
	if w.stopCh != nil {
		w.mu.Unlock()
		return
	}
	w.stopCh = make(chan struct{})
	stop := w.stopCh
	w.mu.Unlock()
	go w.watchLoop(stop)
}

// Stop ends polling.
func (w *SceneWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopCh != nil {
		close(w.stopCh)
		w.stopCh = nil
	}
}

// Path returns the watched file.
func (w *SceneWatcher) Path() string {
	return w.path
}

func (w *SceneWatcher) watchLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !w.checkForUpdate() {
				continue
			}
			w.mu.Lock()
			cb := w.onChange
			w.mu.Unlock()
			slog.Debug("scene file changed", "path", w.path)
			if cb != nil {
				cb(w.path)
			}
		}
	}
}

// checkForUpdate reports whether the file changed since the last check and
// moves the baseline forward if it did.
func (w *SceneWatcher) checkForUpdate() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !info.ModTime().After(w.baseline) {
		return false
	}
	w.baseline = info.ModTime()
	return true
}
