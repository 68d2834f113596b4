// ABOUTME: Reload-on-change file watcher
// ABOUTME: Watches the loaded file's directory with fsnotify and debounces change bursts
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the several events editors emit per save
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a single file
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	onChange func(path string)

	mu    sync.Mutex
	path  string
	dir   string
	timer *time.Timer

	done chan struct{}
	wg   sync.WaitGroup
}

// New starts a watcher calling onChange after path changes. The directory
// is watched so files replaced by rename are still seen.
func New(path string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fs:       fw,
		debounce: debounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	if path != "" {
		if err := w.Set(path); err != nil {
			fw.Close()
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Set switches the watched file
func (w *Watcher) Set(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if abs == w.path {
		return nil
	}

	if dir != w.dir {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		if w.dir != "" {
			_ = w.fs.Remove(w.dir)
		}
		w.dir = dir
	}
	w.path = abs

	zap.S().Infof("Watching %s for changes", abs)
	return nil
}

// Path returns the watched file
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.schedule(filepath.Clean(event.Name))

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			zap.S().Warnf("Watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

// schedule (re)arms the debounce timer for changes to the watched file
func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if name != w.path {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	path := w.path
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		zap.S().Infof("File changed: %s", path)
		if w.onChange != nil {
			w.onChange(path)
		}
	})
}

// Close stops watching
func (w *Watcher) Close() error {
	w.mu.Lock()
	select {
	case <-w.done:
		w.mu.Unlock()
		return nil
	default:
	}
	close(w.done)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fs.Close()
	w.wg.Wait()
	return err
}
