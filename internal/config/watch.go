package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is emitted by a Watcher each time the watched file changes.
// Err is set when the new contents could not be loaded; Config is then zero.
type Reload struct {
	Path   string
	Config FlappyConfig
	Err    error
}

// Watcher reloads a config file whenever it changes on disk.
// The directory is watched rather than the file so that editors which
// replace the file on save keep triggering events.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	Reloads  chan Reload
	closeCh  chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	watcher := &Watcher{
		watcher:  w,
		path:     abs,
		debounce: 100 * time.Millisecond,
		Reloads:  make(chan Reload, 4),
		closeCh:  make(chan struct{}),
	}
	watcher.wg.Add(1)
	go watcher.run()
	return watcher, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and closes the Reloads channel.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.Reloads)
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	// Editors often write a file in several steps; load once things settle.
	settle := time.NewTimer(time.Hour)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			settle.Reset(w.debounce)
		case <-settle.C:
			cfg, err := LoadFile(w.path)
			w.emit(Reload{Path: w.path, Config: cfg, Err: err})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.emit(Reload{Path: w.path, Err: err})
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) emit(r Reload) {
	select {
	case w.Reloads <- r:
	case <-w.closeCh:
	}
}
