package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and hands the new
// configuration to a callback.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(Config)
	stopCh   chan struct{}
	stopOnce sync.Once
	done     sync.WaitGroup
}

// NewWatcher watches the directory holding path, so editors that replace
// the file on save are still seen.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config watcher %s: %w", dir, err)
	}
	return &Watcher{
		path:    filepath.Clean(path),
		watcher: fw,
		stopCh:  make(chan struct{}),
	}, nil
}

// OnChange sets the callback for a successful reload. The callback is called
// from a background goroutine.
func (w *Watcher) OnChange(callback func(Config)) {
	w.onChange = callback
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	w.done.Add(1)
	go w.watchLoop()
}

// Stop stops the watcher and waits for the goroutine to exit. Later calls
// do nothing.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
		w.done.Wait()
	})
}

func (w *Watcher) watchLoop() {
	defer w.done.Done()
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config: watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		// Keep running with the previous settings.
		log.Printf("Config: reload failed: %v", err)
		return
	}
	log.Printf("Config: reloaded %s", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
