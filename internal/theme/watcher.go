package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a stylesheet file and reports writes to it.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	filePath string

	mu       sync.Mutex
	onChange func(path string)
	running  bool
	done     chan struct{}
}

// NewWatcher creates a watcher for the given stylesheet path.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		logger:   logger,
		filePath: path,
		done:     make(chan struct{}),
	}, nil
}

// SetChangeCallback sets the callback invoked when the file changes.
func (w *Watcher) SetChangeCallback(cb func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = cb
}

// Start begins watching. The containing directory is watched rather than
// the file itself so editors that replace the file are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.filePath)); err != nil {
		return err
	}

	go w.watch(ctx)
	return nil
}

func (w *Watcher) watch(ctx context.Context) {
	filename := filepath.Base(w.filePath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("stylesheet changed", "path", w.filePath)
				w.mu.Lock()
				cb := w.onChange
				w.mu.Unlock()
				if cb != nil {
					cb(w.filePath)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("stylesheet watcher error", "error", err)

		case <-ctx.Done():
			return
		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.done)
	return w.watcher.Close()
}
