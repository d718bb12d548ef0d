package theme

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/wayleave/wayleave/internal/layout"
)

// Loader resolves the menu stylesheet and applies it to the display,
// optionally hot-reloading it while the menu is open.
type Loader struct {
	mu       sync.Mutex
	logger   *slog.Logger
	provider *gtk.CSSProvider
	path     string // Empty when the embedded default is active
	watcher  *Watcher
}

// NewLoader creates a new stylesheet loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
	}
}

// Load resolves and loads the stylesheet. An explicit path must exist;
// otherwise style.css is searched for in the standard locations, and the
// bundled default is used when nothing is found.
func (l *Loader) Load(explicit string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	path, err := layout.FindStylesheet(explicit)
	switch {
	case err == nil:
		// GTK resolves @import statements relative to the file.
		l.provider.LoadFromPath(path)
		l.path = path
		l.logger.Info("loaded stylesheet", "path", path)
		return nil

	case explicit == "" && errors.Is(err, layout.ErrNotFound):
		l.provider.LoadFromString(DefaultStylesheet())
		l.path = ""
		l.logger.Info("no stylesheet found, using bundled default")
		return nil

	default:
		return err
	}
}

// Apply attaches the loaded stylesheet to a display.
func (l *Loader) Apply(display *gdk.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply stylesheet")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	l.logger.Debug("applied stylesheet", "path", l.path)
}

// Path returns the active stylesheet path, empty for the bundled default.
func (l *Loader) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// StartHotReload re-applies the stylesheet when it changes on disk.
// The bundled default is never watched.
func (l *Loader) StartHotReload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" {
		l.logger.Debug("not watching bundled stylesheet")
		return
	}

	if l.watcher != nil {
		_ = l.watcher.Stop()
	}

	watcher, err := NewWatcher(l.path, l.logger)
	if err != nil {
		l.logger.Warn("failed to create stylesheet watcher", "error", err)
		return
	}
	watcher.SetChangeCallback(func(path string) {
		// CSS providers belong to the GTK main loop.
		glib.IdleAdd(func() {
			l.mu.Lock()
			l.provider.LoadFromPath(path)
			l.mu.Unlock()
			l.logger.Info("hot-reloaded stylesheet", "path", path)
		})
	})

	if err := watcher.Start(ctx); err != nil {
		l.logger.Warn("failed to start stylesheet watcher", "error", err)
		return
	}
	l.watcher = watcher
}

// StopHotReload stops watching the stylesheet.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		_ = l.watcher.Stop()
		l.watcher = nil
	}
}
