// Package ui renders the session menu as a GTK4 overlay window.
// Positioning goes through Wayland layer-shell when available, with a
// plain fullscreen toplevel as the fallback; the toolkit owns all
// protocol negotiation and rendering.
package ui

import (
	"context"
	"log/slog"
	"os"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/wayleave/wayleave/internal/action"
	"github.com/wayleave/wayleave/internal/audio"
	"github.com/wayleave/wayleave/internal/config"
	"github.com/wayleave/wayleave/internal/layout"
	"github.com/wayleave/wayleave/internal/session"
	"github.com/wayleave/wayleave/internal/theme"
)

const appID = "io.github.wayleave.wayleave"

// App drives the GTK application for one menu invocation.
type App struct {
	cfg    *config.Config
	layout *layout.Layout
	runner *action.Runner
	logind *session.Client
	player *audio.Player
	themes *theme.Loader
	logger *slog.Logger

	version string

	app    *adw.Application
	window *gtk.Window

	// Set once an action is chosen; guarantees a single command per run.
	selected bool
}

// Options carries the collaborators the menu needs.
type Options struct {
	Config  *config.Config
	Layout  *layout.Layout
	Runner  *action.Runner
	Logind  *session.Client // Optional; buttons stay enabled without it
	Player  *audio.Player   // Optional feedback sound
	Logger  *slog.Logger
	Version string
}

// New creates the menu application.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfg:     opts.Config,
		layout:  opts.Layout,
		runner:  opts.Runner,
		logind:  opts.Logind,
		player:  opts.Player,
		themes:  theme.NewLoader(logger),
		logger:  logger,
		version: opts.Version,
	}
}

// Run presents the menu and blocks until it closes. The returned status
// is the GTK application exit code.
func (a *App) Run(ctx context.Context) int {
	a.app = adw.NewApplication(appID, 0)

	a.app.ConnectStartup(func() {
		if err := a.themes.Load(a.cfg.Theme.CSS); err != nil {
			a.logger.Error("failed to load stylesheet", "error", err)
		}
		a.themes.Apply(nil)
		if a.cfg.Theme.HotReload {
			a.themes.StartHotReload(ctx)
		}
	})

	a.app.ConnectActivate(func() {
		a.buildWindow(ctx)
		a.window.Present()
	})

	a.app.ConnectShutdown(func() {
		a.themes.StopHotReload()
	})

	// The menu owns the process arguments; GTK must not reparse them.
	status := a.app.Run(os.Args[:1])

	return status
}

// selectButton runs the chosen action: hide the window, wait out the
// configured delay on the main loop, spawn the command, then quit.
func (a *App) selectButton(ctx context.Context, btn *layout.Button) {
	if a.selected {
		return
	}
	a.selected = true

	a.logger.Info("action selected", "label", btn.Label, "action", btn.Action)

	if a.player != nil && a.cfg.Audio.Enabled {
		go func() { _ = a.player.Play(a.cfg.Audio.File) }()
	}

	actionStr := btn.Action
	delayMS := a.cfg.Menu.Delay.Milliseconds()

	a.window.ConnectHide(func() {
		glib.TimeoutAdd(uint(delayMS), func() bool {
			if err := a.runner.Run(ctx, actionStr); err != nil {
				a.logger.Error("action failed", "action", actionStr, "error", err)
			}
			a.window.Close()
			return false
		})
	})

	a.window.SetVisible(false)
}

// dismiss closes the menu without running anything.
func (a *App) dismiss() {
	if a.selected {
		return
	}
	a.logger.Debug("menu dismissed")
	a.window.Close()
}
