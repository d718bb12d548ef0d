package ui

import (
	"context"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/wayleave/wayleave/internal/config"
)

// buildWindow constructs the menu window for the configured protocol.
func (a *App) buildWindow(ctx context.Context) {
	a.window = gtk.NewWindow()
	a.window.SetApplication(&a.app.Application)
	a.window.SetTitle("wayleave")
	a.window.SetDecorated(false)

	switch config.Protocol(a.cfg.Menu.Protocol) {
	case config.ProtocolLayerShell:
		a.initLayerShell()
	default:
		a.window.Fullscreen()
	}

	top, right, bottom, left := a.cfg.Margins()

	container := gtk.NewBox(gtk.OrientationVertical, 0)
	container.SetMarginTop(top)
	container.SetMarginBottom(bottom)
	container.SetMarginStart(left)
	container.SetMarginEnd(right)

	container.Append(a.buildGrid(ctx))

	if !a.cfg.Menu.NoVersionInfo {
		container.Append(a.buildVersionFooter())
	}

	a.window.SetChild(container)

	a.connectSignals(ctx)
}

// initLayerShell puts the window on the overlay layer covering the whole
// output, with exclusive keyboard focus.
func (a *App) initLayerShell() {
	if !layershell.IsSupported() {
		a.logger.Warn("layer-shell not supported by compositor, falling back to fullscreen")
		a.window.Fullscreen()
		return
	}

	layershell.InitForWindow(a.window)
	layershell.SetLayer(a.window, layershell.LayerShellLayerOverlay)
	layershell.SetNamespace(a.window, "wayleave")
	layershell.SetExclusiveZone(a.window, -1)
	layershell.SetKeyboardMode(a.window, layershell.LayerShellKeyboardModeExclusive)

	layershell.SetAnchor(a.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(a.window, layershell.LayerShellEdgeBottom, true)
	layershell.SetAnchor(a.window, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(a.window, layershell.LayerShellEdgeRight, true)
}

// connectSignals wires keyboard and mouse dismissal.
func (a *App) connectSignals(ctx context.Context) {
	keyCtrl := gtk.NewEventControllerKey()
	keyCtrl.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		a.handleKey(ctx, keyval)
		return false
	})
	a.window.AddController(keyCtrl)

	// A primary click that no button claimed dismisses the menu.
	clickAway := gtk.NewGestureClick()
	clickAway.SetButton(gdk.BUTTON_PRIMARY)
	clickAway.SetPropagationPhase(gtk.PhaseBubble)
	clickAway.ConnectReleased(func(nPress int, x, y float64) {
		a.dismiss()
	})
	a.window.AddController(clickAway)

	if a.cfg.Menu.CloseOnLostFocus {
		a.window.NotifyProperty("is-active", func() {
			if a.window.IsVisible() && !a.window.IsActive() {
				a.dismiss()
			}
		})
	}
}

// handleKey dispatches Escape and button mnemonics.
func (a *App) handleKey(ctx context.Context, keyval uint) {
	if keyval == gdk.KEY_Escape {
		a.dismiss()
		return
	}

	name := keyName(keyval)
	if name == "" {
		return
	}

	if btn, ok := a.layout.ByKeybind(name); ok {
		a.selectButton(ctx, btn)
	}
}

// keyName maps a keyval to the string layout keybinds are written in:
// the unicode character if printable, the GDK key name otherwise.
func keyName(keyval uint) string {
	if r := gdk.KeyvalToUnicode(uint32(keyval)); r != 0 {
		return string(rune(r))
	}
	return gdk.KeyvalName(uint32(keyval))
}

// buildVersionFooter builds the dimmed version label under the grid.
func (a *App) buildVersionFooter() *gtk.Label {
	label := gtk.NewLabel("wayleave " + a.version)
	label.SetCanFocus(false)
	label.AddCSSClass("dimmed")
	label.AddCSSClass("version-info")
	label.SetMarginTop(12)
	return label
}
