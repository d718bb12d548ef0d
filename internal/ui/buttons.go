package ui

import (
	"context"
	"time"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/wayleave/wayleave/internal/config"
	"github.com/wayleave/wayleave/internal/grid"
	"github.com/wayleave/wayleave/internal/layout"
	"github.com/wayleave/wayleave/internal/session"
)

// availabilityTimeout bounds the logind capability queries done while
// building the grid.
const availabilityTimeout = 500 * time.Millisecond

// buildGrid lays the buttons out into the configured grid.
func (a *App) buildGrid(ctx context.Context) *gtk.Grid {
	g := gtk.NewGrid()
	g.SetColumnSpacing(uint(a.cfg.Menu.ColumnSpacing))
	g.SetRowSpacing(uint(a.cfg.Menu.RowSpacing))
	g.SetVExpand(true)

	cols := a.columns()
	cells := grid.Arrange(len(a.layout.Buttons), cols)

	for i := range a.layout.Buttons {
		btn := &a.layout.Buttons[i]
		widget := a.buildButton(ctx, btn)

		// An aspect constraint wraps each button in an AspectFrame
		// instead of subclassing the layout manager.
		if ratio := a.cfg.Menu.AspectRatio; !ratio.IsZero() {
			frame := gtk.NewAspectFrame(0.5, 0.5, float32(ratio.Float()), false)
			frame.SetChild(widget)
			g.Attach(frame, cells[i].Col, cells[i].Row, 1, 1)
			continue
		}

		g.Attach(widget, cells[i].Col, cells[i].Row, 1, 1)
	}

	return g
}

// columns resolves the column count, solving for the best split when the
// layout is "auto".
func (a *App) columns() int {
	n := len(a.layout.Buttons)
	bl := a.cfg.Menu.ButtonsPerRow

	if !bl.Auto {
		return bl.Columns(n)
	}

	w, h, ok := monitorSize()
	if !ok {
		a.logger.Debug("no monitor geometry available, using default columns")
		return config.DefaultButtonLayout().Columns(n)
	}

	top, right, bottom, left := a.cfg.Margins()
	sol := grid.Solve(n,
		float64(w-left-right), float64(h-top-bottom),
		float64(a.cfg.Menu.ColumnSpacing), float64(a.cfg.Menu.RowSpacing),
		a.cfg.Menu.AspectRatio.Float(),
	)
	a.logger.Debug("solved auto grid", "rows", sol.Rows, "cols", sol.Cols)
	return sol.Cols
}

// buildButton constructs one action button.
func (a *App) buildButton(ctx context.Context, btn *layout.Button) gtk.Widgetter {
	button := gtk.NewButton()
	button.SetName(btn.Label)
	button.SetHExpand(true)
	button.SetVExpand(true)
	if cursor := gdk.NewCursorFromName("pointer", nil); cursor != nil {
		button.SetCursor(cursor)
	}
	if btn.Circular {
		button.AddCSSClass("circular")
	}

	overlay := gtk.NewOverlay()

	if a.cfg.Menu.ShowKeybinds && btn.Keybind != "" {
		badge := gtk.NewLabel("[" + btn.Keybind + "]")
		badge.SetHAlign(gtk.AlignStart)
		badge.SetVAlign(gtk.AlignStart)
		badge.AddCSSClass("dimmed")
		badge.AddCSSClass("keybind")
		overlay.AddOverlay(badge)
	}

	inner := gtk.NewBox(gtk.OrientationVertical, 0)
	inner.SetVAlign(gtk.AlignCenter)

	var picture *gtk.Picture
	if btn.Icon != "" {
		picture = gtk.NewPictureForFilename(btn.Icon)
		picture.SetContentFit(gtk.ContentFitScaleDown)
		picture.AddCSSClass("icon-dropshadow")
		inner.Append(picture)
	}

	label := gtk.NewLabel(btn.Text)
	label.SetUseMarkup(true)
	label.AddCSSClass("action-name")
	label.SetJustify(justification(btn.Justification()))

	// Layouts without an icon, or with explicit width/height, use the
	// old wlogout overlay placement for the text.
	if x, y, legacy := btn.LegacyAlignment(); legacy {
		label.SetXAlign(float32(x))
		label.SetYAlign(float32(y))
		overlay.AddOverlay(label)
	} else {
		inner.Append(label)
	}

	overlay.SetChild(inner)
	button.SetChild(overlay)

	a.markAvailability(ctx, btn, button)

	button.ConnectClicked(func() {
		a.selectButton(ctx, btn)
	})

	return button
}

// markAvailability disables buttons whose logind operation the system
// cannot perform.
func (a *App) markAvailability(ctx context.Context, btn *layout.Button, button *gtk.Button) {
	if a.logind == nil {
		return
	}
	op, ok := session.ParseAction(btn.Action)
	if !ok {
		return
	}

	queryCtx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()

	if !a.logind.Available(queryCtx, op) {
		a.logger.Info("disabling unavailable action", "label", btn.Label, "op", op)
		button.SetSensitive(false)
		button.AddCSSClass("unavailable")
	}
}

func justification(j string) gtk.Justification {
	switch j {
	case layout.JustifyFill:
		return gtk.JustifyFill
	case layout.JustifyLeft:
		return gtk.JustifyLeft
	case layout.JustifyRight:
		return gtk.JustifyRight
	default:
		return gtk.JustifyCenter
	}
}
