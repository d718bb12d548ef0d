package ui

import (
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
)

// monitorSize returns the pixel geometry of the first monitor.
// Used to solve "auto" grids before the window is realized.
func monitorSize() (width, height int, ok bool) {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return 0, 0, false
	}

	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return 0, 0, false
	}

	obj := monitors.Item(0)
	if obj == nil {
		return 0, 0, false
	}

	m := wrapMonitor(obj)
	geom := m.Geometry()
	return geom.Width(), geom.Height(), true
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor.
// gotk4 does not export a constructor for objects coming out of a
// gio.ListModel; gdk.Monitor embeds *coreglib.Object, so casting the
// same shape is safe.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
