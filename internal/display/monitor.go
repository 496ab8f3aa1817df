package display

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toastui/internal/geom"
)

// Monitor returns the monitor to show the toast on. n is 1-indexed; 0 or an
// unavailable index selects the first monitor. Returns nil when there is no
// display.
func Monitor(display *gdk.Display, n int, logger *slog.Logger) *gdk.Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		return nil
	}

	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		logger.Warn("no monitors available")
		return nil
	}

	index := uint(0)
	if n > 0 {
		index = uint(n - 1)
	}
	if index >= monitors.NItems() {
		logger.Warn("configured monitor not available, using first",
			"configured", n,
			"available", monitors.NItems(),
		)
		index = 0
	}

	return wrapMonitor(monitors.Item(index))
}

// MonitorSize returns the monitor's logical size, the container the toast is
// laid out in.
func MonitorSize(monitor *gdk.Monitor) geom.Size {
	if monitor == nil {
		return geom.Size{}
	}
	rect := monitor.Geometry()
	return geom.Size{Width: float64(rect.Width()), Height: float64(rect.Height())}
}

// wrapMonitor wraps a glib.Object from the monitors list as a gdk.Monitor.
// gotk4 does not export its own wrapper for list items.
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

// setMonitor pins a layer-shell window to monitor. A nil monitor leaves the
// choice to the compositor.
func setMonitor(window *gtk.Window, monitor *gdk.Monitor) {
	if monitor == nil {
		return
	}
	layershell.SetMonitor(window, monitor)
}
