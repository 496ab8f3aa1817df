package display

import (
	"errors"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/toast"
)

// ErrNotLaidOut is returned when a window is created for a view that has no
// frame yet.
var ErrNotLaidOut = errors.New("toast view has not been laid out")

// CloseReason says why a toast window closed.
type CloseReason int

const (
	CloseReasonExpired CloseReason = iota + 1
	CloseReasonDismissed
	CloseReasonClosed
)

func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Window is the toast's layer-shell window. All methods must be called on the
// GTK main thread.
type Window struct {
	window *gtk.Window
	view   *toast.View
	logger *slog.Logger

	box   *gtk.Box
	label *gtk.Label
	image *gtk.Image

	mu      sync.Mutex
	timer   *time.Timer
	closed  bool
	onClose func(reason CloseReason)
}

// NewWindow creates a window for a laid-out view.
func NewWindow(app *gtk.Application, view *toast.View, logger *slog.Logger) (*Window, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, ok := view.Frame(); !ok {
		return nil, ErrNotLaidOut
	}

	w := &Window{
		view:   view,
		logger: logger,
	}

	w.window = gtk.NewWindow()
	w.window.SetApplication(app)
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.AddCSSClass("toast-window")

	layershell.InitForWindow(w.window)
	layershell.SetLayer(w.window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(w.window, 0)
	layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w.window, "toastui")

	w.buildUI()
	w.connectSignals()
	w.Update()

	return w, nil
}

// buildUI constructs the image and label inside the toast box.
func (w *Window) buildUI() {
	w.box = gtk.NewBox(gtk.OrientationHorizontal, 0)
	w.box.AddCSSClass("toast")

	w.image = gtk.NewImage()
	w.image.AddCSSClass("toast-image")
	w.image.SetPixelSize(toast.ImageSize)
	w.image.SetVAlign(gtk.AlignCenter)
	w.box.Append(w.image)

	w.label = gtk.NewLabel("")
	w.label.AddCSSClass("toast-label")
	w.label.SetXAlign(0)
	w.label.SetWrap(true)
	w.label.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
	w.label.SetVAlign(gtk.AlignCenter)
	w.box.Append(w.label)

	w.window.SetChild(w.box)
}

// Update applies the view's content, style classes and current frame. Call
// it after re-running the view's layout.
func (w *Window) Update() {
	frame, ok := w.view.Frame()
	if !ok {
		return
	}
	content := w.view.Content

	if content.HasImage() {
		if _, err := os.Stat(content.Image.Name); err == nil {
			w.image.SetFromFile(content.Image.Name)
		} else {
			w.image.SetFromIconName(content.Image.Name)
		}
		w.image.SetVisible(true)
		w.box.AddCSSClass("has-image")
	} else {
		w.image.SetVisible(false)
		w.box.RemoveCSSClass("has-image")
	}

	if content.Text.IsEmpty() {
		w.label.SetVisible(false)
	} else {
		w.label.SetMarkup(content.Text.Markup())
		w.label.SetVisible(true)
	}

	if w.view.Style.HasShadow() {
		w.box.AddCSSClass("has-shadow")
	} else {
		w.box.RemoveCSSClass("has-shadow")
	}

	w.place(frame)
}

// place sizes the widgets to the frame and anchors the window so its bottom
// edge sits BottomOffset above the container's bottom.
func (w *Window) place(p toast.PlacedFrame) {
	w.box.SetSizeRequest(pixels(p.Frame.Width), pixels(p.Frame.Height))
	w.label.SetSizeRequest(pixels(p.Text.Width), -1)
	w.window.SetDefaultSize(pixels(p.Frame.Width), pixels(p.Frame.Height))

	left, bottom := margins(p)

	layershell.SetAnchor(w.window, layershell.LayerShellEdgeTop, false)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeRight, false)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeBottom, true)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeLeft, true)
	layershell.SetMargin(w.window, layershell.LayerShellEdgeBottom, bottom)
	layershell.SetMargin(w.window, layershell.LayerShellEdgeLeft, left)

	w.logger.Debug("placed toast", "id", w.view.ID, "left", left, "bottom", bottom,
		"width", p.Frame.Width, "height", p.Frame.Height)
}

// margins converts a frame into layer-shell margins from the bottom-left
// corner. Layer-shell cannot place a window off-screen, so negative margins
// clamp to zero.
func margins(p toast.PlacedFrame) (left, bottom int) {
	left = max(int(math.Round(p.Frame.X)), 0)
	bottom = max(int(math.Round(p.Effective.Height-p.Frame.MaxY())), 0)
	return left, bottom
}

func pixels(v float64) int {
	return max(int(math.Ceil(v)), 0)
}

// connectSignals dismisses the toast when a click lands inside its frame.
func (w *Window) connectSignals() {
	click := gtk.NewGestureClick()
	click.SetButton(0)
	click.ConnectReleased(func(nPress int, x, y float64) {
		frame, _ := w.view.Frame()
		p := geom.Point{X: frame.Frame.X + x, Y: frame.Frame.Y + y}
		if w.view.HitTest(p) != nil {
			w.Close(CloseReasonDismissed)
		}
	})
	w.window.AddController(click)
}

// Show presents the window on monitor and closes it after the style's
// duration. A zero duration keeps it open until dismissed.
func (w *Window) Show(monitor *gdk.Monitor) {
	setMonitor(w.window, monitor)
	w.window.Present()

	if d := w.view.Style.Duration; d > 0 {
		w.mu.Lock()
		w.timer = time.AfterFunc(d, func() {
			glib.IdleAdd(func() {
				w.Close(CloseReasonExpired)
			})
		})
		w.mu.Unlock()
	}
}

// Close closes the window once and reports the reason.
func (w *Window) Close(reason CloseReason) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	cb := w.onClose
	w.mu.Unlock()

	w.window.Close()
	w.logger.Debug("toast closed", "id", w.view.ID, "reason", reason.String())
	if cb != nil {
		cb(reason)
	}
}

// OnClose sets the callback for when the window closes.
func (w *Window) OnClose(cb func(reason CloseReason)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClose = cb
}
