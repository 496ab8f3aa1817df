package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Loader owns the GTK CSS provider for the toast window. The provider holds
// the style CSS followed by the theme CSS, and is rebuilt whenever either
// changes.
type Loader struct {
	mu        sync.Mutex
	logger    *slog.Logger
	provider  *gtk.CSSProvider
	themesDir string
	theme     *Theme
	themeCSS  string
	styleCSS  string
	watcher   *Watcher
}

// NewLoader creates a loader for the given style. Must be called on the GTK
// main thread.
func NewLoader(style toast.Style, insets geom.Insets, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	themesDir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		themesDir = ""
	}

	return &Loader{
		logger:    logger,
		provider:  gtk.NewCSSProvider(),
		themesDir: themesDir,
		styleCSS:  StyleCSS(style, insets),
	}
}

// LoadTheme resolves a theme by name (user themes first, then bundled) and
// loads it. Unknown names fall back to the default theme.
func (l *Loader) LoadTheme(name string) {
	t, err := Resolve(name, l.themesDir)
	if err != nil {
		l.logger.Warn("theme not found, using default", "theme", name, "error", err)
	}

	l.mu.Lock()
	l.theme = t
	l.themeCSS = t.CSS
	l.mu.Unlock()

	l.logger.Debug("loaded theme", "name", t.Name, "path", t.Path)
	l.refresh()
}

// SetStyle regenerates the style CSS, used after a config reload.
func (l *Loader) SetStyle(style toast.Style, insets geom.Insets) {
	l.mu.Lock()
	l.styleCSS = StyleCSS(style, insets)
	l.mu.Unlock()
	l.refresh()
}

// CSS returns the combined stylesheet.
func (l *Loader) CSS() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.css()
}

func (l *Loader) css() string {
	if l.themeCSS == "" {
		return l.styleCSS
	}
	return l.styleCSS + "\n" + l.themeCSS
}

func (l *Loader) refresh() {
	l.mu.Lock()
	css := l.css()
	l.mu.Unlock()
	l.provider.LoadFromString(css)
}

// Apply adds the provider to a display. A nil display means the default one.
func (l *Loader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
}

// StartHotReload watches a user theme file and reloads the provider when it
// changes. apply schedules work on the GTK main thread. Bundled themes are
// not watched.
func (l *Loader) StartHotReload(ctx context.Context, apply func(func())) {
	l.StopHotReload()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.theme == nil || l.theme.IsBundled() {
		return
	}

	l.watcher = NewWatcher(l.theme, l.logger)
	l.watcher.SetChangeCallback(func(css string) {
		l.mu.Lock()
		l.themeCSS = css
		l.mu.Unlock()
		apply(l.refresh)
	})
	l.watcher.Start(ctx)
}

// StopHotReload stops watching the theme file.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}
