// Package main is the entry point for toastuid, which shows a single toast on
// the desktop.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/device"
	"github.com/jmylchreest/toastui/internal/display"
	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/measure"
	"github.com/jmylchreest/toastui/internal/theme"
	"github.com/jmylchreest/toastui/internal/toast"
)

const (
	appID   = "io.github.jmylchreest.toastuid"
	appName = "toastuid"

	detectTimeout = 2 * time.Second
)

var (
	// Build-time variables
	version = "dev"
)

// options are the command line inputs. set records which flags were given so
// config reloads do not override them.
type options struct {
	text       string
	markup     bool
	image      string
	duration   config.Duration
	device     string
	configPath string
	theme      string
	monitor    int
	safeArea   float64
	set        map[string]bool
}

func main() {
	var opts options
	flag.StringVar(&opts.text, "text", "", "Toast text")
	flag.BoolVar(&opts.markup, "markup", false, "Parse text as markup (<b>, <i>, <big>, <small>)")
	flag.StringVar(&opts.image, "image", "", "Icon name or image file")
	flag.TextVar(&opts.duration, "duration", config.Duration(0), "Display duration: short, long, 2s or milliseconds (default from config)")
	flag.StringVar(&opts.device, "device", "", "Device class (default from config)")
	flag.StringVar(&opts.configPath, "config", "", "Path to config file (default: ~/.config/toastui/config.toml)")
	flag.StringVar(&opts.theme, "theme", "", "Theme name (default from config)")
	flag.IntVar(&opts.monitor, "monitor", 0, "Monitor number, 1-indexed (0 = first)")
	flag.Float64Var(&opts.safeArea, "safe-area", 0, "Safe-area bottom inset")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	listThemes := flag.Bool("list-themes", false, "List available themes and exit")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if *showVersion {
		fmt.Println(appName, "version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *listThemes {
		if err := printThemes(); err != nil {
			logger.Error("failed to list themes", "error", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	os.Exit(run(cfg, opts, logger))
}

func printThemes() error {
	dir, err := theme.ThemesDir()
	if err != nil {
		dir = ""
	}
	themes, err := theme.ListAvailableThemes(dir)
	if err != nil {
		return err
	}
	for _, t := range themes {
		if t.Bundled {
			fmt.Printf("%s\t(bundled)\n", t.Name)
		} else {
			fmt.Printf("%s\t%s\n", t.Name, t.Path)
		}
	}
	return nil
}

// toastApp is the state shared between GTK callbacks. Everything except the
// config watcher callback runs on the GTK main thread.
type toastApp struct {
	cfg    *config.Config
	opts   options
	logger *slog.Logger

	class       device.Class
	monitor     *gdk.Monitor
	fonts       *measure.FontMeasurer
	view        *toast.View
	window      *display.Window
	loader      *theme.Loader
	activeTheme string
}

func run(cfg *config.Config, opts options, logger *slog.Logger) int {
	logger.Info("starting toastuid", "version", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &toastApp{cfg: cfg, opts: opts, logger: logger}
	a.class = a.resolveClass(ctx)

	fonts, err := measure.NewFontMeasurer()
	if err != nil {
		logger.Error("failed to load fonts", "error", err)
		return 1
	}
	a.fonts = fonts
	defer func() { _ = fonts.Close() }()

	app := adw.NewApplication(appID, 0)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
			glib.IdleAdd(func() {
				if a.window != nil {
					a.window.Close(display.CloseReasonClosed)
				}
				app.Quit()
			})
		case <-ctx.Done():
		}
	}()

	var configWatcher *config.Watcher

	app.ConnectActivate(func() {
		if a.window != nil {
			logger.Warn("application already running")
			return
		}

		a.monitor = display.Monitor(nil, opts.monitor, logger)

		view, err := toast.NewView(toast.NewEngine(a.fonts), a.content(), a.style())
		if err != nil {
			logger.Error("failed to create toast", "error", err)
			app.Quit()
			return
		}
		a.view = view
		a.layout()

		a.loader = theme.NewLoader(view.Style, cfg.Layout.Insets, logger)
		a.loadTheme(ctx)
		a.loader.Apply(nil)

		a.window, err = display.NewWindow(&app.Application, view, logger)
		if err != nil {
			logger.Error("failed to create toast window", "error", err)
			app.Quit()
			return
		}
		a.window.OnClose(func(reason display.CloseReason) {
			logger.Info("toast closed", "id", view.ID, "reason", reason.String())
			a.loader.StopHotReload()
			app.Quit()
		})

		configWatcher, err = config.NewWatcher(opts.configPath, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(newCfg *config.Config) {
				glib.IdleAdd(func() {
					a.applyConfig(ctx, newCfg)
				})
			})
			if err := configWatcher.Start(); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		a.window.Show(a.monitor)
		logger.Info("toast shown", "id", view.ID, "device", a.class, "duration", view.Style.Duration)
	})

	status := app.Run(os.Args[:1])

	if configWatcher != nil {
		_ = configWatcher.Stop()
	}
	logger.Info("toastuid stopped")
	return status
}

// resolveClass picks the device class from the flag, then the config, then
// hostnamed.
func (a *toastApp) resolveClass(ctx context.Context) device.Class {
	name := a.cfg.Device.Class
	if a.opts.set["device"] {
		name = a.opts.device
	}

	if name != "" && !strings.EqualFold(name, config.DefaultDeviceClass) {
		class, err := device.ParseClass(name)
		if err == nil {
			return class
		}
		a.logger.Warn("unknown device class, detecting", "class", name, "error", err)
	}

	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()
	class, err := device.DetectClass(ctx)
	if err != nil {
		a.logger.Warn("device detection failed, using phone values", "error", err)
	}
	return class
}

func (a *toastApp) content() toast.Content {
	var content toast.Content

	content.Text = measure.Plain(a.opts.text)
	if a.opts.markup {
		parsed, err := measure.ParseMarkup(a.opts.text)
		if err != nil {
			a.logger.Warn("invalid markup, using plain text", "error", err)
		} else {
			content.Text = parsed
		}
	}
	if a.opts.image != "" {
		content.Image = &toast.Image{Name: a.opts.image}
	}
	return content
}

func (a *toastApp) style() toast.Style {
	style := a.cfg.ToastStyle()
	if a.opts.set["duration"] {
		style.Duration = a.opts.duration.Duration()
	}
	return style
}

// layout lays the view out on the monitor. The compositor rotates outputs
// itself, so manual rotation stays off: axes never swap and the portrait
// bottom offset always applies.
func (a *toastApp) layout() {
	container := display.MonitorSize(a.monitor)
	if container.IsZero() {
		container = geom.Size{Width: a.cfg.Screen.Width, Height: a.cfg.Screen.Height}
		a.logger.Warn("monitor size unavailable, using configured screen", "size", container)
	}

	safeArea := a.cfg.Screen.SafeAreaBottom
	if a.opts.set["safe-area"] {
		safeArea = a.opts.safeArea
	}

	orientation := toast.Orientation{Landscape: container.Width > container.Height}
	placed := a.view.Layout(a.cfg.Constraints(container, safeArea), a.class.Profile(), orientation)

	a.logger.Debug("toast laid out",
		"id", a.view.ID,
		"container", container,
		"frame", placed.Frame,
	)
}

func (a *toastApp) themeName() string {
	if a.opts.set["theme"] {
		return a.opts.theme
	}
	return a.cfg.Style.Theme
}

func (a *toastApp) loadTheme(ctx context.Context) {
	a.activeTheme = a.themeName()
	a.loader.LoadTheme(a.activeTheme)
	a.loader.StartHotReload(ctx, func(fn func()) {
		glib.IdleAdd(fn)
	})
}

// applyConfig re-runs layout and restyles the window after a config change.
func (a *toastApp) applyConfig(ctx context.Context, cfg *config.Config) {
	if a.window == nil {
		return
	}
	a.cfg = cfg

	if !a.opts.set["device"] && !cfg.AutoDetectDevice() {
		a.class = cfg.DeviceClass()
	}

	a.view.Style = a.style()
	a.layout()
	a.loader.SetStyle(a.view.Style, cfg.Layout.Insets)
	if a.themeName() != a.activeTheme {
		a.loadTheme(ctx)
	}
	a.window.Update()

	a.logger.Info("config reloaded", "device", a.class)
}
