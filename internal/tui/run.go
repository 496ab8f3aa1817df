package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/toastui/internal/config"
)

// RunOptions configures the preview.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Path to watch for changes (empty = no watching)
	Logger     *slog.Logger
	Options
}

// Run starts the preview and blocks until the user quits.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m, err := New(opts.Config, opts.Options)
	if err != nil {
		return err
	}

	// Start config watcher if a path was provided
	if opts.ConfigPath != "" {
		reloads := make(chan *config.Config, 1)
		watcher, err := config.NewWatcher(opts.ConfigPath, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			watcher.SetReloadCallback(func(cfg *config.Config) {
				// Drop a pending reload in favour of the newest one.
				select {
				case <-reloads:
				default:
				}
				reloads <- cfg
			})
			if err := watcher.Start(); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
			defer func() { _ = watcher.Stop() }()
			m.reloadCh = reloads
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
