// Package tui provides a Bubble Tea preview of the toast layout. The terminal
// is the container: each cell stands for CellWidth x CellHeight layout units,
// so resizing the terminal re-runs the layout exactly as a window resize would.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/device"
	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/measure"
	"github.com/jmylchreest/toastui/internal/output"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Size of one terminal cell in layout units.
const (
	CellWidth  = measure.DefaultCellWidth
	CellHeight = measure.DefaultCellHeight
)

// chromeRows are the rows below the preview: an info line and a key bar.
const chromeRows = 2

// Mode represents the current UI mode.
type Mode int

const (
	ModePreview Mode = iota
	ModeEdit
)

// Options are the initial preview inputs.
type Options struct {
	Text   string
	Markup bool
	Image  bool
	Class  device.Class
}

// Model is the preview model.
type Model struct {
	cfg     *config.Config
	cells   *measure.CellUnitMeasurer
	view    *toast.View
	initial Options

	mode  Mode
	input textinput.Model
	help  help.Model
	keys  KeyMap

	// Layout inputs
	source      string
	markup      bool
	image       bool
	class       device.Class
	orientation toast.Orientation
	useSafeArea bool

	width  int
	height int
	ready  bool

	statusMsg string
	statusErr bool

	reloadCh <-chan *config.Config
}

// New creates a preview model.
func New(cfg *config.Config, opts Options) (Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	cells := measure.NewCellUnitMeasurer(CellWidth, CellHeight)
	view, err := toast.NewView(toast.NewEngine(cells), toast.Content{}, cfg.ToastStyle())
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Placeholder = "Toast text..."
	input.CharLimit = 500

	m := Model{
		cfg:     cfg,
		cells:   cells,
		view:    view,
		initial: opts,
		input:   input,
		help:    help.New(),
		keys:    DefaultKeyMap(),
	}
	m.reset()
	return m, nil
}

// reset restores the initial inputs.
func (m *Model) reset() {
	m.source = m.initial.Text
	m.markup = m.initial.Markup
	m.image = m.initial.Image
	m.class = m.initial.Class
	m.orientation = m.cfg.Orientation()
	m.useSafeArea = m.cfg.Layout.UseSafeAreaForBottomOffset
}

type configReloadedMsg struct {
	cfg *config.Config
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Init initializes the preview.
func (m Model) Init() tea.Cmd {
	return m.waitForReload
}

// waitForReload blocks until the config watcher delivers a new config.
func (m Model) waitForReload() tea.Msg {
	if m.reloadCh == nil {
		return nil
	}
	cfg, ok := <-m.reloadCh
	if !ok {
		return nil
	}
	return configReloadedMsg{cfg: cfg}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m, m.status(m.hitTest(msg.X, msg.Y), false)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		_ = m.relayout()
		return m, nil

	case configReloadedMsg:
		m.cfg = msg.cfg
		if !m.cfg.AutoDetectDevice() {
			m.class = m.cfg.DeviceClass()
		}
		m.view.Style = m.cfg.ToastStyle()
		_ = m.relayout()
		return m, tea.Batch(m.status("config reloaded", false), m.waitForReload)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	if m.mode == ModeEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeEdit {
		return m.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Orientation):
		m.orientation.Landscape = !m.orientation.Landscape

	case key.Matches(msg, m.keys.ManualRotation):
		m.orientation.ManualRotation = !m.orientation.ManualRotation

	case key.Matches(msg, m.keys.Image):
		m.image = !m.image

	case key.Matches(msg, m.keys.SafeArea):
		m.useSafeArea = !m.useSafeArea

	case key.Matches(msg, m.keys.Device):
		m.class = nextClass(m.class)

	case key.Matches(msg, m.keys.Markup):
		m.markup = !m.markup

	case key.Matches(msg, m.keys.Reset):
		m.reset()

	case key.Matches(msg, m.keys.Edit):
		m.mode = ModeEdit
		m.input.SetValue(m.source)
		m.input.CursorEnd()
		return m, m.input.Focus()

	default:
		return m, nil
	}

	if err := m.relayout(); err != nil {
		return m, m.status(err.Error(), true)
	}
	return m, nil
}

// handleEditKey handles keys while editing the toast text.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		m.source = m.input.Value()
		m.mode = ModePreview
		m.input.Blur()
		if err := m.relayout(); err != nil {
			return m, m.status(err.Error(), true)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.mode = ModePreview
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// nextClass cycles through the device table.
func nextClass(c device.Class) device.Class {
	classes := device.Classes()
	for i, k := range classes {
		if k == c {
			return classes[(i+1)%len(classes)]
		}
	}
	return classes[0]
}

// content builds the toast content. Markup that fails to parse is shown as
// plain text and reported.
func (m Model) content() (toast.Content, error) {
	var content toast.Content
	var err error

	content.Text = measure.Plain(m.source)
	if m.markup {
		var parsed measure.Text
		if parsed, err = measure.ParseMarkup(m.source); err == nil {
			content.Text = parsed
		}
	}
	if m.image {
		content.Image = &toast.Image{Name: "preview"}
	}
	return content, err
}

// container is the preview area in layout units.
func (m Model) container() geom.Size {
	return geom.Size{
		Width:  float64(m.width) * CellWidth,
		Height: float64(max(m.height-chromeRows, 0)) * CellHeight,
	}
}

// relayout recomputes the toast frame from the current inputs.
func (m *Model) relayout() error {
	content, err := m.content()
	m.view.Content = content

	c := m.cfg.Constraints(m.container(), m.cfg.Screen.SafeAreaBottom)
	c.UseSafeAreaForBottomOffset = m.useSafeArea
	m.view.Layout(c, m.class.Profile(), m.orientation)

	if err != nil {
		return fmt.Errorf("markup shown as plain text: %w", err)
	}
	return nil
}

// hitTest reports whether the cell at (col, row) is inside the toast.
func (m Model) hitTest(col, row int) string {
	p := geom.Point{
		X: (float64(col) + 0.5) * CellWidth,
		Y: (float64(row) + 0.5) * CellHeight,
	}
	if v := m.view.HitTest(p); v != nil {
		return "hit " + v.ID
	}
	return "miss"
}

// Frame returns the current layout.
func (m Model) Frame() (toast.PlacedFrame, bool) {
	return m.view.Frame()
}

// View renders the preview.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderScreen())
	b.WriteString(m.infoLine())
	b.WriteString("\n")

	switch {
	case m.mode == ModeEdit:
		b.WriteString("Text: " + m.input.View())
	case m.statusMsg != "":
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		b.WriteString(statusStyle.Render(m.statusMsg))
	default:
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

// infoLine summarises the layout inputs and result.
func (m Model) infoLine() string {
	frame, _ := m.view.Frame()

	orientation := "portrait"
	if m.orientation.Landscape {
		orientation = "landscape"
		if m.orientation.ManualRotation {
			orientation += "/manual"
		}
	}

	parts := []string{
		m.class.String(),
		orientation,
		output.FormatSize(frame.Effective),
		"frame " + output.FormatRect(frame.Frame),
	}
	if m.useSafeArea {
		parts = append(parts, "safe area "+output.Number(m.cfg.Screen.SafeAreaBottom))
	}
	if m.markup {
		parts = append(parts, "markup")
	}

	info := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return info.Render(strings.Join(parts, " · "))
}
