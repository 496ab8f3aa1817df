package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/toast"
)

// ScreenColor is the preview backdrop. Toast opacity blends against it.
var ScreenColor = colorful.Color{R: 0.85, G: 0.85, B: 0.88}

// imageGlyph fills the image box.
const imageGlyph = "▣"

// cellBox is a rectangle in whole cells.
type cellBox struct {
	col, row, w, h int
}

func toCells(r geom.Rect) cellBox {
	return cellBox{
		col: int(math.Round(r.X / CellWidth)),
		row: int(math.Round(r.Y / CellHeight)),
		w:   int(math.Round(r.Width / CellWidth)),
		h:   int(math.Round(r.Height / CellHeight)),
	}
}

// renderScreen draws the effective container with the toast on it. Each row
// ends with a newline.
func (m Model) renderScreen() string {
	frame, ok := m.view.Frame()
	if !ok {
		return ""
	}

	cols := min(int(frame.Effective.Width/CellWidth), m.width)
	rows := min(int(frame.Effective.Height/CellHeight), max(m.height-chromeRows, 0))

	style := m.view.Style
	screen := lipgloss.NewStyle().Background(lipgloss.Color(ScreenColor.Hex()))
	bg := ScreenColor.BlendRgb(style.BackgroundColor, style.BackgroundOpacity)
	body := lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Clamped().Hex())).
		Foreground(lipgloss.Color(style.TextColor.Clamped().Hex()))

	box := toCells(frame.Frame)
	toastRows := m.toastRows(frame, box)

	var b strings.Builder
	for r := range rows {
		i := r - box.row
		start := max(box.col, 0)
		end := min(box.col+box.w, cols)
		if i < 0 || i >= len(toastRows) || end <= start {
			b.WriteString(screen.Render(strings.Repeat(" ", cols)))
			b.WriteString("\n")
			continue
		}

		// Cut the row where the toast leaves the screen.
		row := runewidth.TruncateLeft(toastRows[i], start-box.col, "")
		row = runewidth.FillRight(runewidth.Truncate(row, end-start, ""), end-start)

		b.WriteString(screen.Render(strings.Repeat(" ", start)))
		b.WriteString(body.Render(row))
		b.WriteString(screen.Render(strings.Repeat(" ", cols-end)))
		b.WriteString("\n")
	}
	return b.String()
}

// toastRows lays out the toast's text and image as plain rows box.w cells
// wide.
func (m Model) toastRows(frame toast.PlacedFrame, box cellBox) []string {
	if box.w <= 0 || box.h <= 0 {
		return nil
	}

	text := toCells(frame.Text)
	lines := m.cells.Wrap(m.view.Content.Text, frame.Text.Width)

	var img cellBox
	if m.view.Content.HasImage() {
		img = toCells(frame.Image)
	}

	rows := make([]string, box.h)
	for r := range rows {
		var b strings.Builder
		col := 0
		pad := func(to int) {
			if to > col {
				b.WriteString(strings.Repeat(" ", to-col))
				col = to
			}
		}

		if img.w > 0 && r >= img.row && r < img.row+max(img.h, 1) {
			pad(img.col)
			b.WriteString(strings.Repeat(imageGlyph, img.w))
			col += img.w * runewidth.StringWidth(imageGlyph)
		}
		if i := r - text.row; i >= 0 && i < len(lines) {
			pad(text.col)
			line := runewidth.Truncate(lines[i].String(), max(text.w, 0), "")
			b.WriteString(line)
			col += runewidth.StringWidth(line)
		}

		rows[r] = runewidth.FillRight(runewidth.Truncate(b.String(), box.w, ""), box.w)
	}
	return rows
}
