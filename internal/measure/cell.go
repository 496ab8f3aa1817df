package measure

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/jmylchreest/toastui/internal/geom"
)

// CellMeasurer measures text in terminal cells: each line is one row and
// each character takes its display width in columns. Font size and run
// attributes do not affect the result.
type CellMeasurer struct {
	cond *runewidth.Condition
}

// NewCellMeasurer returns a measurer using the terminal's locale settings.
func NewCellMeasurer() *CellMeasurer {
	return &CellMeasurer{cond: runewidth.NewCondition()}
}

// Measure implements Measurer.
func (m *CellMeasurer) Measure(text Text, f Font, bounds geom.Size) geom.Size {
	w, h := extent(m.Wrap(text, bounds.Width))
	return geom.Size{Width: w, Height: h}
}

// Wrap returns the wrapped lines of text.
func (m *CellMeasurer) Wrap(text Text, maxWidth float64) []Line {
	return wrap(text, maxWidth, cellMetrics{cond: m.cond})
}

type cellMetrics struct {
	cond *runewidth.Condition
}

func (cm cellMetrics) advance(s string, _ Run) float64 {
	return float64(cm.cond.StringWidth(s))
}

func (cm cellMetrics) lineHeight(_ Run) float64 {
	return 1
}

// Default size of one terminal cell in layout units.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// CellUnitMeasurer measures in terminal cells and reports layout units, so
// cell-measured text can be laid out against point-sized containers and
// insets.
type CellUnitMeasurer struct {
	cells      *CellMeasurer
	cellWidth  float64
	cellHeight float64
}

// NewCellUnitMeasurer returns a measurer where one cell is cellWidth x
// cellHeight layout units. Non-positive sizes use the defaults.
func NewCellUnitMeasurer(cellWidth, cellHeight float64) *CellUnitMeasurer {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellHeight
	}
	return &CellUnitMeasurer{
		cells:      NewCellMeasurer(),
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
	}
}

// Measure implements Measurer. The width bound is floored to whole cells.
func (m *CellUnitMeasurer) Measure(text Text, f Font, bounds geom.Size) geom.Size {
	s := m.cells.Measure(text, f, geom.Size{
		Width:  math.Floor(bounds.Width / m.cellWidth),
		Height: bounds.Height,
	})
	return geom.Size{Width: s.Width * m.cellWidth, Height: s.Height * m.cellHeight}
}

// Wrap returns the lines of text wrapped to maxWidth layout units. Line
// widths and heights are in cells.
func (m *CellUnitMeasurer) Wrap(text Text, maxWidth float64) []Line {
	return m.cells.Wrap(text, math.Floor(maxWidth/m.cellWidth))
}
