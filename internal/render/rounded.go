package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/jmylchreest/toastui/internal/geom"
)

// roundedMask is an alpha mask that is opaque inside a rounded rectangle.
type roundedMask struct {
	rect   geom.Rect
	radius float64
}

func (m roundedMask) ColorModel() color.Model {
	return color.AlphaModel
}

func (m roundedMask) Bounds() image.Rectangle {
	return toImageRect(m.rect)
}

func (m roundedMask) At(x, y int) color.Color {
	if m.inside(float64(x)+0.5, float64(y)+0.5) {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

// inside reports whether the pixel centre (px, py) falls inside the shape.
func (m roundedMask) inside(px, py float64) bool {
	r := m.rect
	if px < r.X || px >= r.MaxX() || py < r.Y || py >= r.MaxY() {
		return false
	}
	radius := min(m.radius, r.Width/2, r.Height/2)
	if radius <= 0 {
		return true
	}

	// Distance to the nearest corner centre; only matters in the corners.
	cx := min(max(px, r.X+radius), r.MaxX()-radius)
	cy := min(max(py, r.Y+radius), r.MaxY()-radius)
	return math.Hypot(px-cx, py-cy) <= radius
}

// fillRounded composites c over dst inside a rounded rectangle.
func fillRounded(dst xdraw.Image, r geom.Rect, radius float64, c color.NRGBA) {
	if r.IsEmpty() || c.A == 0 {
		return
	}
	mask := roundedMask{rect: r, radius: radius}
	bounds := mask.Bounds()
	xdraw.DrawMask(dst, bounds, image.NewUniform(c), image.Point{}, mask, bounds.Min, xdraw.Over)
}
