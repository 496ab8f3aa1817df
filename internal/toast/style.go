package toast

import (
	"image/color"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/toastui/internal/geom"
)

// Display durations.
const (
	DurationShort = 2 * time.Second
	DurationLong  = 3500 * time.Millisecond
)

// Style holds the toast's appearance. It never affects layout except through
// FontSize.
type Style struct {
	BackgroundColor   colorful.Color
	BackgroundOpacity float64
	TextColor         colorful.Color
	CornerRadius      float64

	ShadowColor   colorful.Color
	ShadowOpacity float64
	ShadowOffset  geom.Point
	ShadowRadius  float64

	FontSize float64 // 0 = device default
	Duration time.Duration
}

// DefaultStyle returns a translucent black toast with white text.
func DefaultStyle() Style {
	return Style{
		BackgroundColor:   colorful.Color{R: 0, G: 0, B: 0},
		BackgroundOpacity: 0.7,
		TextColor:         colorful.Color{R: 1, G: 1, B: 1},
		CornerRadius:      5,
		ShadowColor:       colorful.Color{R: 0, G: 0, B: 0},
		ShadowOpacity:     0,
		ShadowOffset:      geom.Point{X: 0, Y: -3},
		ShadowRadius:      3,
		Duration:          DurationShort,
	}
}

// Background returns the background colour with its opacity applied.
func (s Style) Background() color.NRGBA {
	return nrgba(s.BackgroundColor, s.BackgroundOpacity)
}

// Foreground returns the opaque text colour.
func (s Style) Foreground() color.NRGBA {
	return nrgba(s.TextColor, 1)
}

// Shadow returns the shadow colour with its opacity applied.
func (s Style) Shadow() color.NRGBA {
	return nrgba(s.ShadowColor, s.ShadowOpacity)
}

// HasShadow reports whether a shadow would be visible.
func (s Style) HasShadow() bool {
	return s.ShadowOpacity > 0
}

func nrgba(c colorful.Color, opacity float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(opacity) * 255))}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
