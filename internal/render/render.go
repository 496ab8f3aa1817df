// Package render rasterises a laid-out toast onto a blank screen so a layout
// can be inspected as an image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/measure"
	"github.com/jmylchreest/toastui/internal/toast"
)

// DefaultScreenColor is the backdrop the toast is drawn over.
var DefaultScreenColor = colorful.Color{R: 0.93, G: 0.93, B: 0.95}

// Scene is everything needed to draw one frame.
type Scene struct {
	Placed  toast.PlacedFrame
	Content toast.Content
	Style   toast.Style
	Screen  colorful.Color
}

// Renderer draws scenes using the font measurer's faces, so drawn text wraps
// exactly where layout measured it.
type Renderer struct {
	fonts *measure.FontMeasurer
}

// NewRenderer creates a renderer that draws text with fonts.
func NewRenderer(fonts *measure.FontMeasurer) *Renderer {
	return &Renderer{fonts: fonts}
}

// Render draws the scene. The image is the size of the effective container.
func (r *Renderer) Render(s Scene) *image.NRGBA {
	p := s.Placed
	canvas := image.NewNRGBA(image.Rect(0, 0, pixels(p.Effective.Width), pixels(p.Effective.Height)))

	screen := toNRGBA(s.Screen, 1)
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(screen), image.Point{}, xdraw.Src)

	bg := p.Background.Offset(p.Frame.X, p.Frame.Y)

	if s.Style.HasShadow() {
		shadow := bg.Offset(s.Style.ShadowOffset.X, s.Style.ShadowOffset.Y)
		shadow = geom.Rect{
			X:      shadow.X - s.Style.ShadowRadius,
			Y:      shadow.Y - s.Style.ShadowRadius,
			Width:  shadow.Width + 2*s.Style.ShadowRadius,
			Height: shadow.Height + 2*s.Style.ShadowRadius,
		}
		fillRounded(canvas, shadow, s.Style.CornerRadius+s.Style.ShadowRadius, s.Style.Shadow())
	}

	fillRounded(canvas, bg, s.Style.CornerRadius, s.Style.Background())

	if s.Content.HasImage() {
		r.drawImage(canvas, p.Image.Offset(p.Frame.X, p.Frame.Y), s.Content.Image, s.Style.Foreground())
	}

	if !s.Content.Text.IsEmpty() {
		r.drawText(canvas, p, s.Content.Text, s.Style.Foreground(), bg)
	}

	return canvas
}

// drawImage scales the image into its box, or outlines the box when there
// are no pixels to draw.
func (r *Renderer) drawImage(dst *image.NRGBA, box geom.Rect, img *toast.Image, fg color.NRGBA) {
	rect := toImageRect(box)
	if img.Data != nil {
		xdraw.CatmullRom.Scale(dst, rect, img.Data, img.Data.Bounds(), xdraw.Over, nil)
		return
	}

	c := image.NewUniform(fg)
	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1),
		image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y),
		image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y),
	}
	for _, e := range edges {
		xdraw.Draw(dst, e, c, image.Point{}, xdraw.Over)
	}
}

// drawText draws wrapped text into the text frame, clipped to the background.
func (r *Renderer) drawText(dst *image.NRGBA, p toast.PlacedFrame, text measure.Text, fg color.NRGBA, clip geom.Rect) {
	clipped := dst.SubImage(toImageRect(clip)).(*image.NRGBA)
	origin := p.Text.Offset(p.Frame.X, p.Frame.Y)
	src := image.NewUniform(fg)

	top := origin.Y
	for _, line := range r.fonts.Wrap(text, p.Font, p.Text.Width) {
		var ascent float64
		for _, seg := range line.Segments {
			ascent = max(ascent, r.fonts.Ascent(p.Font, seg.Style))
		}
		baseline := top + ascent

		x := origin.X
		for _, seg := range line.Segments {
			d := font.Drawer{
				Dst:  clipped,
				Src:  src,
				Face: r.fonts.Face(p.Font, seg.Style),
				Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(baseline)},
			}
			d.DrawString(seg.Text)
			x += seg.Width
		}
		top += line.Height
	}
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// WriteFile renders the scene and writes it to path as PNG.
func (r *Renderer) WriteFile(path string, s Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, r.Render(s)); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func pixels(v float64) int {
	return max(int(math.Ceil(v)), 1)
}

func toImageRect(r geom.Rect) image.Rectangle {
	r = r.Round()
	return image.Rect(int(r.X), int(r.Y), int(r.MaxX()), int(r.MaxY()))
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func toNRGBA(c colorful.Color, opacity float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(min(max(opacity, 0), 1) * 255))}
}
