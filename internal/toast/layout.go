package toast

import (
	"image"

	"github.com/jmylchreest/toastui/internal/device"
	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/measure"
)

// Layout constants in logical units.
const (
	ImageSize            = 24   // side of the square image box
	ImageSpacing         = 8    // gap between image and text
	ContainerMargin      = 32   // minimum total horizontal margin to the container edges
	DefaultMaxWidthRatio = 0.875
)

// DefaultTextInsets is the padding between the toast's edge and its content.
var DefaultTextInsets = geom.Insets{Top: 6, Left: 10, Bottom: 6, Right: 10}

// Image is the toast's optional image. Only its presence affects layout; the
// fields are for renderers.
type Image struct {
	Name string      // icon name or file path
	Data image.Image // decoded pixels, if available
}

// Content is what a toast shows.
type Content struct {
	Text     measure.Text
	Image    *Image
	FontSize float64 // 0 = device default
}

// HasImage reports whether an image is set.
func (c Content) HasImage() bool {
	return c.Image != nil
}

// Constraints are the geometry inputs supplied by the hosting window.
type Constraints struct {
	Container                  geom.Size
	MaxWidthRatio              float64
	TextInsets                 geom.Insets
	UseSafeAreaForBottomOffset bool
	SafeAreaBottom             float64
}

// DefaultConstraints returns constraints for container with default ratio and
// insets and the safe area disabled.
func DefaultConstraints(container geom.Size) Constraints {
	return Constraints{
		Container:     container,
		MaxWidthRatio: DefaultMaxWidthRatio,
		TextInsets:    DefaultTextInsets,
	}
}

// Orientation is the device orientation as reported by the host.
type Orientation struct {
	Landscape bool
	// ManualRotation is set when the hosting window does not rotate with the
	// device, so the toast must swap its own width and height in landscape.
	ManualRotation bool
}

// Portrait is the upright orientation with automatic rotation.
var Portrait = Orientation{}

// IsPortrait reports whether the orientation is portrait.
func (o Orientation) IsPortrait() bool {
	return !o.Landscape
}

// swapsAxes reports whether layout must treat the container as rotated.
func (o Orientation) swapsAxes() bool {
	return !o.IsPortrait() && o.ManualRotation
}

// PlacedFrame is the result of a layout pass.
type PlacedFrame struct {
	// Frame is the toast's rectangle in container coordinates.
	Frame geom.Rect `json:"frame" yaml:"frame"`
	// Background, Text and Image are relative to Frame's origin.
	Background geom.Rect `json:"background" yaml:"background"`
	Text       geom.Rect `json:"text" yaml:"text"`
	Image      geom.Rect `json:"image" yaml:"image"`

	// Effective is the container size after orientation resolution.
	Effective    geom.Size    `json:"effective" yaml:"effective"`
	BottomOffset float64      `json:"bottom_offset" yaml:"bottom_offset"`
	Font         measure.Font `json:"font" yaml:"font"`
}

// Contains reports whether p, in container coordinates, lies inside the toast.
func (p PlacedFrame) Contains(pt geom.Point) bool {
	return p.Frame.Contains(pt)
}

// Engine computes toast layouts using a text-measurement service.
type Engine struct {
	measurer measure.Measurer
}

// NewEngine returns an engine that measures text with m.
func NewEngine(m measure.Measurer) *Engine {
	return &Engine{measurer: m}
}

// Measurer returns the engine's text-measurement service.
func (e *Engine) Measurer() measure.Measurer {
	return e.measurer
}

// Layout computes the toast's frame. It has no side effects and keeps no
// state between calls.
func (e *Engine) Layout(content Content, c Constraints, profile device.Profile, o Orientation) PlacedFrame {
	insets := c.TextInsets
	font := measure.Font{Size: profile.FontSize}
	if content.FontSize > 0 {
		font.Size = content.FontSize
	}

	var imageSize geom.Size
	var spacing float64
	if content.HasImage() {
		imageSize = geom.Size{Width: ImageSize, Height: ImageSize}
		spacing = ImageSpacing
	}

	maxWidth := c.Container.Width * c.MaxWidthRatio

	var textSize geom.Size
	if !content.Text.IsEmpty() {
		bounds := geom.Size{
			Width:  maxWidth - insets.Horizontal() - imageSize.Width - spacing,
			Height: measure.Unbounded,
		}
		textSize = e.measurer.Measure(content.Text, font, bounds)
	}

	totalContentWidth := min(maxWidth, c.Container.Width-ContainerMargin) - insets.Horizontal()
	totalContentHeight := max(textSize.Height, imageSize.Height)

	textFrame := geom.Rect{
		X:      insets.Left + imageSize.Width + spacing,
		Y:      insets.Top + (totalContentHeight-textSize.Height)/2,
		Width:  min(textSize.Width, totalContentWidth-imageSize.Width-spacing),
		Height: textSize.Height,
	}
	imageFrame := geom.Rect{
		X:      insets.Left,
		Y:      insets.Top + (totalContentHeight-imageSize.Height)/2,
		Width:  imageSize.Width,
		Height: imageSize.Height,
	}

	// The background hugs its content; totalContentWidth + insets is only
	// the cap.
	contentWidth := min(imageSize.Width+spacing+max(textFrame.Width, 0), max(totalContentWidth, 0))
	background := geom.Rect{
		Width:  contentWidth + insets.Horizontal(),
		Height: totalContentHeight + insets.Vertical(),
	}

	effective := c.Container
	bottomOffset := profile.BottomOffsetPortrait
	if o.swapsAxes() {
		effective = c.Container.Swapped()
		bottomOffset = profile.BottomOffsetLandscape
	}
	if c.UseSafeAreaForBottomOffset {
		bottomOffset += c.SafeAreaBottom
	}

	// Centred on the container as given; only the vertical axis uses the
	// rotated space.
	frame := geom.Rect{
		X:      (c.Container.Width - background.Width) / 2,
		Y:      effective.Height - (background.Height + bottomOffset),
		Width:  background.Width,
		Height: background.Height,
	}

	return PlacedFrame{
		Frame:        frame,
		Background:   background,
		Text:         textFrame,
		Image:        imageFrame,
		Effective:    effective,
		BottomOffset: bottomOffset,
		Font:         font,
	}
}
