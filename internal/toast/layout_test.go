package toast

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/device"
	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/measure"
)

const (
	glyphWidth = 6
	lineHeight = 14
)

// fixedMeasurer sets every rune 6 units wide on 14-unit lines, wrapping the
// total width into as many lines as the bound requires.
var fixedMeasurer = measure.MeasureFunc(func(text measure.Text, _ measure.Font, bounds geom.Size) geom.Size {
	n := float64(len([]rune(text.String())))
	if n == 0 {
		return geom.Size{}
	}
	natural := n * glyphWidth
	if natural <= bounds.Width {
		return geom.Size{Width: natural, Height: lineHeight}
	}
	lines := math.Ceil(natural / bounds.Width)
	return geom.Size{Width: bounds.Width, Height: lines * lineHeight}
})

func newEngine() *Engine {
	return NewEngine(fixedMeasurer)
}

func phone() device.Profile {
	return device.ProfileFor(device.Phone)
}

func iphoneSE() Constraints {
	return DefaultConstraints(geom.Size{Width: 320, Height: 568})
}

func textContent(s string) Content {
	return Content{Text: measure.Plain(s)}
}

func TestLayout_ShortTextPortrait(t *testing.T) {
	got := newEngine().Layout(textContent("Hi"), iphoneSE(), phone(), Portrait)

	assert.Equal(t, geom.Rect{X: 10, Y: 6, Width: 12, Height: 14}, got.Text)
	assert.Equal(t, geom.Rect{X: 10, Y: 13, Width: 0, Height: 0}, got.Image)
	assert.Equal(t, geom.Rect{Width: 32, Height: 26}, got.Background)

	// height = textHeight + 12, y = 568 - (height + 30)
	assert.Equal(t, 26.0, got.Frame.Height)
	assert.Equal(t, 568-(26.0+30), got.Frame.Y)
	assert.Equal(t, 144.0, got.Frame.X)
	assert.Equal(t, 30.0, got.BottomOffset)
	assert.Equal(t, 12.0, got.Font.Size)
	assert.Equal(t, geom.Size{Width: 320, Height: 568}, got.Effective)
}

func TestLayout_WithImage(t *testing.T) {
	engine := newEngine()
	plain := engine.Layout(textContent("Hi"), iphoneSE(), phone(), Portrait)

	content := textContent("Hi")
	content.Image = &Image{Name: "dialog-information"}
	got := engine.Layout(content, iphoneSE(), phone(), Portrait)

	assert.Equal(t, geom.Rect{X: 10, Y: 6, Width: 24, Height: 24}, got.Image)
	assert.Equal(t, geom.Rect{X: 42, Y: 11, Width: 12, Height: 14}, got.Text)
	assert.Equal(t, geom.Rect{Width: 64, Height: 36}, got.Background)
	assert.Equal(t, 128.0, got.Frame.X)
	assert.Equal(t, 568-(36.0+30), got.Frame.Y)

	assert.GreaterOrEqual(t, got.Frame.Width, plain.Frame.Width+ImageSize+ImageSpacing)
}

func TestLayout_ImageWidthCappedByMaxWidth(t *testing.T) {
	engine := newEngine()
	long := strings.Repeat("x", 100)

	plain := engine.Layout(textContent(long), iphoneSE(), phone(), Portrait)
	content := textContent(long)
	content.Image = &Image{}
	withImage := engine.Layout(content, iphoneSE(), phone(), Portrait)

	assert.Equal(t, 280.0, plain.Frame.Width)
	assert.Equal(t, 280.0, withImage.Frame.Width)
	assert.Equal(t, 42.0, withImage.Text.X)
	assert.Equal(t, 228.0, withImage.Text.Width)
}

func TestLayout_LongTextWraps(t *testing.T) {
	got := newEngine().Layout(textContent(strings.Repeat("x", 100)), iphoneSE(), phone(), Portrait)

	// 600 units of text measured against 280 - 20 = 260.
	assert.Equal(t, 260.0, got.Text.Width)
	assert.Equal(t, 3*lineHeight+0.0, got.Text.Height)
	assert.Equal(t, 280.0, got.Frame.Width)
	assert.Equal(t, 3*lineHeight+12.0, got.Frame.Height)
}

func TestLayout_TextClippedByContainerMargin(t *testing.T) {
	c := iphoneSE()
	c.MaxWidthRatio = 1.0 // max width 320, container margin leaves 288

	got := newEngine().Layout(textContent(strings.Repeat("x", 100)), c, phone(), Portrait)

	// Measured against 300, clipped to 288 - 20.
	assert.Equal(t, 268.0, got.Text.Width)
	assert.Equal(t, 288.0, got.Frame.Width)
	assert.Equal(t, 16.0, got.Frame.X)
}

func TestLayout_EmptyContentSizedFromInsets(t *testing.T) {
	got := newEngine().Layout(Content{}, iphoneSE(), phone(), Portrait)

	assert.Equal(t, geom.Rect{Width: 20, Height: 12}, got.Background)
	assert.Equal(t, geom.Rect{X: 10, Y: 6}, got.Text)
	assert.Equal(t, 150.0, got.Frame.X)
	assert.Equal(t, 568-(12.0+30), got.Frame.Y)
}

func TestLayout_ImageOnly(t *testing.T) {
	got := newEngine().Layout(Content{Image: &Image{}}, iphoneSE(), phone(), Portrait)

	assert.Equal(t, geom.Rect{Width: 52, Height: 36}, got.Background)
	assert.Equal(t, geom.Rect{X: 42, Y: 18}, got.Text)
}

func TestLayout_Orientation(t *testing.T) {
	engine := newEngine()
	content := textContent("Hi")

	portrait := engine.Layout(content, iphoneSE(), phone(), Portrait)
	manual := engine.Layout(content, iphoneSE(), phone(), Orientation{Landscape: true, ManualRotation: true})
	automatic := engine.Layout(content, iphoneSE(), phone(), Orientation{Landscape: true})

	t.Run("manual rotation swaps axes", func(t *testing.T) {
		assert.Equal(t, geom.Size{Width: 568, Height: 320}, manual.Effective)
		assert.Equal(t, 20.0, manual.BottomOffset)
		assert.Equal(t, 320-(26.0+20), manual.Frame.Y)
		assert.Equal(t, (320-32)/2.0, manual.Frame.X)
		assert.NotEqual(t, portrait.Frame.Y, manual.Frame.Y)
	})

	t.Run("automatic rotation uses container as-is", func(t *testing.T) {
		assert.Equal(t, portrait.Frame, automatic.Frame)
		assert.Equal(t, portrait.Effective, automatic.Effective)
		assert.Equal(t, 30.0, automatic.BottomOffset)
	})

	t.Run("manual rotation flag ignored in portrait", func(t *testing.T) {
		got := engine.Layout(content, iphoneSE(), phone(), Orientation{ManualRotation: true})
		assert.Equal(t, portrait.Frame, got.Frame)
	})
}

func TestLayout_SafeArea(t *testing.T) {
	engine := newEngine()
	content := textContent("Hi")

	c := iphoneSE()
	c.SafeAreaBottom = 34

	t.Run("ignored when disabled", func(t *testing.T) {
		base := engine.Layout(content, iphoneSE(), phone(), Portrait)
		got := engine.Layout(content, c, phone(), Portrait)
		assert.Equal(t, base, got)
	})

	t.Run("added when enabled", func(t *testing.T) {
		c.UseSafeAreaForBottomOffset = true
		got := engine.Layout(content, c, phone(), Portrait)
		assert.Equal(t, 64.0, got.BottomOffset)
		assert.Equal(t, 568-(26.0+64), got.Frame.Y)
	})

	t.Run("added to landscape offset", func(t *testing.T) {
		c.UseSafeAreaForBottomOffset = true
		got := engine.Layout(content, c, phone(), Orientation{Landscape: true, ManualRotation: true})
		assert.Equal(t, 54.0, got.BottomOffset)
	})
}

func TestLayout_FontSize(t *testing.T) {
	engine := newEngine()

	got := engine.Layout(textContent("Hi"), iphoneSE(), device.ProfileFor(device.TV), Portrait)
	assert.Equal(t, 20.0, got.Font.Size)
	assert.Equal(t, 90.0, got.BottomOffset)

	content := textContent("Hi")
	content.FontSize = 9
	got = engine.Layout(content, iphoneSE(), device.ProfileFor(device.TV), Portrait)
	assert.Equal(t, 9.0, got.Font.Size)
}

func TestLayout_UnknownClassMatchesPhone(t *testing.T) {
	engine := newEngine()
	content := textContent("Hello there")

	for _, o := range []Orientation{Portrait, {Landscape: true, ManualRotation: true}} {
		want := engine.Layout(content, iphoneSE(), device.ProfileFor(device.Phone), o)
		assert.Equal(t, want, engine.Layout(content, iphoneSE(), device.ProfileFor(device.Unknown), o))
		assert.Equal(t, want, engine.Layout(content, iphoneSE(), device.ProfileFor(device.Class(77)), o))
	}
}

func TestLayout_Invariants(t *testing.T) {
	engine := newEngine()
	containers := []geom.Size{
		{Width: 320, Height: 568},
		{Width: 375, Height: 812},
		{Width: 768, Height: 1024},
		{Width: 1920, Height: 1080},
		{Width: 80, Height: 24},
	}
	ratios := []float64{0.5, 0.875, 0.95, 1}
	texts := []string{"", "Hi", "Copied to clipboard", strings.Repeat("word ", 60)}
	orientations := []Orientation{
		Portrait,
		{Landscape: true},
		{Landscape: true, ManualRotation: true},
	}

	for _, size := range containers {
		for _, ratio := range ratios {
			for _, text := range texts {
				for _, withImage := range []bool{false, true} {
					for _, class := range device.Classes() {
						c := DefaultConstraints(size)
						c.MaxWidthRatio = ratio
						content := textContent(text)
						if withImage {
							content.Image = &Image{}
						}

						for _, o := range orientations {
							got := engine.Layout(content, c, device.ProfileFor(class), o)

							limit := min(size.Width*ratio, size.Width-ContainerMargin)
							assert.LessOrEqual(t, got.Frame.Width, limit+1e-9, "width bound for %v ratio %v", size, ratio)
							assert.InDelta(t, size.Width/2, got.Frame.X+got.Frame.Width/2, 1e-9, "centred for %v %+v", size, o)
							assert.InDelta(t, got.Effective.Height-got.BottomOffset, got.Frame.MaxY(), 1e-9)
							if !withImage {
								assert.Equal(t, c.TextInsets.Left, got.Text.X)
								assert.True(t, got.Image.Size().IsZero())
							}
						}
					}
				}
			}
		}
	}
}

func TestPlacedFrame_Contains(t *testing.T) {
	got := newEngine().Layout(textContent("Hi"), iphoneSE(), phone(), Portrait)
	require.Equal(t, geom.Rect{X: 144, Y: 512, Width: 32, Height: 26}, got.Frame)

	assert.True(t, got.Contains(geom.Point{X: 160, Y: 525}))
	assert.True(t, got.Contains(geom.Point{X: 144, Y: 512}))
	assert.False(t, got.Contains(geom.Point{X: 176, Y: 525}))
	assert.False(t, got.Contains(geom.Point{X: 10, Y: 10}))
}
