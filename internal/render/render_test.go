package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/device"
	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/measure"
	"github.com/jmylchreest/toastui/internal/toast"
)

func newTestRenderer(t *testing.T) (*Renderer, *toast.Engine) {
	t.Helper()
	fonts, err := measure.NewFontMeasurer()
	require.NoError(t, err)
	t.Cleanup(func() { _ = fonts.Close() })
	return NewRenderer(fonts), toast.NewEngine(fonts)
}

func testScene(engine *toast.Engine, content toast.Content) Scene {
	c := toast.DefaultConstraints(geom.Size{Width: 320, Height: 568})
	return Scene{
		Placed:  engine.Layout(content, c, device.Phone.Profile(), toast.Portrait),
		Content: content,
		Style:   toast.DefaultStyle(),
		Screen:  DefaultScreenColor,
	}
}

func nrgbaAt(img *image.NRGBA, x, y float64) color.NRGBA {
	return img.NRGBAAt(int(math.Floor(x)), int(math.Floor(y)))
}

func TestRender_Dimensions(t *testing.T) {
	r, engine := newTestRenderer(t)
	img := r.Render(testScene(engine, toast.Content{Text: measure.Plain("Hello")}))
	assert.Equal(t, image.Rect(0, 0, 320, 568), img.Bounds())
}

func TestRender_BackgroundAndScreen(t *testing.T) {
	r, engine := newTestRenderer(t)
	scene := testScene(engine, toast.Content{Text: measure.Plain("Hello")})
	img := r.Render(scene)
	frame := scene.Placed.Frame

	screen := toNRGBA(DefaultScreenColor, 1)
	assert.Equal(t, screen, img.NRGBAAt(0, 0))
	assert.Equal(t, screen, img.NRGBAAt(160, 10), "above the toast is untouched")

	// Left padding, vertically centred: background only.
	inside := nrgbaAt(img, frame.X+4, frame.Y+frame.Height/2)
	assert.Less(t, inside.R, screen.R)
	assert.InDelta(t, 0.3*float64(screen.R), float64(inside.R), 2)

	// The rounded corner leaves the outermost pixel uncovered.
	assert.Equal(t, screen, nrgbaAt(img, frame.X, frame.Y))
}

func TestRender_DrawsText(t *testing.T) {
	r, engine := newTestRenderer(t)
	scene := testScene(engine, toast.Content{Text: measure.Plain("WWWW")})
	img := r.Render(scene)

	text := scene.Placed.Text.Offset(scene.Placed.Frame.X, scene.Placed.Frame.Y)
	var lit int
	for y := int(text.Y); y < int(text.MaxY()); y++ {
		for x := int(text.X); x < int(text.MaxX()); x++ {
			if img.NRGBAAt(x, y).R > 120 {
				lit++
			}
		}
	}
	assert.Positive(t, lit, "text pixels should be drawn in the text colour")
}

func TestRender_ImagePlaceholder(t *testing.T) {
	r, engine := newTestRenderer(t)
	scene := testScene(engine, toast.Content{Image: &toast.Image{Name: "missing"}})
	img := r.Render(scene)

	box := toImageRect(scene.Placed.Image.Offset(scene.Placed.Frame.X, scene.Placed.Frame.Y))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(box.Min.X, box.Min.Y))
}

func TestRender_ScalesImage(t *testing.T) {
	r, engine := newTestRenderer(t)

	red := image.NewNRGBA(image.Rect(0, 0, 48, 48))
	for i := 0; i < len(red.Pix); i += 4 {
		red.Pix[i], red.Pix[i+3] = 255, 255
	}
	scene := testScene(engine, toast.Content{Image: &toast.Image{Data: red}})
	img := r.Render(scene)

	box := toImageRect(scene.Placed.Image.Offset(scene.Placed.Frame.X, scene.Placed.Frame.Y))
	centre := img.NRGBAAt((box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2)
	assert.Equal(t, uint8(255), centre.R)
	assert.Equal(t, uint8(0), centre.G)
}

func TestRoundedMask(t *testing.T) {
	m := roundedMask{rect: geom.Rect{X: 0, Y: 0, Width: 20, Height: 10}, radius: 5}

	assert.True(t, m.inside(10, 5))
	assert.True(t, m.inside(5, 0.5))
	assert.False(t, m.inside(0.5, 0.5))
	assert.False(t, m.inside(20, 5))

	square := roundedMask{rect: geom.Rect{Width: 4, Height: 4}}
	assert.True(t, square.inside(0.5, 0.5))
}

func TestWriteFile(t *testing.T) {
	r, engine := newTestRenderer(t)
	path := filepath.Join(t.TempDir(), "toast.png")

	require.NoError(t, r.WriteFile(path, testScene(engine, toast.Content{Text: measure.Plain("Saved")})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 568, img.Bounds().Dy())
}
