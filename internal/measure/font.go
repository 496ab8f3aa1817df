package measure

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/toastui/internal/geom"
)

// FontMeasurer measures text set in the Go font family. Sizes are in pixels
// (faces are built at 72 DPI, so a point is a pixel).
type FontMeasurer struct {
	mu    sync.Mutex
	fonts map[faceVariant]*opentype.Font
	faces map[faceKey]font.Face
}

type faceVariant struct {
	bold, italic bool
}

type faceKey struct {
	variant faceVariant
	size    float64
}

var fontData = map[faceVariant][]byte{
	{bold: false, italic: false}: goregular.TTF,
	{bold: true, italic: false}:  gobold.TTF,
	{bold: false, italic: true}:  goitalic.TTF,
	{bold: true, italic: true}:   gobolditalic.TTF,
}

// NewFontMeasurer parses the bundled fonts.
func NewFontMeasurer() (*FontMeasurer, error) {
	fonts := make(map[faceVariant]*opentype.Font, len(fontData))
	for v, data := range fontData {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		fonts[v] = f
	}
	return &FontMeasurer{
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
	}, nil
}

// Measure implements Measurer. The result is rounded up to whole pixels.
func (m *FontMeasurer) Measure(text Text, f Font, bounds geom.Size) geom.Size {
	w, h := extent(m.Wrap(text, f, bounds.Width))
	return geom.Size{Width: math.Ceil(w), Height: math.Ceil(h)}
}

// Wrap returns the wrapped lines of text.
func (m *FontMeasurer) Wrap(text Text, f Font, maxWidth float64) []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	return wrap(text, maxWidth, fontMetrics{m: m, base: f})
}

// Face returns the face used for a run at the given base font. Faces are
// cached and must not be used concurrently with Measure.
func (m *FontMeasurer) Face(f Font, style Run) font.Face {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face(f, style)
}

// Ascent returns the distance from a line's top to its baseline.
func (m *FontMeasurer) Ascent(f Font, style Run) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fixedToFloat(m.face(f, style).Metrics().Ascent)
}

func (m *FontMeasurer) face(f Font, style Run) font.Face {
	key := faceKey{
		variant: faceVariant{bold: style.Bold, italic: style.Italic},
		size:    f.Size * style.scale(),
	}
	if face, ok := m.faces[key]; ok {
		return face
	}

	face, err := opentype.NewFace(m.fonts[key.variant], &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// Only reachable with a non-positive size; fall back to the
		// regular face at 1px so measurement degrades to near zero.
		face, _ = opentype.NewFace(m.fonts[faceVariant{}], &opentype.FaceOptions{Size: 1, DPI: 72})
	}
	m.faces[key] = face
	return face
}

// Close releases cached faces.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, face := range m.faces {
		_ = face.Close()
		delete(m.faces, k)
	}
	return nil
}

type fontMetrics struct {
	m    *FontMeasurer
	base Font
}

func (fm fontMetrics) advance(s string, style Run) float64 {
	return fixedToFloat(font.MeasureString(fm.m.face(fm.base, style), s))
}

func (fm fontMetrics) lineHeight(style Run) float64 {
	return fixedToFloat(fm.m.face(fm.base, style).Metrics().Height)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
