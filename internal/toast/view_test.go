package toast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/geom"
)

func TestNewView_AssignsULID(t *testing.T) {
	a, err := NewView(newEngine(), textContent("a"), DefaultStyle())
	require.NoError(t, err)
	b, err := NewView(newEngine(), textContent("b"), DefaultStyle())
	require.NoError(t, err)

	assert.Len(t, a.ID, 26)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestView_HitTest(t *testing.T) {
	v, err := NewView(newEngine(), textContent("Hi"), DefaultStyle())
	require.NoError(t, err)

	inside := geom.Point{X: 160, Y: 525}

	_, ok := v.Frame()
	assert.False(t, ok)
	assert.Nil(t, v.HitTest(inside), "no hits before the first layout")

	v.Layout(iphoneSE(), phone(), Portrait)
	assert.Same(t, v, v.HitTest(inside))
	assert.Nil(t, v.HitTest(geom.Point{X: 0, Y: 0}))

	// Rotating moves the toast, so the old point misses.
	v.Layout(iphoneSE(), phone(), Orientation{Landscape: true, ManualRotation: true})
	assert.Nil(t, v.HitTest(inside))
}

func TestView_NilHitTest(t *testing.T) {
	var v *View
	assert.Nil(t, v.HitTest(geom.Point{}))
}

func TestView_StyleFontSize(t *testing.T) {
	style := DefaultStyle()
	style.FontSize = 18
	v, err := NewView(newEngine(), textContent("Hi"), style)
	require.NoError(t, err)

	frame := v.Layout(iphoneSE(), phone(), Portrait)
	assert.Equal(t, 18.0, frame.Font.Size)

	v.Content.FontSize = 10
	frame = v.Layout(iphoneSE(), phone(), Portrait)
	assert.Equal(t, 10.0, frame.Font.Size)
}

func TestView_LayoutRecomputesFromScratch(t *testing.T) {
	v, err := NewView(newEngine(), textContent("Hi"), DefaultStyle())
	require.NoError(t, err)

	first := v.Layout(iphoneSE(), phone(), Portrait)
	v.Content = textContent("Hello there")
	second := v.Layout(iphoneSE(), phone(), Portrait)
	v.Content = textContent("Hi")
	third := v.Layout(iphoneSE(), phone(), Portrait)

	assert.NotEqual(t, first.Frame, second.Frame)
	assert.Equal(t, first, third)
	cached, ok := v.Frame()
	assert.True(t, ok)
	assert.Equal(t, third, cached)
}

func TestStyle_Colors(t *testing.T) {
	s := DefaultStyle()
	bg := s.Background()
	assert.Equal(t, uint8(0), bg.R)
	assert.InDelta(t, 178.5, float64(bg.A), 1)
	fg := s.Foreground()
	assert.Equal(t, uint8(255), fg.R)
	assert.Equal(t, uint8(255), fg.A)
	assert.False(t, s.HasShadow())

	s.ShadowOpacity = 2
	assert.Equal(t, uint8(255), s.Shadow().A)
	assert.True(t, s.HasShadow())
}
