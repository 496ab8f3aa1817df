package toast

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/toastui/internal/device"
	"github.com/jmylchreest/toastui/internal/geom"
)

// View is a toast with identity. It caches the last layout so the host can
// hit-test between layout passes.
type View struct {
	ID      string
	Content Content
	Style   Style

	engine  *Engine
	frame   PlacedFrame
	laidOut bool
}

// NewView creates a view with a fresh ULID.
func NewView(engine *Engine, content Content, style Style) (*View, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}
	return &View{
		ID:      id.String(),
		Content: content,
		Style:   style,
		engine:  engine,
	}, nil
}

// Layout recomputes the frame from scratch and caches it.
func (v *View) Layout(c Constraints, profile device.Profile, o Orientation) PlacedFrame {
	content := v.Content
	if content.FontSize == 0 {
		content.FontSize = v.Style.FontSize
	}
	v.frame = v.engine.Layout(content, c, profile, o)
	v.laidOut = true
	return v.frame
}

// Frame returns the last computed layout, and false before the first pass.
func (v *View) Frame() (PlacedFrame, bool) {
	return v.frame, v.laidOut
}

// HitTest returns v if p lies within the toast's frame, and nil otherwise.
// A view that has never been laid out contains no points.
func (v *View) HitTest(p geom.Point) *View {
	if v == nil || !v.laidOut || !v.frame.Contains(p) {
		return nil
	}
	return v
}
