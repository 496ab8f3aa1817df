// Package measure provides the text-measurement services the toast layout
// delegates to: given text, a font and a bounding width, report the smallest
// box the wrapped text fits in.
package measure

import (
	"math"
	"strings"

	"github.com/jmylchreest/toastui/internal/geom"
)

// Run is a span of text sharing one set of attributes.
type Run struct {
	Text   string  `json:"text" yaml:"text"`
	Bold   bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
	Scale  float64 `json:"scale,omitempty" yaml:"scale,omitempty"` // 0 = 1.0
}

// style returns the run without its text, used as a map key.
func (r Run) style() Run {
	return Run{Bold: r.Bold, Italic: r.Italic, Scale: r.scale()}
}

func (r Run) scale() float64 {
	if r.Scale <= 0 {
		return 1
	}
	return r.Scale
}

// Text is optionally attributed text. Plain text is a single unstyled run.
type Text struct {
	Runs []Run `json:"runs,omitempty" yaml:"runs,omitempty"`
}

// Plain wraps s as unattributed text. An empty string yields empty text.
func Plain(s string) Text {
	if s == "" {
		return Text{}
	}
	return Text{Runs: []Run{{Text: s}}}
}

// String returns the text without attributes.
func (t Text) String() string {
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// IsEmpty reports whether there is no text at all.
func (t Text) IsEmpty() bool {
	for _, r := range t.Runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

// IsAttributed reports whether any run carries attributes.
func (t Text) IsAttributed() bool {
	for _, r := range t.Runs {
		if r.Bold || r.Italic || (r.Scale > 0 && r.Scale != 1) {
			return true
		}
	}
	return false
}

// Font is the base font a text is measured with. Run scales multiply Size.
type Font struct {
	Size float64 `json:"size" yaml:"size"`
}

// Unbounded is the dimension to pass for an unconstrained measurement.
var Unbounded = math.Inf(1)

// Measurer measures text. Only bounds.Width constrains the result: lines wrap
// at word boundaries and the line count is unlimited, so the returned height
// may exceed bounds.Height. Pass Unbounded for no width limit.
type Measurer interface {
	Measure(text Text, font Font, bounds geom.Size) geom.Size
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text Text, font Font, bounds geom.Size) geom.Size

// Measure calls f.
func (f MeasureFunc) Measure(text Text, font Font, bounds geom.Size) geom.Size {
	return f(text, font, bounds)
}
