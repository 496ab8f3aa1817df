package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/toastui/internal/geom"
)

// PlainFormatter formats results as aligned human-readable text.
type PlainFormatter struct{}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

// Format writes one "name: value" line per field.
func (f *PlainFormatter) Format(w io.Writer, r Result) error {
	var sb strings.Builder
	p := r.Placed

	orientation := "portrait"
	if r.Landscape {
		orientation = "landscape"
		if r.ManualRotation {
			orientation += " (manual rotation)"
		}
	}

	if r.ID != "" {
		fmt.Fprintf(&sb, "id:          %s\n", r.ID)
	}
	fmt.Fprintf(&sb, "device:      %s\n", r.Device)
	fmt.Fprintf(&sb, "orientation: %s\n", orientation)
	fmt.Fprintf(&sb, "container:   %s\n", FormatSize(p.Effective))
	fmt.Fprintf(&sb, "font:        %spt\n", Number(p.Font.Size))
	fmt.Fprintf(&sb, "offset:      %s\n", Number(p.BottomOffset))
	fmt.Fprintf(&sb, "frame:       %s\n", FormatRect(p.Frame))
	fmt.Fprintf(&sb, "background:  %s\n", FormatRect(p.Background))
	fmt.Fprintf(&sb, "text:        %s\n", FormatRect(p.Text))
	if r.HasImage {
		fmt.Fprintf(&sb, "image:       %s\n", FormatRect(p.Image))
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}

// Number formats v without trailing zeros, at most two decimals.
func Number(v float64) string {
	return humanize.FtoaWithDigits(v, 2)
}

// FormatSize formats a size as WxH.
func FormatSize(s geom.Size) string {
	return Number(s.Width) + "x" + Number(s.Height)
}

// FormatRect formats a rectangle as WxH+X+Y.
func FormatRect(r geom.Rect) string {
	return fmt.Sprintf("%s+%s+%s", FormatSize(r.Size()), Number(r.X), Number(r.Y))
}
