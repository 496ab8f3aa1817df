package theme

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/toast"
)

// StyleCSS renders the toast style as GTK CSS. It defines the colours themes
// refer to (@toast_bg_color, @toast_fg_color, @toast_shadow_color) and fixes
// the geometry the layout engine assumes: padding, image size and spacing.
func StyleCSS(s toast.Style, insets geom.Insets) string {
	var b strings.Builder

	fmt.Fprintf(&b, "@define-color toast_bg_color %s;\n", rgba(s.Background()))
	fmt.Fprintf(&b, "@define-color toast_fg_color %s;\n", rgba(s.Foreground()))
	fmt.Fprintf(&b, "@define-color toast_shadow_color %s;\n\n", rgba(s.Shadow()))

	b.WriteString(".toast {\n")
	fmt.Fprintf(&b, "  padding: %s %s %s %s;\n", px(insets.Top), px(insets.Right), px(insets.Bottom), px(insets.Left))
	fmt.Fprintf(&b, "  border-radius: %s;\n", px(s.CornerRadius))
	b.WriteString("}\n\n")

	if s.HasShadow() {
		fmt.Fprintf(&b, ".toast.has-shadow {\n  box-shadow: %s %s %s @toast_shadow_color;\n}\n\n",
			px(s.ShadowOffset.X), px(s.ShadowOffset.Y), px(s.ShadowRadius))
	}

	b.WriteString(".toast-label {\n")
	if s.FontSize > 0 {
		fmt.Fprintf(&b, "  font-size: %s;\n", px(s.FontSize))
	}
	b.WriteString("  padding: 0;\n}\n\n")

	b.WriteString(".toast-image {\n")
	fmt.Fprintf(&b, "  min-width: %s;\n  min-height: %s;\n", px(toast.ImageSize), px(toast.ImageSize))
	fmt.Fprintf(&b, "  margin-right: %s;\n", px(toast.ImageSpacing))
	b.WriteString("}\n")

	return b.String()
}

func px(v float64) string {
	return humanize.FtoaWithDigits(v, 2) + "px"
}

func rgba(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, humanize.FtoaWithDigits(float64(c.A)/255, 3))
}
