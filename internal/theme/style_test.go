package theme

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/toastui/internal/toast"
)

func TestStyleCSS_Default(t *testing.T) {
	css := StyleCSS(toast.DefaultStyle(), toast.DefaultTextInsets)

	assert.Contains(t, css, "@define-color toast_bg_color rgba(0, 0, 0, 0.698);")
	assert.Contains(t, css, "@define-color toast_fg_color rgba(255, 255, 255, 1);")
	assert.Contains(t, css, "padding: 6px 10px 6px 10px;")
	assert.Contains(t, css, "border-radius: 5px;")
	assert.Contains(t, css, "min-width: 24px;")
	assert.Contains(t, css, "margin-right: 8px;")
	assert.NotContains(t, css, "box-shadow", "shadow opacity defaults to zero")
	assert.NotContains(t, css, "font-size")
}

func TestStyleCSS_ShadowAndFont(t *testing.T) {
	style := toast.DefaultStyle()
	style.ShadowOpacity = 0.5
	style.FontSize = 14.5
	style.TextColor = colorful.Color{R: 1, G: 0.5, B: 0}

	css := StyleCSS(style, toast.DefaultTextInsets)

	assert.Contains(t, css, ".toast.has-shadow {\n  box-shadow: 0px -3px 3px @toast_shadow_color;\n}")
	assert.Contains(t, css, "@define-color toast_shadow_color rgba(0, 0, 0, 0.502);")
	assert.Contains(t, css, "font-size: 14.5px;")
	assert.Contains(t, css, "rgba(255, 128, 0, 1)")
}
