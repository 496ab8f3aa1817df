package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/device"
	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/toast"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.875, cfg.Layout.MaxWidthRatio)
	assert.Equal(t, geom.Insets{Top: 6, Left: 10, Bottom: 6, Right: 10}, cfg.Layout.Insets)
	assert.False(t, cfg.Layout.UseSafeAreaForBottomOffset)
	assert.Equal(t, "#000000", cfg.Style.Background)
	assert.Equal(t, 0.7, cfg.Style.BackgroundOpacity)
	assert.Equal(t, 5.0, cfg.Style.CornerRadius)
	assert.Equal(t, 2*time.Second, cfg.Style.Duration.Duration())
	assert.Equal(t, "auto", cfg.Device.Class)
	assert.Equal(t, 320.0, cfg.Screen.Width)
	assert.Equal(t, 568.0, cfg.Screen.Height)
	assert.Equal(t, "portrait", cfg.Screen.Orientation)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[layout]
max_width_ratio = 0.5
use_safe_area_for_bottom_offset = true

[layout.insets]
top = 8
left = 12
bottom = 8
right = 12

[style]
background = "#202020"
background_opacity = 0.9
text = "#ffcc00"
corner_radius = 8
duration = "long"
font_size = 14

[device]
class = "pad"

[screen]
width = 768
height = 1024
safe_area_bottom = 20
orientation = "landscape"
manual_rotation = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Layout.MaxWidthRatio)
	assert.True(t, cfg.Layout.UseSafeAreaForBottomOffset)
	assert.Equal(t, geom.Insets{Top: 8, Left: 12, Bottom: 8, Right: 12}, cfg.Layout.Insets)
	assert.Equal(t, "#202020", cfg.Style.Background)
	assert.Equal(t, 0.9, cfg.Style.BackgroundOpacity)
	assert.Equal(t, 8.0, cfg.Style.CornerRadius)
	assert.Equal(t, toast.DurationLong, cfg.Style.Duration.Duration())
	assert.Equal(t, 14.0, cfg.Style.FontSize)
	assert.Equal(t, device.Pad, cfg.DeviceClass())
	assert.False(t, cfg.AutoDetectDevice())
	assert.Equal(t, toast.Orientation{Landscape: true, ManualRotation: true}, cfg.Orientation())

	c := cfg.ScreenConstraints()
	assert.Equal(t, geom.Size{Width: 768, Height: 1024}, c.Container)
	assert.Equal(t, 20.0, c.SafeAreaBottom)
	assert.True(t, c.UseSafeAreaForBottomOffset)
	assert.Equal(t, 0.5, c.MaxWidthRatio)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[style]
text = "#00ff00"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "#00ff00", cfg.Style.Text)

	// Unchanged fields should have defaults
	assert.Equal(t, 0.875, cfg.Layout.MaxWidthRatio)
	assert.Equal(t, "#000000", cfg.Style.Background)
	assert.Equal(t, "auto", cfg.Device.Class)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"ratio zero", func(c *Config) { c.Layout.MaxWidthRatio = 0 }, true},
		{"ratio above one", func(c *Config) { c.Layout.MaxWidthRatio = 1.5 }, true},
		{"ratio one", func(c *Config) { c.Layout.MaxWidthRatio = 1 }, false},
		{"negative inset", func(c *Config) { c.Layout.Insets.Left = -1 }, true},
		{"bad colour", func(c *Config) { c.Style.Background = "black" }, true},
		{"short colour", func(c *Config) { c.Style.Text = "#fff" }, false},
		{"opacity above one", func(c *Config) { c.Style.BackgroundOpacity = 1.1 }, true},
		{"negative radius", func(c *Config) { c.Style.CornerRadius = -2 }, true},
		{"negative font", func(c *Config) { c.Style.FontSize = -1 }, true},
		{"negative duration", func(c *Config) { c.Style.Duration = Duration(-time.Second) }, true},
		{"unknown device", func(c *Config) { c.Device.Class = "toaster" }, true},
		{"explicit device", func(c *Config) { c.Device.Class = "tv" }, false},
		{"empty device means auto", func(c *Config) { c.Device.Class = "" }, false},
		{"zero screen", func(c *Config) { c.Screen.Width = 0 }, true},
		{"negative safe area", func(c *Config) { c.Screen.SafeAreaBottom = -1 }, true},
		{"bad orientation", func(c *Config) { c.Screen.Orientation = "sideways" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[layout]\nmax_width_ratio = 2.0\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_width_ratio")
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"short", toast.DurationShort, false},
		{"LONG", toast.DurationLong, false},
		{"5s", 5 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"1500", 1500 * time.Millisecond, false},
		{"0", 0, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Layout.MaxWidthRatio = 0.6
	cfg.Style.Duration = Duration(toast.DurationLong)
	cfg.Device.Class = "desktop"

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.6, loaded.Layout.MaxWidthRatio)
	assert.Equal(t, toast.DurationLong, loaded.Style.Duration.Duration())
	assert.Equal(t, device.Desktop, loaded.DeviceClass())
}

func TestConfig_ToastStyle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Style.Text = "#ff0000"
	cfg.Style.ShadowOpacity = 0.5
	cfg.Style.FontSize = 15

	style := cfg.ToastStyle()
	fg := style.Foreground()
	assert.Equal(t, uint8(255), fg.R)
	assert.Equal(t, uint8(0), fg.G)
	assert.Equal(t, 0.5, style.ShadowOpacity)
	assert.Equal(t, geom.Point{X: 0, Y: -3}, style.ShadowOffset)
	assert.Equal(t, 15.0, style.FontSize)
	assert.Equal(t, toast.DurationShort, style.Duration)

	cfg.Style.Background = "not-a-colour"
	assert.Equal(t, toast.DefaultStyle().BackgroundColor, cfg.ToastStyle().BackgroundColor)
}

func TestConfig_DeviceClassAuto(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.AutoDetectDevice())
	assert.Equal(t, device.Unknown, cfg.DeviceClass())

	cfg.Device.Class = "AUTO"
	assert.True(t, cfg.AutoDetectDevice())
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/toastui/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, ConfigPath(), filepath.Join("toastui", "config.toml"))
}
