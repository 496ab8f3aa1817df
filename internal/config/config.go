// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/toastui/internal/device"
	"github.com/jmylchreest/toastui/internal/geom"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Default configuration values.
const (
	DefaultBackground   = "#000000"
	DefaultTextColor    = "#ffffff"
	DefaultShadowColor  = "#000000"
	DefaultDeviceClass  = "auto"
	DefaultTheme        = "default"
	DefaultScreenWidth  = 320
	DefaultScreenHeight = 568

	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Config represents the toastui configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Style  StyleConfig  `toml:"style"`
	Device DeviceConfig `toml:"device"`
	Screen ScreenConfig `toml:"screen"`
}

// LayoutConfig holds the layout constraints that do not come from the screen.
type LayoutConfig struct {
	MaxWidthRatio              float64     `toml:"max_width_ratio"` // Fraction of container width
	Insets                     geom.Insets `toml:"insets"`          // Text padding
	UseSafeAreaForBottomOffset bool        `toml:"use_safe_area_for_bottom_offset"`
}

// StyleConfig holds appearance settings.
type StyleConfig struct {
	Background        string   `toml:"background"` // #rrggbb
	BackgroundOpacity float64  `toml:"background_opacity"`
	Text              string   `toml:"text"` // #rrggbb
	CornerRadius      float64  `toml:"corner_radius"`
	ShadowColor       string   `toml:"shadow_color"`
	ShadowOpacity     float64  `toml:"shadow_opacity"`
	ShadowOffsetX     float64  `toml:"shadow_offset_x"`
	ShadowOffsetY     float64  `toml:"shadow_offset_y"`
	ShadowRadius      float64  `toml:"shadow_radius"`
	FontSize          float64  `toml:"font_size"` // 0 = device default
	Duration          Duration `toml:"duration"`  // "short", "long", "2s", or milliseconds
	Theme             string   `toml:"theme"`     // GTK theme name without .css extension
}

// DeviceConfig selects the device profile.
type DeviceConfig struct {
	Class string `toml:"class"` // "auto" or a device class name
}

// ScreenConfig describes the container used when no live window supplies one.
type ScreenConfig struct {
	Width          float64 `toml:"width"`
	Height         float64 `toml:"height"`
	SafeAreaBottom float64 `toml:"safe_area_bottom"`
	Orientation    string  `toml:"orientation"` // "portrait" or "landscape"
	ManualRotation bool    `toml:"manual_rotation"`
}

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports "short", "long", Go duration strings like "2s" or "1m30s", and
// integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))

	switch strings.ToLower(s) {
	case "short":
		*d = Duration(toast.DurationShort)
		return nil
	case "long":
		*d = Duration(toast.DurationLong)
		return nil
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be 'short', 'long', like '2s', or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			MaxWidthRatio:              toast.DefaultMaxWidthRatio,
			Insets:                     toast.DefaultTextInsets,
			UseSafeAreaForBottomOffset: false,
		},
		Style: StyleConfig{
			Background:        DefaultBackground,
			BackgroundOpacity: 0.7,
			Text:              DefaultTextColor,
			CornerRadius:      5,
			ShadowColor:       DefaultShadowColor,
			ShadowOpacity:     0,
			ShadowOffsetX:     0,
			ShadowOffsetY:     -3,
			ShadowRadius:      3,
			FontSize:          0,
			Duration:          Duration(toast.DurationShort),
			Theme:             DefaultTheme,
		},
		Device: DeviceConfig{
			Class: DefaultDeviceClass,
		},
		Screen: ScreenConfig{
			Width:          DefaultScreenWidth,
			Height:         DefaultScreenHeight,
			SafeAreaBottom: 0,
			Orientation:    OrientationPortrait,
			ManualRotation: false,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toastui", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed and writes atomically via a temp file.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Layout.MaxWidthRatio <= 0 || c.Layout.MaxWidthRatio > 1 {
		return fmt.Errorf("max_width_ratio must be in (0, 1], got %v", c.Layout.MaxWidthRatio)
	}
	in := c.Layout.Insets
	if in.Top < 0 || in.Left < 0 || in.Bottom < 0 || in.Right < 0 {
		return fmt.Errorf("insets must not be negative, got %+v", in)
	}

	for name, hex := range map[string]string{
		"background":   c.Style.Background,
		"text":         c.Style.Text,
		"shadow_color": c.Style.ShadowColor,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("invalid %s colour %q: %w", name, hex, err)
		}
	}
	for name, v := range map[string]float64{
		"background_opacity": c.Style.BackgroundOpacity,
		"shadow_opacity":     c.Style.ShadowOpacity,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
		}
	}
	if c.Style.CornerRadius < 0 || c.Style.ShadowRadius < 0 {
		return fmt.Errorf("radii must not be negative")
	}
	if c.Style.FontSize < 0 {
		return fmt.Errorf("font_size must not be negative, got %v", c.Style.FontSize)
	}
	if c.Style.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %s", c.Style.Duration.Duration())
	}

	if !c.AutoDetectDevice() {
		if _, err := device.ParseClass(c.Device.Class); err != nil {
			return fmt.Errorf("invalid device class: %w", err)
		}
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.SafeAreaBottom < 0 {
		return fmt.Errorf("safe_area_bottom must not be negative, got %v", c.Screen.SafeAreaBottom)
	}
	switch c.Screen.Orientation {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("invalid orientation %q, must be %q or %q",
			c.Screen.Orientation, OrientationPortrait, OrientationLandscape)
	}

	return nil
}

// AutoDetectDevice reports whether the device class should be detected.
func (c *Config) AutoDetectDevice() bool {
	return c.Device.Class == "" || strings.EqualFold(c.Device.Class, DefaultDeviceClass)
}

// DeviceClass returns the configured device class. With "auto" it returns
// device.Unknown; callers detect the class themselves.
func (c *Config) DeviceClass() device.Class {
	if c.AutoDetectDevice() {
		return device.Unknown
	}
	class, err := device.ParseClass(c.Device.Class)
	if err != nil {
		return device.Unknown
	}
	return class
}

// Constraints returns layout constraints for the given container and safe
// area.
func (c *Config) Constraints(container geom.Size, safeAreaBottom float64) toast.Constraints {
	return toast.Constraints{
		Container:                  container,
		MaxWidthRatio:              c.Layout.MaxWidthRatio,
		TextInsets:                 c.Layout.Insets,
		UseSafeAreaForBottomOffset: c.Layout.UseSafeAreaForBottomOffset,
		SafeAreaBottom:             safeAreaBottom,
	}
}

// ScreenConstraints returns layout constraints for the configured screen.
func (c *Config) ScreenConstraints() toast.Constraints {
	return c.Constraints(geom.Size{Width: c.Screen.Width, Height: c.Screen.Height}, c.Screen.SafeAreaBottom)
}

// Orientation returns the configured screen orientation.
func (c *Config) Orientation() toast.Orientation {
	return toast.Orientation{
		Landscape:      c.Screen.Orientation == OrientationLandscape,
		ManualRotation: c.Screen.ManualRotation,
	}
}

// ToastStyle converts the style section. Colours that fail to parse fall back
// to the defaults; Validate reports them.
func (c *Config) ToastStyle() toast.Style {
	def := toast.DefaultStyle()
	return toast.Style{
		BackgroundColor:   parseColor(c.Style.Background, def.BackgroundColor),
		BackgroundOpacity: c.Style.BackgroundOpacity,
		TextColor:         parseColor(c.Style.Text, def.TextColor),
		CornerRadius:      c.Style.CornerRadius,
		ShadowColor:       parseColor(c.Style.ShadowColor, def.ShadowColor),
		ShadowOpacity:     c.Style.ShadowOpacity,
		ShadowOffset:      geom.Point{X: c.Style.ShadowOffsetX, Y: c.Style.ShadowOffsetY},
		ShadowRadius:      c.Style.ShadowRadius,
		FontSize:          c.Style.FontSize,
		Duration:          c.Style.Duration.Duration(),
	}
}

func parseColor(hex string, fallback colorful.Color) colorful.Color {
	col, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return col
}
