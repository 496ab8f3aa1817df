package device

import (
	"errors"
	"fmt"
	"strings"
)

// Class identifies the kind of device a toast is shown on.
type Class int

const (
	Unknown Class = iota
	Phone
	Pad
	TV
	CarPlay
	Desktop
	Headset
)

// ErrUnknownClass is returned by ParseClass for names outside the table.
var ErrUnknownClass = errors.New("unknown device class")

// Profile holds the per-device defaults used by the layout engine.
type Profile struct {
	FontSize              float64 `json:"font_size" yaml:"font_size"`
	BottomOffsetPortrait  float64 `json:"bottom_offset_portrait" yaml:"bottom_offset_portrait"`
	BottomOffsetLandscape float64 `json:"bottom_offset_landscape" yaml:"bottom_offset_landscape"`
}

var phoneProfile = Profile{FontSize: 12, BottomOffsetPortrait: 30, BottomOffsetLandscape: 20}

// profiles is the fixed class table. Unknown is listed explicitly so that the
// fallback is part of the table rather than a default branch.
var profiles = map[Class]Profile{
	Unknown: phoneProfile,
	Phone:   phoneProfile,
	Pad:     {FontSize: 16, BottomOffsetPortrait: 60, BottomOffsetLandscape: 40},
	TV:      {FontSize: 20, BottomOffsetPortrait: 90, BottomOffsetLandscape: 60},
	CarPlay: {FontSize: 12, BottomOffsetPortrait: 30, BottomOffsetLandscape: 20},
	Desktop: {FontSize: 16, BottomOffsetPortrait: 60, BottomOffsetLandscape: 40},
	Headset: {FontSize: 16, BottomOffsetPortrait: 60, BottomOffsetLandscape: 40},
}

var classNames = map[Class]string{
	Unknown: "unknown",
	Phone:   "phone",
	Pad:     "pad",
	TV:      "tv",
	CarPlay: "carplay",
	Desktop: "desktop",
	Headset: "headset",
}

// aliases accepts the platform names some users will reach for first.
var aliases = map[string]Class{
	"mac":         Desktop,
	"vision":      Headset,
	"tablet":      Pad,
	"handset":     Phone,
	"unspecified": Unknown,
}

// Classes returns every class in table order.
func Classes() []Class {
	return []Class{Phone, Pad, TV, CarPlay, Desktop, Headset, Unknown}
}

// ProfileFor returns the profile for c. Values outside the table resolve to
// the phone profile.
func ProfileFor(c Class) Profile {
	if p, ok := profiles[c]; ok {
		return p
	}
	return phoneProfile
}

// Profile returns the class's profile.
func (c Class) Profile() Profile {
	return ProfileFor(c)
}

// String returns the lower-case class name.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseClass parses a class name, case-insensitively.
func ParseClass(s string) (Class, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range classNames {
		if n == name {
			return c, nil
		}
	}
	if c, ok := aliases[name]; ok {
		return c, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}
