package widget

import "fmt"

// Color is a linear rgba color. Stylesheets spell colors as "#rrggbb" or
// "#rrggbbaa" strings.
type Color [4]float32

// RGBA returns a color from 8 bit channel values.
func RGBA(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// UnmarshalText parses "#rrggbb" and "#rrggbbaa" hex notation.
func (c *Color) UnmarshalText(text []byte) error {
	s := string(text)
	if len(s) == 0 || s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}
	var r, g, b uint8
	a := uint8(255)
	if _, err := fmt.Sscanf(s[1:7], "%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(s) == 9 {
		if _, err := fmt.Sscanf(s[7:9], "%02x", &a); err != nil {
			return fmt.Errorf("invalid color %q: %w", s, err)
		}
	}
	*c = RGBA(r, g, b, a)
	return nil
}

// ButtonStyle styles the button widget in its three interaction states.
type ButtonStyle struct {
	Normal  Color   `toml:"normal"`
	Hover   Color   `toml:"hover"`
	Pressed Color   `toml:"pressed"`
	Text    Color   `toml:"text"`
	Padding float32 `toml:"padding"`
}

// ScrollStyle styles the scroll area widget.
type ScrollStyle struct {
	Track  Color   `toml:"track"`
	Handle Color   `toml:"handle"`
	Width  float32 `toml:"width"`
}

// Style is a fully parsed stylesheet. The core never parses stylesheet
// files itself; the host asset pipeline hands sessions a ready Style.
type Style struct {
	Background Color       `toml:"background"`
	TextColor  Color       `toml:"text_color"`
	Padding    float32     `toml:"padding"`
	Spacing    float32     `toml:"spacing"`
	Button     ButtonStyle `toml:"button"`
	Scroll     ScrollStyle `toml:"scroll"`

	// Font is attached by the loader after parsing; nil means text
	// widgets lay out with fallback metrics and draw no glyphs.
	Font *Font `toml:"-"`
}

// DefaultStyle is the style a session starts with before a stylesheet
// has been applied.
func DefaultStyle() *Style {
	return &Style{
		Background: RGBA(0, 0, 0, 0),
		TextColor:  RGBA(230, 230, 230, 255),
		Padding:    8,
		Spacing:    4,
		Button: ButtonStyle{
			Normal:  RGBA(55, 55, 65, 255),
			Hover:   RGBA(75, 75, 90, 255),
			Pressed: RGBA(35, 35, 45, 255),
			Text:    RGBA(240, 240, 240, 255),
			Padding: 6,
		},
		Scroll: ScrollStyle{
			Track:  RGBA(30, 30, 35, 255),
			Handle: RGBA(90, 90, 105, 255),
			Width:  8,
		},
	}
}
