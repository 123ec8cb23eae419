package rowan

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit-per-channel RGB color as sent on the wire.
// Terminals have no alpha channel; transparency is expressed by simply not
// drawing.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{255, 255, 255}
	ColorRed   = Color{220, 60, 50}
	ColorGreen = Color{80, 200, 120}
	ColorBlue  = Color{70, 130, 220}
	ColorGray  = Color{128, 128, 128}
)

// Hex parses a "#rrggbb" color string.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("rowan: parse color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// Blend interpolates between c and other in a perceptual color space.
// t is clamped to [0, 1]; t=0 returns c, t=1 returns other.
func (c Color) Blend(other Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	return fromColorful(c.toColorful().BlendLab(other.toColorful(), t).Clamped())
}

// String returns the color in "#rrggbb" form.
func (c Color) String() string {
	return c.toColorful().Hex()
}

// UnmarshalText parses a "#rrggbb" string. This is what lets theme files
// spell colors as plain strings.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := Hex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return Color{r, g, b}
}
