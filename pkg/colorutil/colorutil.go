// Package colorutil provides shared color utilities for the box viewer.
package colorutil

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Common colors used throughout the application.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	Beige  = color.RGBA{R: 245, G: 245, B: 220, A: 255}
)

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Attenuate moves every channel of c toward target by the fraction a,
// truncating each step toward c. a = 0 returns c, a = 1 returns target.
// The result is opaque.
func Attenuate(c, target color.RGBA, a float64) color.RGBA {
	a = Clamp01(a)
	step := func(from, to uint8) uint8 {
		return uint8(int(from) - int(a*float64(int(from)-int(to))))
	}
	return color.RGBA{
		R: step(c.R, target.R),
		G: step(c.G, target.G),
		B: step(c.B, target.B),
		A: 255,
	}
}

// Lerp interpolates between two colors channel by channel, t in [0, 1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = Clamp01(t)
	mix := func(from, to uint8) uint8 {
		return uint8(math.Round(float64(from) + t*(float64(to)-float64(from))))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// WithAlpha returns c as a non-premultiplied color with the given opacity.
func WithAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(255 * Clamp01(alpha)))}
}

// Hex is an opaque color written as "#rrggbb" in configuration.
type Hex color.RGBA

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// RGBA returns the color value.
func (h Hex) RGBA() color.RGBA {
	return color.RGBA(h)
}

func (h Hex) String() string {
	return fmt.Sprintf("#%02x%02x%02x", h.R, h.G, h.B)
}

// Decode implements envconfig.Decoder.
func (h *Hex) Decode(value string) error {
	c, err := ParseHex(value)
	if err != nil {
		return err
	}
	*h = Hex(c)
	return nil
}

// MarshalJSON writes the color as a "#rrggbb" string.
func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON reads a "#rrggbb" string.
func (h *Hex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return h.Decode(s)
}
