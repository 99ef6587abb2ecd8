// Package shade builds the colour gradients used to paint projected
// compartments.
package shade

import (
	"image/color"

	"github.com/srwiley/rasterx"

	"boxview/internal/shape"
	"boxview/pkg/colorutil"
	"boxview/pkg/geometry"
)

const (
	// DefaultGradientAttenuation is the palette contrast used when none is configured.
	DefaultGradientAttenuation = 0.7
	// FocusFactor places the radial centre this fraction of the radius from
	// the top-left corner of the circle's bounding square.
	FocusFactor = 0.7
	// RadiusMagnification scales the radial gradient beyond the circle.
	RadiusMagnification = 1.5
)

// Offsets are the stop positions shared by every palette.
var Offsets = [3]float64{0, 0.1, 1}

// Stop is a single gradient colour stop.
type Stop struct {
	Offset float64
	Color  color.RGBA
}

// Gradient is an ordered list of stops with non-decreasing offsets in [0, 1].
type Gradient struct {
	Stops []Stop
}

// ColorAt returns the colour at position t. Positions outside the stop range
// take the colour of the nearest end stop.
func (g Gradient) ColorAt(t float64) color.RGBA {
	if len(g.Stops) == 0 {
		return color.RGBA{}
	}
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		s0, s1 := g.Stops[i-1], g.Stops[i]
		if t > s1.Offset {
			continue
		}
		span := s1.Offset - s0.Offset
		if span <= 0 {
			return s1.Color
		}
		return colorutil.Lerp(s0.Color, s1.Color, (t-s0.Offset)/span)
	}
	return last.Color
}

// Blend moves c toward black by the attenuation a, clamped to [0, 1].
func Blend(c color.RGBA, a float64) color.RGBA {
	return colorutil.Attenuate(c, colorutil.Black, a)
}

// Shader turns projected primitives into gradients.
type Shader struct {
	SphereColor         color.RGBA
	XYLayerColor        color.RGBA
	SelectedColor       color.RGBA
	GradientAttenuation float64
	Transparency        float64
}

// NewShader returns a shader with the default palette colours.
func NewShader(gradientAttenuation, transparency float64) Shader {
	return Shader{
		SphereColor:         colorutil.Green,
		XYLayerColor:        colorutil.Blue,
		SelectedColor:       colorutil.White,
		GradientAttenuation: colorutil.Clamp01(gradientAttenuation),
		Transparency:        colorutil.Clamp01(transparency),
	}
}

// Alpha is the global compositing opacity.
func (s Shader) Alpha() float64 {
	return 1 - colorutil.Clamp01(s.Transparency)
}

// Palette returns the three unattenuated stop colours for a body.
func (s Shader) Palette(kind shape.Kind, selected bool) [3]color.RGBA {
	base := s.SphereColor
	if kind == shape.KindXYLayer {
		base = s.XYLayerColor
	}
	if selected {
		base = s.SelectedColor
	}
	ga := colorutil.Clamp01(s.GradientAttenuation)
	return [3]color.RGBA{
		colorutil.Attenuate(colorutil.White, base, 1-ga),
		base,
		colorutil.Attenuate(base, colorutil.Black, ga),
	}
}

// Build returns the gradient for a body of the given kind, darkened by its
// attenuation.
func (s Shader) Build(kind shape.Kind, selected bool, attenuation float64) Gradient {
	palette := s.Palette(kind, selected)
	stops := make([]Stop, len(palette))
	for i, c := range palette {
		stops[i] = Stop{Offset: Offsets[i], Color: Blend(c, attenuation)}
	}
	return Gradient{Stops: stops}
}

// Radial is a circular gradient whose centre is shifted up and to the left
// of the circle it paints.
type Radial struct {
	Center   geometry.Point
	Radius   float64
	Gradient Gradient
}

// Radial returns the gradient for a projected circle.
func (s Shader) Radial(p shape.Primitive) Radial {
	corner := p.Bounds().Min()
	return Radial{
		Center:   geometry.Pt(corner.X+p.Radius*FocusFactor, corner.Y+p.Radius*FocusFactor),
		Radius:   p.Radius * RadiusMagnification,
		Gradient: s.Build(p.Kind, p.Selected, p.Attenuation),
	}
}

// ColorAt returns the colour at a pixel-space point.
func (r Radial) ColorAt(pt geometry.Point) color.RGBA {
	if r.Radius <= 0 {
		return r.Gradient.ColorAt(1)
	}
	return r.Gradient.ColorAt(geometry.Distance(r.Center, pt) / r.Radius)
}

// ColorFunc samples the gradient at pixel centres with the given opacity.
func (r Radial) ColorFunc(alpha float64) rasterx.ColorFunc {
	return func(x, y int) color.Color {
		return colorutil.WithAlpha(r.ColorAt(geometry.Pt(float64(x)+0.5, float64(y)+0.5)), alpha)
	}
}

// Band is one vertical run of a linear gradient, from Start (offset 0) to
// End (offset 1).
type Band struct {
	Start, End float64
}

// T returns the gradient position of y within the band.
func (b Band) T(y float64) float64 {
	if b.End == b.Start {
		return 1
	}
	return (y - b.Start) / (b.End - b.Start)
}

// Linear paints a box with two bands that meet at its horizontal midline.
// Each band runs from the pale first stop outside the box to the base colour
// at the midline.
type Linear struct {
	Midline  float64
	Upper    Band
	Lower    Band
	Gradient Gradient
}

// Linear returns the gradient for a projected box.
func (s Shader) Linear(p shape.Primitive) Linear {
	b := p.Bounds()
	top, bottom := b.Y, b.Y+b.Height
	stops := s.Build(p.Kind, p.Selected, p.Attenuation).Stops
	return Linear{
		Midline: p.Center.Y,
		Upper:   Band{Start: top - p.HalfHeight, End: p.Center.Y},
		Lower:   Band{Start: bottom + p.HalfHeight, End: p.Center.Y},
		Gradient: Gradient{Stops: []Stop{
			{Offset: 0, Color: stops[0].Color},
			{Offset: 1, Color: stops[1].Color},
		}},
	}
}

// ColorAt returns the colour at the given row.
func (l Linear) ColorAt(y float64) color.RGBA {
	if y < l.Midline {
		return l.Gradient.ColorAt(l.Upper.T(y))
	}
	return l.Gradient.ColorAt(l.Lower.T(y))
}

// ColorFunc samples the gradient at pixel centres with the given opacity.
func (l Linear) ColorFunc(alpha float64) rasterx.ColorFunc {
	return func(_, y int) color.Color {
		return colorutil.WithAlpha(l.ColorAt(float64(y)+0.5), alpha)
	}
}
