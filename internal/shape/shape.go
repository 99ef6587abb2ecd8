// Package shape projects compartment bodies, expressed as fractions of the
// simulation box, onto a pixel viewport.
package shape

import (
	"boxview/internal/viewport"
	"boxview/pkg/colorutil"
	"boxview/pkg/geometry"
)

// Kind identifies the body variant.
type Kind int

const (
	// KindSphere is a spherical compartment drawn as a circle.
	KindSphere Kind = iota
	// KindXYLayer is a slab compartment drawn as a box.
	KindXYLayer
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindXYLayer:
		return "xy-layer"
	default:
		return "unknown"
	}
}

// Body is a compartment shape in ratio space. It is implemented only by
// Circle and Box.
type Body interface {
	Kind() Kind
	volume() float64
}

// Circle is a sphere seen from the front. CenterX and Radius are fractions of
// the viewport width, CenterY a fraction of its height.
type Circle struct {
	CenterX     float64 `json:"centerX"`
	CenterY     float64 `json:"centerY"`
	Radius      float64 `json:"radius"`
	Attenuation float64 `json:"attenuation"`
	Selected    bool    `json:"selected"`
	Volume      float64 `json:"volume"`
}

// Kind implements Body.
func (Circle) Kind() Kind { return KindSphere }

func (c Circle) volume() float64 { return c.Volume }

// Box is an xy-layer seen from the front. Horizontal fields are fractions of
// the viewport width, vertical fields fractions of its height.
type Box struct {
	CenterX     float64 `json:"centerX"`
	CenterY     float64 `json:"centerY"`
	HalfWidth   float64 `json:"halfWidth"`
	HalfHeight  float64 `json:"halfHeight"`
	Attenuation float64 `json:"attenuation"`
	Selected    bool    `json:"selected"`
	Volume      float64 `json:"volume"`
}

// Kind implements Body.
func (Box) Kind() Kind { return KindXYLayer }

func (b Box) volume() float64 { return b.Volume }

// Primitive is a body projected into pixel space.
type Primitive struct {
	Kind Kind
	// Index is the position of the source body in the model list.
	Index  int
	Center geometry.Point
	// Radius is set for circles.
	Radius float64
	// HalfWidth and HalfHeight are set for boxes.
	HalfWidth   float64
	HalfHeight  float64
	Attenuation float64
	Selected    bool
}

// Bounds returns the primitive's bounding rectangle.
func (p Primitive) Bounds() geometry.Rect {
	if p.Kind == KindSphere {
		return geometry.RectAround(p.Center, p.Radius, p.Radius)
	}
	return geometry.RectAround(p.Center, p.HalfWidth, p.HalfHeight)
}

// Contains reports whether the pixel point lies on the primitive. Circles
// include their rim, boxes only their interior.
func (p Primitive) Contains(pt geometry.Point) bool {
	if p.Kind == KindSphere {
		return geometry.Distance(p.Center, pt) <= p.Radius
	}
	return p.Bounds().ContainsStrict(pt)
}

// Project maps bodies onto the viewport in list order. Bodies without volume
// are skipped.
func Project(bodies []Body, vp viewport.Viewport) []Primitive {
	w, h := float64(vp.Width), float64(vp.Height)
	origin := geometry.Pt(float64(vp.X), float64(vp.Y))

	prims := make([]Primitive, 0, len(bodies))
	for i, b := range bodies {
		if b == nil || b.volume() <= 0 {
			continue
		}
		switch body := b.(type) {
		case Circle:
			prims = append(prims, Primitive{
				Kind:        KindSphere,
				Index:       i,
				Center:      geometry.Pt(origin.X+body.CenterX*w, origin.Y+body.CenterY*h),
				Radius:      body.Radius * w,
				Attenuation: colorutil.Clamp01(body.Attenuation),
				Selected:    body.Selected,
			})
		case Box:
			prims = append(prims, Primitive{
				Kind:        KindXYLayer,
				Index:       i,
				Center:      geometry.Pt(origin.X+body.CenterX*w, origin.Y+body.CenterY*h),
				HalfWidth:   body.HalfWidth * w,
				HalfHeight:  body.HalfHeight * h,
				Attenuation: colorutil.Clamp01(body.Attenuation),
				Selected:    body.Selected,
			})
		}
	}
	return prims
}

// HitTest returns the model index of the top-most primitive containing pt.
// Later primitives are painted over earlier ones, so the list is searched
// from the end.
func HitTest(prims []Primitive, pt geometry.Point) (int, bool) {
	for i := len(prims) - 1; i >= 0; i-- {
		if prims[i].Contains(pt) {
			return prims[i].Index, true
		}
	}
	return -1, false
}
