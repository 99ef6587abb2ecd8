// Package paint draws anti-aliased fills and strokes onto an RGBA image.
package paint

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"boxview/pkg/geometry"
)

// Stroke describes how lines are drawn.
type Stroke struct {
	Width      float64
	MiterLimit float64
	// Dashes is an on/off pattern. Nil draws a solid line.
	Dashes []float64
}

// Canvas wraps an RGBA image with a rasterizer. It is not safe for
// concurrent use.
type Canvas struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher
}

// New returns a canvas that paints into img.
func New(img *image.RGBA) *Canvas {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	return &Canvas{
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(b.Dx(), b.Dy(), scanner),
		dasher:  rasterx.NewDasher(b.Dx(), b.Dy(), scanner),
	}
}

// NewSize allocates a w x h image and returns a canvas on it.
func NewSize(w, h int) *Canvas {
	return New(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// Image returns the target image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Fill replaces every pixel with clr.
func (c *Canvas) Fill(clr color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(clr), image.Point{}, draw.Src)
}

// FillRect replaces the pixels of r with clr.
func (c *Canvas) FillRect(r image.Rectangle, clr color.Color) {
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(clr), image.Point{}, draw.Src)
}

// FillCircle composites a filled circle. paint is a color.Color or a
// rasterx.ColorFunc.
func (c *Canvas) FillCircle(center geometry.Point, radius float64, paint interface{}) {
	if radius <= 0 {
		return
	}
	rasterx.AddCircle(center.X, center.Y, radius, c.filler)
	c.flush(c.filler, paint)
}

// FillBox composites a filled axis-aligned rectangle.
func (c *Canvas) FillBox(r geometry.Rect, paint interface{}) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	rasterx.AddRect(r.X, r.Y, r.X+r.Width, r.Y+r.Height, 0, c.filler)
	c.flush(c.filler, paint)
}

// Line strokes a straight line from a to b.
func (c *Canvas) Line(a, b geometry.Point, clr color.Color, s Stroke) {
	width := s.Width
	if width <= 0 {
		width = 1
	}
	c.dasher.SetStroke(
		fixed.Int26_6(width*64),
		fixed.Int26_6(s.MiterLimit*64),
		rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap, rasterx.Round,
		s.Dashes, 0,
	)
	c.dasher.Start(rasterx.ToFixedP(a.X, a.Y))
	c.dasher.Line(rasterx.ToFixedP(b.X, b.Y))
	c.dasher.Stop(false)
	c.flush(c.dasher, clr)
}

type drawer interface {
	SetColor(interface{})
	Draw()
	Clear()
}

func (c *Canvas) flush(d drawer, paint interface{}) {
	d.SetColor(paint)
	d.Draw()
	d.Clear()
}
