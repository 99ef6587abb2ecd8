package surface

import (
	"image"
	"image/color"
	"sync/atomic"

	"boxview/internal/compartment"
	"boxview/internal/config"
	bximage "boxview/internal/image"
	"boxview/internal/paint"
	"boxview/internal/shade"
	"boxview/internal/shape"
	"boxview/internal/viewport"
	"boxview/pkg/geometry"
)

// BoxSurface paints the compartments of a model inside an aspect-preserving
// viewport. Rendering must happen on a single goroutine; model changes may
// arrive from any goroutine.
type BoxSurface struct {
	model       *compartment.Model
	calc        *viewport.Calculator
	shader      shade.Shader
	background  color.RGBA
	unsubscribe func()

	dirty atomic.Bool
	prims []shape.Primitive

	width, height int

	// OnRepaint is called when the model changes.
	OnRepaint func()
}

// NewBoxSurface creates a surface observing m.
func NewBoxSurface(m *compartment.Model, cfg config.Config) *BoxSurface {
	s := &BoxSurface{
		model:      m,
		calc:       viewport.NewCalculator(m.Ratio()),
		shader:     cfg.Shader(),
		background: cfg.BackgroundColor.RGBA(),
	}
	s.dirty.Store(true)
	s.unsubscribe = m.Subscribe(s)
	return s
}

// Close stops observing the model.
func (s *BoxSurface) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// HandleChange implements compartment.Observer.
func (s *BoxSurface) HandleChange(compartment.Event) {
	s.dirty.Store(true)
	if s.OnRepaint != nil {
		s.OnRepaint()
	}
}

// Resize recomputes the viewport for a container of w x h pixels. On error
// the previous viewport is kept.
func (s *BoxSurface) Resize(w, h int) (viewport.Viewport, error) {
	before := s.calc.Viewport()
	vp, err := s.calc.Resize(w, h)
	if err == nil {
		s.width, s.height = w, h
	}
	if vp != before {
		s.dirty.Store(true)
	}
	return vp, err
}

// Viewport returns the current viewport.
func (s *BoxSurface) Viewport() viewport.Viewport {
	return s.calc.Viewport()
}

// Primitives returns the projected bodies for the current viewport,
// re-reading the model if it changed.
func (s *BoxSurface) Primitives() []shape.Primitive {
	if s.dirty.Swap(false) {
		if r := s.model.Ratio(); r != s.calc.Ratio() {
			_ = s.calc.SetRatio(r)
		}
		s.prims = shape.Project(s.model.Bodies(), s.calc.Viewport())
	}
	return s.prims
}

// SelectAt selects the front-most body under the container point p.
func (s *BoxSurface) SelectAt(p geometry.Point) (int, bool) {
	return s.model.SelectAt(s.calc.Viewport(), p)
}

// Render draws the background-filled viewport and every body into a new
// w x h image. The area outside the viewport stays transparent.
func (s *BoxSurface) Render(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	_, _ = s.Resize(w, h)
	c := paint.NewSize(w, h)
	prims := s.Primitives()

	vp := s.calc.Viewport()
	if vp.Empty() {
		return c.Image()
	}
	c.FillRect(vp.Rect(), s.background)

	alpha := s.shader.Alpha()
	for _, p := range prims {
		switch p.Kind {
		case shape.KindSphere:
			c.FillCircle(p.Center, p.Radius, s.shader.Radial(p).ColorFunc(alpha))
		case shape.KindXYLayer:
			c.FillBox(p.Bounds(), s.shader.Linear(p).ColorFunc(alpha))
		}
	}
	return c.Image()
}

// GetImage renders an opaque snapshot of the viewport area at the last
// container size. It returns nil before the first successful resize.
func (s *BoxSurface) GetImage() *image.RGBA {
	if s.width <= 0 || s.height <= 0 {
		return nil
	}
	full := s.Render(s.width, s.height)
	return bximage.Flatten(full.SubImage(s.calc.Viewport().Rect()), s.background)
}
