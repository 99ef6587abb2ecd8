package surface

import (
	"image"
	"image/color"
	"log/slog"

	"boxview/internal/config"
	bximage "boxview/internal/image"
	"boxview/internal/imagecache"
	"boxview/internal/overlay"
	"boxview/internal/paint"
	"boxview/pkg/colorutil"
	"boxview/pkg/geometry"
)

// ImageSurface draws a bitmap with measurement markers, or the box
// wireframe. It must be used from a single goroutine.
type ImageSurface struct {
	content Content
	cache   *imagecache.Cache

	centered bool
	smooth   bool
	unscaled bool

	measurement overlay.Measurement

	width, height int

	background  color.RGBA
	frame       color.RGBA
	measureLine color.RGBA

	// OnRepaint is called after any change that needs a redraw.
	OnRepaint func()
}

// NewImageSurface creates an empty surface using the colours and scaling
// defaults of cfg.
func NewImageSurface(cfg config.Config) *ImageSurface {
	return &ImageSurface{
		content:     Empty{},
		cache:       imagecache.New(),
		centered:    cfg.CenteredMode,
		smooth:      cfg.SmoothScaling,
		background:  cfg.BackgroundColor.RGBA(),
		frame:       cfg.FrameColor.RGBA(),
		measureLine: cfg.MeasurementColor.RGBA(),
	}
}

func (s *ImageSurface) repaint() {
	if s.OnRepaint != nil {
		s.OnRepaint()
	}
}

func (s *ImageSurface) setContent(c Content) {
	s.content = c
	s.cache.Invalidate()
	s.repaint()
}

// Content returns what the surface currently shows.
func (s *ImageSurface) Content() Content {
	return s.content
}

// SetBasicImage shows img. A nil image behaves like RemoveBasicImage and
// leaves a wireframe in place.
func (s *ImageSurface) SetBasicImage(img image.Image) {
	if img == nil {
		s.RemoveBasicImage()
		return
	}
	s.setContent(ImageContent{Image: img})
}

// RemoveBasicImage empties the surface if it shows an image.
func (s *ImageSurface) RemoveBasicImage() {
	if _, ok := s.content.(ImageContent); ok {
		s.setContent(Empty{})
	}
}

// HasBasicImage reports whether the surface shows an image.
func (s *ImageSurface) HasBasicImage() bool {
	_, ok := s.content.(ImageContent)
	return ok
}

// SetBoxEdgePoints shows the wireframe through the eight corners. Nil points
// empty the surface. Any other count is rejected and the surface is left
// unchanged.
func (s *ImageSurface) SetBoxEdgePoints(pts []geometry.Point) error {
	if pts == nil {
		s.setContent(Empty{})
		return nil
	}
	w, err := overlay.NewWireframe(pts)
	if err != nil {
		return err
	}
	s.setContent(WireframeContent{Wireframe: w})
	return nil
}

// RemoveBoxEdgePoints empties the surface if it shows a wireframe.
func (s *ImageSurface) RemoveBoxEdgePoints() {
	if _, ok := s.content.(WireframeContent); ok {
		s.setContent(Empty{})
	}
}

// HasBoxEdgePoints reports whether the surface shows a wireframe.
func (s *ImageSurface) HasBoxEdgePoints() bool {
	_, ok := s.content.(WireframeContent)
	return ok
}

// SetCenteredMode switches between centred and stretched placement.
func (s *ImageSurface) SetCenteredMode(on bool) {
	s.centered = on
	s.repaint()
}

// SetScaleModeSmooth selects smooth or fast resampling.
func (s *ImageSurface) SetScaleModeSmooth(on bool) {
	s.smooth = on
	s.repaint()
}

// SetDrawUnscaled draws the image at its natural size when on.
func (s *ImageSurface) SetDrawUnscaled(on bool) {
	s.unscaled = on
	s.repaint()
}

// SetPoint1 sets the first measurement point. Negative coordinates unset it.
func (s *ImageSurface) SetPoint1(x, y float64) {
	s.measurement.P1 = point(x, y)
	s.repaint()
}

// SetPoint2 sets the second measurement point. It is unset only when both
// coordinates are negative.
func (s *ImageSurface) SetPoint2(x, y float64) {
	if x < 0 && y < 0 {
		s.measurement.P2 = nil
	} else {
		p := geometry.Pt(x, y)
		s.measurement.P2 = &p
	}
	s.repaint()
}

// ClearPoints removes both points and resets the line style to solid.
func (s *ImageSurface) ClearPoints() {
	s.measurement = overlay.Measurement{}
	s.repaint()
}

// SetLineDashed selects a dashed or solid connecting line.
func (s *ImageSurface) SetLineDashed(on bool) {
	s.measurement.Dashed = on
	s.repaint()
}

// Measurement returns the current measurement overlay.
func (s *ImageSurface) Measurement() overlay.Measurement {
	return s.measurement
}

// Resize records the container size.
func (s *ImageSurface) Resize(w, h int) {
	s.width, s.height = w, h
}

// Size returns the last recorded container size.
func (s *ImageSurface) Size() (int, int) {
	return s.width, s.height
}

// Resamples reports how often the scale cache has resampled.
func (s *ImageSurface) Resamples() int {
	return s.cache.Resamples()
}

// Render draws the surface into a new w x h image. Areas not covered by the
// content stay transparent.
func (s *ImageSurface) Render(w, h int) *image.RGBA {
	s.Resize(w, h)
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	c := paint.NewSize(w, h)

	switch content := s.content.(type) {
	case ImageContent:
		s.drawImage(c, content.Image, w, h)
		s.drawMeasurement(c, w, h)
	case WireframeContent:
		s.drawWireframe(c, content.Wireframe)
	}
	return c.Image()
}

// GetImage renders an opaque snapshot at the current size. It returns nil
// before the first resize.
func (s *ImageSurface) GetImage() *image.RGBA {
	if s.width <= 0 || s.height <= 0 {
		return nil
	}
	return bximage.Flatten(s.Render(s.width, s.height), s.background)
}

func (s *ImageSurface) drawImage(c *paint.Canvas, img image.Image, w, h int) {
	var (
		p   imagecache.Placement
		err error
	)
	if s.unscaled {
		p, err = imagecache.PlaceUnscaled(img, w, h, s.centered)
	} else {
		mode := imagecache.Fast
		if s.smooth {
			mode = imagecache.Smooth
		}
		p, err = s.cache.Scaled(img, w, h, mode, s.centered)
	}
	if err != nil {
		slog.Debug("image omitted", "error", err)
		return
	}
	imagecache.Draw(c.Image(), p)
}

func (s *ImageSurface) drawMeasurement(c *paint.Canvas, w, h int) {
	a := overlay.Annotate(s.measurement, geometry.NewSize(float64(w), float64(h)))
	for _, d := range a.Discs {
		c.FillCircle(d.Center, d.Radius, colorutil.WithAlpha(s.measureLine, d.Alpha))
	}
	for _, l := range a.Lines {
		drawLine(c, l, s.measureLine)
	}
}

func (s *ImageSurface) drawWireframe(c *paint.Canvas, w overlay.Wireframe) {
	c.Fill(s.background)
	for _, l := range w.Lines() {
		drawLine(c, l, s.frame)
	}
}

func drawLine(c *paint.Canvas, l overlay.Line, clr color.RGBA) {
	stroke := paint.Stroke{Width: overlay.StrokeWidth, MiterLimit: overlay.MiterLimit}
	if l.Dashed {
		stroke.Dashes = overlay.DashPattern
	}
	c.Line(l.From, l.To, colorutil.WithAlpha(clr, l.Alpha), stroke)
}

func point(x, y float64) *geometry.Point {
	if x < 0 || y < 0 {
		return nil
	}
	p := geometry.Pt(x, y)
	return &p
}
