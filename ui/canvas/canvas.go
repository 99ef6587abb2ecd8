// Package canvas provides Fyne widgets that host the box and image surfaces.
package canvas

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"boxview/internal/surface"
	"boxview/pkg/geometry"
)

var defaultMinSize = fyne.NewSize(400, 300)

// Tool represents the current interaction tool of an ImageView.
type Tool int

const (
	ToolNone Tool = iota
	ToolMeasure
)

// rasterHost tracks the pixel size of the last raster draw so taps, which
// arrive in Fyne units, can be mapped to surface pixels.
type rasterHost struct {
	mu     sync.Mutex
	raster *fynecanvas.Raster
	pixelW int
	pixelH int
}

func (rh *rasterHost) recordSize(w, h int) {
	rh.pixelW, rh.pixelH = w, h
}

// toPixels converts a widget-relative position to raster pixels. It returns
// false for positions outside the widget.
func (rh *rasterHost) toPixels(pos fyne.Position, size fyne.Size) (geometry.Point, bool) {
	// Fyne sometimes delivers taps outside the widget bounds.
	if pos.X < 0 || pos.Y < 0 || pos.X > size.Width || pos.Y > size.Height {
		return geometry.Point{}, false
	}
	if size.Width <= 0 || size.Height <= 0 || rh.pixelW <= 0 || rh.pixelH <= 0 {
		return geometry.Point{}, false
	}
	sx := float64(rh.pixelW) / float64(size.Width)
	sy := float64(rh.pixelH) / float64(size.Height)
	return geometry.Pt(float64(pos.X)*sx, float64(pos.Y)*sy), true
}

type rasterRenderer struct {
	raster *fynecanvas.Raster
}

func (r *rasterRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *rasterRenderer) MinSize() fyne.Size {
	return r.raster.MinSize()
}

func (r *rasterRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *rasterRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *rasterRenderer) Destroy() {}

// BoxView shows the projected compartments of a model. A tap selects the
// body under the pointer.
type BoxView struct {
	widget.BaseWidget
	rasterHost

	surface *surface.BoxSurface

	onSelect func(index int, ok bool)
}

// NewBoxView wraps s in a widget and routes its repaint requests to the
// raster.
func NewBoxView(s *surface.BoxSurface) *BoxView {
	bv := &BoxView{surface: s}
	bv.raster = fynecanvas.NewRaster(bv.draw)
	bv.raster.ScaleMode = fynecanvas.ImageScalePixels
	bv.raster.SetMinSize(defaultMinSize)
	s.OnRepaint = bv.Refresh
	bv.ExtendBaseWidget(bv)
	return bv
}

// CreateRenderer implements fyne.Widget.
func (bv *BoxView) CreateRenderer() fyne.WidgetRenderer {
	return &rasterRenderer{raster: bv.raster}
}

// OnSelect sets a callback for taps. ok is false when the tap hit no body.
func (bv *BoxView) OnSelect(callback func(index int, ok bool)) {
	bv.onSelect = callback
}

// Tapped selects the body under the pointer.
func (bv *BoxView) Tapped(ev *fyne.PointEvent) {
	bv.mu.Lock()
	p, inside := bv.toPixels(ev.Position, bv.Size())
	if !inside {
		bv.mu.Unlock()
		return
	}
	idx, ok := bv.surface.SelectAt(p)
	bv.mu.Unlock()

	if bv.onSelect != nil {
		bv.onSelect(idx, ok)
	}
}

// Snapshot returns an opaque copy of the viewport as last drawn.
func (bv *BoxView) Snapshot() *image.RGBA {
	bv.mu.Lock()
	defer bv.mu.Unlock()
	return bv.surface.GetImage()
}

// Refresh redraws the raster.
func (bv *BoxView) Refresh() {
	bv.raster.Refresh()
}

func (bv *BoxView) draw(w, h int) image.Image {
	bv.mu.Lock()
	defer bv.mu.Unlock()
	bv.recordSize(w, h)
	return bv.surface.Render(w, h)
}

// ImageView shows a bitmap or the box wireframe. With ToolMeasure active,
// taps place the measurement points and a secondary tap clears them.
type ImageView struct {
	widget.BaseWidget
	rasterHost

	surface *surface.ImageSurface
	tool    Tool
	placed  int
}

// NewImageView wraps s in a widget.
func NewImageView(s *surface.ImageSurface) *ImageView {
	iv := &ImageView{surface: s}
	iv.raster = fynecanvas.NewRaster(iv.draw)
	iv.raster.ScaleMode = fynecanvas.ImageScalePixels
	iv.raster.SetMinSize(defaultMinSize)
	s.OnRepaint = iv.Refresh
	iv.ExtendBaseWidget(iv)
	return iv
}

// CreateRenderer implements fyne.Widget.
func (iv *ImageView) CreateRenderer() fyne.WidgetRenderer {
	return &rasterRenderer{raster: iv.raster}
}

// SetTool sets the current interaction tool.
func (iv *ImageView) SetTool(tool Tool) {
	iv.tool = tool
}

// Update runs fn against the surface while holding the view's lock and
// then redraws.
func (iv *ImageView) Update(fn func(s *surface.ImageSurface)) {
	iv.mu.Lock()
	fn(iv.surface)
	iv.mu.Unlock()
	iv.Refresh()
}

// Tapped places the first point, then the second, then starts over.
func (iv *ImageView) Tapped(ev *fyne.PointEvent) {
	if iv.tool != ToolMeasure {
		return
	}
	iv.mu.Lock()
	p, inside := iv.toPixels(ev.Position, iv.Size())
	if !inside {
		iv.mu.Unlock()
		return
	}
	if iv.placed%2 == 0 {
		iv.surface.SetPoint2(-1, -1)
		iv.surface.SetPoint1(p.X, p.Y)
	} else {
		iv.surface.SetPoint2(p.X, p.Y)
	}
	iv.placed++
	iv.mu.Unlock()
}

// TappedSecondary clears the measurement.
func (iv *ImageView) TappedSecondary(*fyne.PointEvent) {
	if iv.tool != ToolMeasure {
		return
	}
	iv.mu.Lock()
	iv.surface.ClearPoints()
	iv.placed = 0
	iv.mu.Unlock()
}

// Snapshot returns an opaque copy of the surface at its last size.
func (iv *ImageView) Snapshot() *image.RGBA {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.surface.GetImage()
}

// Refresh redraws the raster.
func (iv *ImageView) Refresh() {
	iv.raster.Refresh()
}

func (iv *ImageView) draw(w, h int) image.Image {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.recordSize(w, h)
	return iv.surface.Render(w, h)
}
