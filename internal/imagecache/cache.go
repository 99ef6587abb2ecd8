// Package imagecache keeps the last resampled copy of an image so that
// repeated redraws at the same size do not resample again.
package imagecache

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"reflect"

	"golang.org/x/image/draw"

	"boxview/internal/viewport"
)

// ErrMissingSource is returned when there is no image to scale.
var ErrMissingSource = errors.New("imagecache: no source image")

// Mode selects the resampling kernel.
type Mode int

const (
	// Smooth uses Catmull-Rom resampling.
	Smooth Mode = iota
	// Fast uses nearest-neighbour resampling.
	Fast
)

func (m Mode) String() string {
	if m == Fast {
		return "fast"
	}
	return "smooth"
}

func (m Mode) interpolator() draw.Interpolator {
	if m == Fast {
		return draw.NearestNeighbor
	}
	return draw.CatmullRom
}

// Key identifies a cached result. Two requests with equal keys produce the
// same bitmap.
type Key struct {
	Source   uint64
	Width    int
	Height   int
	Mode     Mode
	Centered bool
}

// Placement is an image and the position its top-left corner is drawn at.
type Placement struct {
	Image  image.Image
	Offset image.Point
}

// Bounds returns the destination rectangle covered by the placement.
func (p Placement) Bounds() image.Rectangle {
	if p.Image == nil {
		return image.Rectangle{}
	}
	b := p.Image.Bounds()
	return image.Rectangle{Min: p.Offset, Max: p.Offset.Add(b.Size())}
}

// Cache holds at most one scaled image. It is not safe for concurrent use.
type Cache struct {
	source     image.Image
	generation uint64
	key        Key
	placement  Placement
	valid      bool
	resamples  int
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{}
}

// Scaled returns src fitted to a w x h target. In centred mode the aspect
// ratio is preserved and the result is centred; otherwise the image is
// stretched to fill the target. A request whose key matches the previous one
// returns the stored result without resampling.
func (c *Cache) Scaled(src image.Image, w, h int, mode Mode, centered bool) (Placement, error) {
	if src == nil {
		slog.Debug("scale skipped", "error", ErrMissingSource)
		return Placement{}, ErrMissingSource
	}
	if w <= 0 || h <= 0 {
		slog.Debug("scale skipped", "width", w, "height", h)
		return Placement{}, fmt.Errorf("scale to %dx%d: %w", w, h, viewport.ErrInvalidDimension)
	}

	key := Key{Source: c.identify(src), Width: w, Height: h, Mode: mode, Centered: centered}
	if c.valid && key == c.key {
		return c.placement, nil
	}

	var p Placement
	if centered {
		p = c.fit(src, w, h, mode)
	} else {
		p = Placement{Image: c.resample(src, w, h, mode)}
	}
	c.key = key
	c.placement = p
	c.valid = true
	return p, nil
}

// Key returns the key of the stored result and whether one is stored.
func (c *Cache) Key() (Key, bool) {
	return c.key, c.valid
}

// Resamples returns how many times the cache has resampled an image.
func (c *Cache) Resamples() int {
	return c.resamples
}

// Invalidate drops the stored result. The next Scaled call recomputes.
func (c *Cache) Invalidate() {
	c.valid = false
	c.placement = Placement{}
}

func (c *Cache) identify(src image.Image) uint64 {
	if !sameImage(c.source, src) {
		c.source = src
		c.generation++
	}
	return c.generation
}

func (c *Cache) fit(src image.Image, w, h int, mode Mode) Placement {
	size := src.Bounds().Size()
	if size.X == w && size.Y == h {
		return Placement{Image: src}
	}
	sw, sh := fitSize(size.X, size.Y, w, h)
	return Placement{
		Image:  c.resample(src, sw, sh, mode),
		Offset: image.Pt((w-sw)/2, (h-sh)/2),
	}
}

func (c *Cache) resample(src image.Image, w, h int, mode Mode) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	mode.interpolator().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	c.resamples++
	return dst
}

// fitSize scales (iw, ih) to fit inside (w, h) along the binding axis.
func fitSize(iw, ih, w, h int) (int, int) {
	if iw <= 0 || ih <= 0 {
		return w, h
	}
	if w*ih > h*iw {
		sw := iw * h / ih
		return max(sw, 1), h
	}
	sh := ih * w / iw
	return w, max(sh, 1)
}

// PlaceUnscaled positions src at its natural size. It is centred only when
// centred mode is on and the image fits the target; otherwise it is anchored
// at the origin.
func PlaceUnscaled(src image.Image, w, h int, centered bool) (Placement, error) {
	if src == nil {
		return Placement{}, ErrMissingSource
	}
	if w <= 0 || h <= 0 {
		return Placement{}, fmt.Errorf("place in %dx%d: %w", w, h, viewport.ErrInvalidDimension)
	}
	size := src.Bounds().Size()
	p := Placement{Image: src}
	if centered && size.X <= w && size.Y <= h {
		p.Offset = image.Pt((w-size.X)/2, (h-size.Y)/2)
	}
	return p, nil
}

// Draw composites the placement onto dst.
func Draw(dst draw.Image, p Placement) {
	if p.Image == nil {
		return
	}
	draw.Draw(dst, p.Bounds(), p.Image, p.Image.Bounds().Min, draw.Over)
}

func sameImage(a, b image.Image) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
