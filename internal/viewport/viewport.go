// Package viewport computes the largest centred rectangle of a fixed
// height/width ratio that fits inside a container.
package viewport

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
)

var (
	// ErrInvalidDimension is returned when a container or target size is not positive.
	ErrInvalidDimension = errors.New("viewport: dimension must be positive")
	// ErrInvalidRatio is returned when the height/width ratio is not positive.
	ErrInvalidRatio = errors.New("viewport: ratio must be positive")
)

// Viewport is the drawable area inside a container, in integer pixels.
type Viewport struct {
	X, Y          int
	Width, Height int
	// Ratio is the target height/width ratio the viewport was computed for.
	Ratio float64
}

// Rect returns the viewport as an image rectangle.
func (v Viewport) Rect() image.Rectangle {
	return image.Rect(v.X, v.Y, v.X+v.Width, v.Y+v.Height)
}

// Empty reports whether the viewport has no area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

func (v Viewport) String() string {
	return fmt.Sprintf("viewport(%d,%d %dx%d r=%g)", v.X, v.Y, v.Width, v.Height, v.Ratio)
}

// Compute returns the largest viewport of the given ratio that fits the
// container, centred on both axes.
func Compute(containerW, containerH int, ratio float64) (Viewport, error) {
	vp, err := ComputeSize(containerW, containerH, ratio)
	if err != nil {
		return Viewport{}, err
	}
	vp.X = (containerW - vp.Width) / 2
	vp.Y = (containerH - vp.Height) / 2
	return vp, nil
}

// ComputeSize is like Compute but leaves the viewport anchored at the origin.
func ComputeSize(containerW, containerH int, ratio float64) (Viewport, error) {
	if containerW <= 0 || containerH <= 0 {
		return Viewport{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, containerW, containerH)
	}
	if ratio <= 0 {
		return Viewport{}, fmt.Errorf("%w: %g", ErrInvalidRatio, ratio)
	}

	vp := Viewport{Ratio: ratio}
	if float64(containerH)/float64(containerW) >= ratio {
		vp.Width = containerW
		vp.Height = int(float64(containerW) * ratio)
	} else {
		vp.Height = containerH
		vp.Width = int(float64(containerH) / ratio)
	}
	return vp, nil
}

// Calculator keeps the viewport of a surface current across resizes and
// ratio changes. The zero value is not usable; use NewCalculator.
type Calculator struct {
	ratio  float64
	width  int
	height int
	vp     Viewport
}

// NewCalculator returns a calculator for the given ratio. A non-positive
// ratio falls back to 1.
func NewCalculator(ratio float64) *Calculator {
	if ratio <= 0 {
		ratio = 1
	}
	return &Calculator{ratio: ratio}
}

// Resize recomputes the viewport for a new container size. An invalid size
// keeps the previous viewport and returns the error.
func (c *Calculator) Resize(w, h int) (Viewport, error) {
	if w == c.width && h == c.height && !c.vp.Empty() {
		return c.vp, nil
	}
	vp, err := Compute(w, h, c.ratio)
	if err != nil {
		slog.Debug("viewport resize skipped", "width", w, "height", h, "error", err)
		return c.vp, err
	}
	c.width, c.height = w, h
	c.vp = vp
	return vp, nil
}

// SetRatio changes the target ratio and recomputes with the last valid
// container size. Non-positive ratios are ignored.
func (c *Calculator) SetRatio(ratio float64) error {
	if ratio <= 0 {
		slog.Debug("viewport ratio ignored", "ratio", ratio)
		return fmt.Errorf("%w: %g", ErrInvalidRatio, ratio)
	}
	c.ratio = ratio
	if c.width <= 0 || c.height <= 0 {
		return nil
	}
	vp, err := Compute(c.width, c.height, ratio)
	if err != nil {
		return err
	}
	c.vp = vp
	return nil
}

// Ratio returns the current target ratio.
func (c *Calculator) Ratio() float64 {
	return c.ratio
}

// Viewport returns the current viewport. It is empty until the first
// successful Resize.
func (c *Calculator) Viewport() Viewport {
	return c.vp
}
