package image

import (
	"image"
	"image/color"
	"image/draw"
)

// Flatten composites src over an opaque background and returns an image
// with every pixel fully opaque.
func Flatten(src image.Image, back color.Color) *image.RGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	draw.Draw(result, result.Bounds(), &image.Uniform{opaque(back)}, image.Point{}, draw.Src)
	draw.Draw(result, result.Bounds(), src, b.Min, draw.Over)
	return result
}

// IsOpaque reports whether every pixel of img has full alpha.
func IsOpaque(img *image.RGBA) bool {
	if img == nil {
		return false
	}
	return img.Opaque()
}

func opaque(c color.Color) color.Color {
	if c == nil {
		return color.Black
	}
	r, g, b, _ := c.RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff}
}
