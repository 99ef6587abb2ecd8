// Package surface implements the two drawing surfaces of the viewer: an
// image surface with measurement markers or a box wireframe, and a box
// surface that paints the projected compartments.
package surface

import (
	"image"

	"boxview/internal/overlay"
)

// Content is what an ImageSurface shows. It is one of Empty, ImageContent
// or WireframeContent.
type Content interface {
	isContent()
}

// Empty shows nothing.
type Empty struct{}

// ImageContent shows a bitmap, optionally with measurement markers.
type ImageContent struct {
	Image image.Image
}

// WireframeContent shows the box wireframe on the background colour.
type WireframeContent struct {
	Wireframe overlay.Wireframe
}

func (Empty) isContent()            {}
func (ImageContent) isContent()     {}
func (WireframeContent) isContent() {}
