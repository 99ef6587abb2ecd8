package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxview/internal/config"
	"boxview/internal/overlay"
	"boxview/pkg/geometry"
)

var red = color.RGBA{R: 255, A: 255}

func redImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, red)
		}
	}
	return img
}

func boxCorners() []geometry.Point {
	return []geometry.Point{
		geometry.Pt(20, 20), geometry.Pt(80, 20), geometry.Pt(30, 10), geometry.Pt(20, 80),
		geometry.Pt(90, 10), geometry.Pt(30, 70), geometry.Pt(80, 80), geometry.Pt(90, 70),
	}
}

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestImageSurfaceTransitions(t *testing.T) {
	s := NewImageSurface(config.Default())
	assert.Equal(t, Empty{}, s.Content())

	img := redImage(10, 10)
	s.SetBasicImage(img)
	assert.True(t, s.HasBasicImage())
	assert.False(t, s.HasBoxEdgePoints())

	// removing a wireframe that is not shown does nothing
	s.RemoveBoxEdgePoints()
	assert.True(t, s.HasBasicImage())

	require.NoError(t, s.SetBoxEdgePoints(boxCorners()))
	assert.True(t, s.HasBoxEdgePoints())
	assert.False(t, s.HasBasicImage())

	s.RemoveBasicImage()
	assert.True(t, s.HasBoxEdgePoints())

	s.RemoveBoxEdgePoints()
	assert.Equal(t, Empty{}, s.Content(), "the earlier image does not come back")

	s.SetBasicImage(img)
	s.RemoveBasicImage()
	assert.Equal(t, Empty{}, s.Content())

	s.SetBasicImage(img)
	s.SetBasicImage(nil)
	assert.Equal(t, Empty{}, s.Content())

	require.NoError(t, s.SetBoxEdgePoints(boxCorners()))
	require.NoError(t, s.SetBoxEdgePoints(nil))
	assert.Equal(t, Empty{}, s.Content())
}

func TestImageSurfaceNilImageKeepsWireframe(t *testing.T) {
	s := NewImageSurface(config.Default())
	require.NoError(t, s.SetBoxEdgePoints(boxCorners()))
	w := s.Content()

	s.SetBasicImage(nil)
	assert.True(t, s.HasBoxEdgePoints())
	assert.Equal(t, w, s.Content())
}

func TestImageSurfaceMalformedEdgesKeepState(t *testing.T) {
	s := NewImageSurface(config.Default())
	img := redImage(10, 10)
	s.SetBasicImage(img)

	err := s.SetBoxEdgePoints(boxCorners()[:5])
	assert.ErrorIs(t, err, overlay.ErrMalformedBoxEdges)
	assert.Equal(t, ImageContent{Image: img}, s.Content())
}

func TestImageSurfaceMutualExclusion(t *testing.T) {
	s := NewImageSurface(config.Default())
	s.Resize(100, 100)
	s.SetBasicImage(redImage(100, 100))
	require.Positive(t, countColor(s.GetImage(), red))

	require.NoError(t, s.SetBoxEdgePoints(boxCorners()))
	snap := s.GetImage()
	require.NotNil(t, snap)
	assert.Zero(t, countColor(snap, red))
	assert.Positive(t, countColor(snap, color.RGBA{A: 255}), "background fill")
}

func TestImageSurfaceScaleCache(t *testing.T) {
	s := NewImageSurface(config.Default())
	img := redImage(50, 25)
	s.SetBasicImage(img)

	s.Render(200, 200)
	s.Render(200, 200)
	assert.Equal(t, 1, s.Resamples())

	s.Render(200, 100)
	assert.Equal(t, 2, s.Resamples())

	s.SetBasicImage(img)
	s.Render(200, 100)
	assert.Equal(t, 3, s.Resamples(), "content change invalidates the cache")

	s.SetDrawUnscaled(true)
	s.Render(300, 300)
	assert.Equal(t, 3, s.Resamples())
}

func TestImageSurfaceCenteredPlacement(t *testing.T) {
	s := NewImageSurface(config.Default())
	s.SetScaleModeSmooth(false)
	s.SetBasicImage(redImage(50, 25))

	out := s.Render(100, 100)
	assert.Equal(t, color.RGBA{}, out.RGBAAt(50, 10))
	assert.Equal(t, red, out.RGBAAt(50, 50))

	s.SetCenteredMode(false)
	out = s.Render(100, 100)
	assert.Equal(t, red, out.RGBAAt(50, 10))

	s.SetDrawUnscaled(true)
	s.SetCenteredMode(true)
	out = s.Render(100, 100)
	assert.Equal(t, red, out.RGBAAt(30, 40))
	assert.Equal(t, color.RGBA{}, out.RGBAAt(10, 10))
}

func TestImageSurfacePoints(t *testing.T) {
	s := NewImageSurface(config.Default())
	s.SetPoint1(100, 100)
	s.SetPoint2(200, 150)
	s.SetLineDashed(true)

	m := s.Measurement()
	require.NotNil(t, m.P1)
	require.NotNil(t, m.P2)
	assert.True(t, m.Dashed)

	// markers are not drawn without an image
	empty := s.Render(300, 300)
	assert.Equal(t, 300*300, countColor(empty, color.RGBA{}))

	s.SetBasicImage(image.NewRGBA(image.Rect(0, 0, 300, 300)))
	marked := s.Render(300, 300)
	assert.Less(t, countColor(marked, color.RGBA{}), 300*300)
	disc := marked.RGBAAt(105, 105).A
	assert.Positive(t, disc)
	assert.Greater(t, marked.RGBAAt(100, 92).A, disc, "crosshair arm is drawn over the disc")

	s.ClearPoints()
	m = s.Measurement()
	assert.Nil(t, m.P1)
	assert.Nil(t, m.P2)
	assert.False(t, m.Dashed)

	s.SetPoint1(-1, 5)
	assert.Nil(t, s.Measurement().P1)

	// a second point is dropped only when both coordinates are negative
	s.SetPoint2(-3, 40)
	require.NotNil(t, s.Measurement().P2)
	assert.Equal(t, geometry.Pt(-3, 40), *s.Measurement().P2)
	s.SetPoint2(-1, -1)
	assert.Nil(t, s.Measurement().P2)
}

func TestImageSurfaceRepaint(t *testing.T) {
	s := NewImageSurface(config.Default())
	calls := 0
	s.OnRepaint = func() { calls++ }

	s.SetBasicImage(redImage(2, 2))
	s.SetCenteredMode(false)
	s.SetScaleModeSmooth(false)
	s.SetPoint1(1, 1)
	s.ClearPoints()
	assert.Equal(t, 5, calls)

	_ = s.SetBoxEdgePoints(make([]geometry.Point, 3))
	assert.Equal(t, 5, calls)
}

func TestImageSurfaceGetImage(t *testing.T) {
	s := NewImageSurface(config.Default())
	assert.Nil(t, s.GetImage())

	s.Resize(40, 30)
	snap := s.GetImage()
	require.NotNil(t, snap)
	assert.True(t, snap.Opaque())
	assert.Equal(t, image.Rect(0, 0, 40, 30), snap.Bounds())

	assert.Equal(t, image.Rectangle{}, s.Render(0, 10).Bounds())
}
