package canvas

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxview/internal/compartment"
	"boxview/internal/config"
	"boxview/internal/shape"
	"boxview/internal/surface"
)

func TestBoxViewTapSelects(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	m := compartment.NewModel(1)
	m.SetBodies([]shape.Body{shape.Circle{CenterX: 0.5, CenterY: 0.5, Radius: 0.1, Volume: 1}})
	bv := NewBoxView(surface.NewBoxSurface(m, config.Default()))
	bv.Resize(fyne.NewSize(400, 300))

	r := test.WidgetRenderer(bv)
	assert.Len(t, r.Objects(), 1)

	out := bv.draw(400, 300)
	assert.Equal(t, image.Rect(0, 0, 400, 300), out.Bounds())

	var got []int
	bv.OnSelect(func(index int, ok bool) {
		if ok {
			got = append(got, index)
		}
	})
	test.TapAt(bv, fyne.NewPos(200, 150))
	assert.Equal(t, []int{0}, got)
	assert.Equal(t, 0, m.Selected())

	test.TapAt(bv, fyne.NewPos(60, 10))
	assert.Equal(t, -1, m.Selected())

	snap := bv.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 300, snap.Bounds().Dx())
}

func TestImageViewMeasure(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := surface.NewImageSurface(config.Default())
	iv := NewImageView(s)
	iv.Resize(fyne.NewSize(200, 100))
	iv.Update(func(s *surface.ImageSurface) {
		s.SetBasicImage(image.NewRGBA(image.Rect(0, 0, 200, 100)))
	})
	iv.draw(200, 100)

	test.TapAt(iv, fyne.NewPos(20, 30))
	assert.Nil(t, s.Measurement().P1, "taps are ignored without the measure tool")

	iv.SetTool(ToolMeasure)
	test.TapAt(iv, fyne.NewPos(20, 30))
	test.TapAt(iv, fyne.NewPos(120, 60))

	m := s.Measurement()
	require.NotNil(t, m.P1)
	require.NotNil(t, m.P2)
	assert.Equal(t, 20.0, m.P1.X)
	assert.Equal(t, 60.0, m.P2.Y)

	// a third tap starts a new measurement in the same line style
	iv.Update(func(s *surface.ImageSurface) { s.SetLineDashed(true) })
	test.TapAt(iv, fyne.NewPos(50, 50))
	assert.Nil(t, s.Measurement().P2)
	assert.Equal(t, 50.0, s.Measurement().P1.X)
	assert.True(t, s.Measurement().Dashed)

	test.TapSecondaryAt(iv, fyne.NewPos(1, 1))
	assert.Nil(t, s.Measurement().P1)
}

func TestToPixels(t *testing.T) {
	rh := rasterHost{}
	_, ok := rh.toPixels(fyne.NewPos(5, 5), fyne.NewSize(10, 10))
	assert.False(t, ok, "no draw yet")

	rh.recordSize(20, 40)
	p, ok := rh.toPixels(fyne.NewPos(5, 5), fyne.NewSize(10, 10))
	require.True(t, ok)
	assert.Equal(t, 10.0, p.X)
	assert.Equal(t, 20.0, p.Y)

	_, ok = rh.toPixels(fyne.NewPos(-1, 5), fyne.NewSize(10, 10))
	assert.False(t, ok)
	_, ok = rh.toPixels(fyne.NewPos(11, 5), fyne.NewSize(10, 10))
	assert.False(t, ok)
}
