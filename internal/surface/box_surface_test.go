package surface

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxview/internal/compartment"
	"boxview/internal/config"
	"boxview/internal/shape"
	"boxview/internal/viewport"
	"boxview/pkg/colorutil"
	"boxview/pkg/geometry"
)

func TestBoxSurfaceRender(t *testing.T) {
	m := compartment.NewModel(1)
	m.SetBodies([]shape.Body{
		shape.Circle{CenterX: 0.5, CenterY: 0.5, Radius: 0.1, Volume: 1},
	})
	s := NewBoxSurface(m, config.Default())
	defer s.Close()

	out := s.Render(400, 300)
	assert.Equal(t, viewport.Viewport{X: 50, Y: 0, Width: 300, Height: 300, Ratio: 1}, s.Viewport())

	assert.Equal(t, color.RGBA{}, out.RGBAAt(10, 10), "outside the viewport")
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(60, 10), "viewport background")

	c := out.RGBAAt(200, 150)
	assert.Equal(t, uint8(255), c.A)
	assert.Zero(t, c.R)
	assert.Zero(t, c.B)
	assert.Greater(t, c.G, uint8(70))

	prims := s.Primitives()
	require.Len(t, prims, 1)
	assert.InDelta(t, 30, prims[0].Radius, 1e-9)
}

func TestBoxSurfaceLayer(t *testing.T) {
	m := compartment.NewModel(1)
	m.SetBodies([]shape.Body{
		shape.Box{CenterX: 0.5, CenterY: 0.5, HalfWidth: 0.2, HalfHeight: 0.1, Volume: 1},
	})
	s := NewBoxSurface(m, config.Default())

	out := s.Render(300, 300)
	palette := config.Default().Shader().Palette(shape.KindXYLayer, false)

	// box spans rows 120..180; the upper band runs from row 90 to the
	// midline at 150, sampled at pixel centres
	top := out.RGBAAt(150, 125)
	bottom := out.RGBAAt(150, 174)
	want := colorutil.Lerp(palette[0], palette[1], 35.5/60)
	assert.InDelta(t, want.R, top.R, 1)
	assert.InDelta(t, want.G, top.G, 1)
	assert.InDelta(t, want.B, top.B, 1)
	assert.Greater(t, top.R, uint8(0), "edges are paler than the base colour")
	assert.Equal(t, top, bottom, "bands mirror around the midline")

	mid := out.RGBAAt(150, 149)
	assert.Equal(t, uint8(255), mid.B)
	assert.Less(t, mid.R, top.R, "the midline approaches the base colour")
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(150, 100))
}

func TestBoxSurfaceSkipsEmptyVolume(t *testing.T) {
	m := compartment.NewModel(1)
	m.SetBodies([]shape.Body{shape.Circle{CenterX: 0.5, CenterY: 0.5, Radius: 0.1, Volume: 0}})
	s := NewBoxSurface(m, config.Default())

	out := s.Render(300, 300)
	assert.Empty(t, s.Primitives())
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(150, 150))
}

func TestBoxSurfaceFollowsModel(t *testing.T) {
	m := compartment.NewModel(1)
	s := NewBoxSurface(m, config.Default())
	repaints := 0
	s.OnRepaint = func() { repaints++ }

	s.Render(100, 100)
	assert.Empty(t, s.Primitives())

	m.Add(shape.Circle{CenterX: 0.5, CenterY: 0.5, Radius: 0.2, Volume: 1})
	assert.Equal(t, 1, repaints)
	assert.Len(t, s.Primitives(), 1)

	require.NoError(t, m.SetRatio(0.5))
	assert.Equal(t, 2, repaints)
	s.Render(100, 100)
	assert.Equal(t, viewport.Viewport{X: 0, Y: 25, Width: 100, Height: 50, Ratio: 0.5}, s.Viewport())

	s.Close()
	m.Add(shape.Box{Volume: 1})
	assert.Equal(t, 2, repaints)
}

func TestBoxSurfaceSelectAt(t *testing.T) {
	m := compartment.NewModel(1)
	m.SetBodies([]shape.Body{
		shape.Circle{CenterX: 0.25, CenterY: 0.5, Radius: 0.1, Volume: 1},
		shape.Circle{CenterX: 0.75, CenterY: 0.5, Radius: 0.1, Volume: 1},
	})
	s := NewBoxSurface(m, config.Default())
	_, err := s.Resize(400, 200)
	require.NoError(t, err)

	idx, ok := s.SelectAt(geometry.Pt(250, 100))
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, m.Selected())

	sel := s.Render(400, 200).RGBAAt(250, 100)
	assert.Greater(t, sel.R, uint8(0), "selected bodies are drawn in white tones")
}

func TestBoxSurfaceResizeErrors(t *testing.T) {
	s := NewBoxSurface(compartment.NewModel(1), config.Default())
	_, err := s.Resize(0, 10)
	assert.ErrorIs(t, err, viewport.ErrInvalidDimension)
	assert.Nil(t, s.GetImage())

	_, err = s.Resize(60, 40)
	require.NoError(t, err)
	snap := s.GetImage()
	require.NotNil(t, snap)
	assert.Equal(t, 40, snap.Bounds().Dx())
	assert.True(t, snap.Opaque())
}
