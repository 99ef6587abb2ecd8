package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"boxview/internal/viewport"
	"boxview/pkg/geometry"
)

func TestProjectCircle(t *testing.T) {
	vp := viewport.Viewport{Width: 300, Height: 300, Ratio: 1}
	prims := Project([]Body{Circle{CenterX: 0.5, CenterY: 0.5, Radius: 0.1, Volume: 1}}, vp)
	require.Len(t, prims, 1)

	p := prims[0]
	assert.Equal(t, KindSphere, p.Kind)
	assert.True(t, scalar.EqualWithinAbs(p.Center.X, 150, 1e-9))
	assert.True(t, scalar.EqualWithinAbs(p.Center.Y, 150, 1e-9))
	assert.True(t, scalar.EqualWithinAbs(p.Radius, 30, 1e-9))
	assert.Zero(t, p.Attenuation)
}

func TestProjectOffsetAndAxes(t *testing.T) {
	vp := viewport.Viewport{X: 50, Y: 10, Width: 200, Height: 100, Ratio: 0.5}
	prims := Project([]Body{
		Circle{CenterX: 0.25, CenterY: 0.5, Radius: 0.1, Volume: 1},
		Box{CenterX: 0.5, CenterY: 0.5, HalfWidth: 0.5, HalfHeight: 0.1, Volume: 1, Attenuation: 2},
	}, vp)
	require.Len(t, prims, 2)

	assert.Equal(t, geometry.Pt(100, 60), prims[0].Center)
	assert.InDelta(t, 20, prims[0].Radius, 1e-9)

	box := prims[1]
	assert.Equal(t, KindXYLayer, box.Kind)
	assert.Equal(t, geometry.Pt(150, 60), box.Center)
	assert.InDelta(t, 100, box.HalfWidth, 1e-9)
	assert.InDelta(t, 10, box.HalfHeight, 1e-9)
	assert.Equal(t, 1.0, box.Attenuation)
}

func TestProjectSkipsEmptyVolume(t *testing.T) {
	vp := viewport.Viewport{Width: 100, Height: 100, Ratio: 1}
	prims := Project([]Body{
		Circle{CenterX: 0.5, CenterY: 0.5, Radius: 0.1, Volume: 0},
		nil,
		Box{CenterX: 0.5, CenterY: 0.5, HalfWidth: 0.1, HalfHeight: 0.1, Volume: -1},
		Circle{CenterX: 0.2, CenterY: 0.2, Radius: 0.1, Volume: 3, Selected: true},
	}, vp)
	require.Len(t, prims, 1)
	assert.Equal(t, 3, prims[0].Index)
	assert.True(t, prims[0].Selected)
}

func TestHitTest(t *testing.T) {
	vp := viewport.Viewport{Width: 100, Height: 100, Ratio: 1}
	prims := Project([]Body{
		Box{CenterX: 0.5, CenterY: 0.5, HalfWidth: 0.4, HalfHeight: 0.4, Volume: 1},
		Circle{CenterX: 0.5, CenterY: 0.5, Radius: 0.1, Volume: 1},
	}, vp)

	idx, ok := HitTest(prims, geometry.Pt(50, 50))
	require.True(t, ok)
	assert.Equal(t, 1, idx, "circle is painted last")

	idx, ok = HitTest(prims, geometry.Pt(50, 60))
	require.True(t, ok)
	assert.Equal(t, 1, idx, "rim belongs to the circle")

	idx, ok = HitTest(prims, geometry.Pt(20, 20))
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = HitTest(prims, geometry.Pt(10, 50))
	assert.False(t, ok, "box edge is not inside")

	_, ok = HitTest(nil, geometry.Pt(0, 0))
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "sphere", KindSphere.String())
	assert.Equal(t, "xy-layer", Box{}.Kind().String())
	assert.Equal(t, "unknown", Kind(9).String())
}
