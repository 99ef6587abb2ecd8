package geometry

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(Pt(0, 0), Pt(3, 4)))
	assert.Equal(t, 0.0, Distance(Pt(2, 2), Pt(2, 2)))
}

func TestSizeEmpty(t *testing.T) {
	assert.False(t, NewSize(1, 1).Empty())
	assert.True(t, NewSize(0, 1).Empty())
	assert.True(t, NewSize(1, -1).Empty())
}

func TestRect(t *testing.T) {
	r := RectAround(Pt(10, 20), 5, 2)
	assert.Equal(t, Rect{X: 5, Y: 18, Width: 10, Height: 4}, r)
	assert.Equal(t, Pt(5, 18), r.Min())
	assert.Equal(t, Pt(15, 22), r.Max())
	assert.Equal(t, Pt(10, 20), r.Center())

	assert.True(t, r.ContainsStrict(Pt(10, 20)))
	assert.False(t, r.ContainsStrict(Pt(5, 20)), "edges are outside")
	assert.False(t, r.ContainsStrict(Pt(16, 20)))
}

func TestRectBounds(t *testing.T) {
	r := Rect{X: 1.5, Y: -0.5, Width: 2, Height: 1}
	assert.Equal(t, image.Rect(1, -1, 4, 1), r.Bounds())
}
