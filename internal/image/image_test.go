package image

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 6, 4))
	src.Set(2, 1, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "out", "frame.png")
	require.NoError(t, SavePNG(path, src))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "png", loaded.Format)
	assert.Equal(t, 6, loaded.Width())
	assert.Equal(t, 4, loaded.Height())
	assert.Equal(t, 6.0, loaded.Size().Width)

	r, _, _, a := loaded.Image.At(2, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorContains(t, err, "failed to open image")

	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to decode image")

	var s *Source
	assert.Equal(t, 0, s.Width())
}

func TestFlatten(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 13, 13))
	src.Set(11, 11, color.RGBA{G: 255, A: 255})
	src.Set(12, 12, color.NRGBA{R: 255, A: 128})

	out := Flatten(src, color.RGBA{B: 255, A: 0})
	require.NotNil(t, out)
	assert.Equal(t, image.Rect(0, 0, 3, 3), out.Bounds())
	assert.True(t, IsOpaque(out))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, out.RGBAAt(1, 1))

	mixed := out.RGBAAt(2, 2)
	assert.Equal(t, uint8(255), mixed.A)
	assert.InDelta(t, 128, int(mixed.R), 1)
	assert.InDelta(t, 127, int(mixed.B), 1)

	assert.Nil(t, Flatten(nil, color.Black))
	assert.False(t, IsOpaque(nil))
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("scan.TIF"))
	assert.True(t, IsSupportedFormat("a/b/c.png"))
	assert.False(t, IsSupportedFormat("notes.txt"))
}
