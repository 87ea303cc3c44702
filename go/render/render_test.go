package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestNormalize_PadsToMaxDimensions(t *testing.T) {
	gray := color.NRGBA{0x80, 0x80, 0x80, 0xff}
	blue := color.NRGBA{0x00, 0x00, 0xff, 0xff}
	a := makeImage(100, 100, gray)
	b := makeImage(150, 200, blue)

	na, nb := Normalize(a, b)
	assert.Equal(t, image.Rect(0, 0, 150, 200), na.Bounds())
	assert.Equal(t, image.Rect(0, 0, 150, 200), nb.Bounds())

	// Original content stays anchored at the origin.
	assert.Equal(t, gray, na.NRGBAAt(0, 0))
	assert.Equal(t, gray, na.NRGBAAt(99, 99))

	// The extension on the right and bottom is white.
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, na.NRGBAAt(100, 0))
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, na.NRGBAAt(0, 100))
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, na.NRGBAAt(149, 199))
}

func TestNormalize_MixedDimensions(t *testing.T) {
	// a is wider, b is taller: both pick up the other's larger dimension.
	a := makeImage(200, 50, color.NRGBA{0, 0, 0, 0xff})
	b := makeImage(100, 80, color.NRGBA{0, 0, 0, 0xff})

	na, nb := Normalize(a, b)
	assert.Equal(t, image.Rect(0, 0, 200, 80), na.Bounds())
	assert.Equal(t, image.Rect(0, 0, 200, 80), nb.Bounds())
}

func TestNormalize_EqualSizesReturnedUnchanged(t *testing.T) {
	a := makeImage(64, 64, color.NRGBA{0x10, 0x20, 0x30, 0xff})
	b := makeImage(64, 64, color.NRGBA{0x40, 0x50, 0x60, 0xff})

	na, nb := Normalize(a, b)
	assert.Same(t, a, na)
	assert.Same(t, b, nb)
}

func TestNormalize_DoesNotMutateInputs(t *testing.T) {
	a := makeImage(10, 10, color.NRGBA{0x11, 0x22, 0x33, 0xff})
	b := makeImage(20, 20, color.NRGBA{0x44, 0x55, 0x66, 0xff})

	na, _ := Normalize(a, b)
	require.NotSame(t, a, na)
	assert.Equal(t, image.Rect(0, 0, 10, 10), a.Bounds())
	assert.Equal(t, color.NRGBA{0x11, 0x22, 0x33, 0xff}, a.NRGBAAt(9, 9))
}

func TestToNRGBA(t *testing.T) {
	src := makeImage(8, 8, color.NRGBA{1, 2, 3, 0xff})
	assert.Same(t, src, ToNRGBA(src))

	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	rgba.SetRGBA(2, 3, color.RGBA{10, 20, 30, 0xff})
	converted := ToNRGBA(rgba)
	require.IsType(t, &image.NRGBA{}, converted)
	assert.Equal(t, image.Rect(0, 0, 4, 4), converted.Bounds())
	assert.Equal(t, color.NRGBA{10, 20, 30, 0xff}, converted.NRGBAAt(2, 3))
}
