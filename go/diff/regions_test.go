package diff

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ADR3N4LYN3/pdf-compare/go/image/text"
)

// blackRect paints a black w x h rectangle onto img at (x, y).
func blackRect(img *image.NRGBA, x, y, w, h int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			img.SetNRGBA(x+dx, y+dy, color.NRGBA{0, 0, 0, 0xff})
		}
	}
}

func TestFindRegions_SinglePixelIsNoise(t *testing.T) {
	white := solid(20, 20, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	other := solid(20, 20, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	blackRect(other, 5, 5, 1, 1)

	regions, err := FindRegions(white, other, 0)
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestFindRegions_NoiseAreaBoundary(t *testing.T) {
	white := solid(40, 20, color.NRGBA{0xff, 0xff, 0xff, 0xff})

	// A 5x2 block covers exactly 10 pixels and is still filtered.
	other := solid(40, 20, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	blackRect(other, 3, 3, 5, 2)
	regions, err := FindRegions(white, other, 0)
	require.NoError(t, err)
	assert.Empty(t, regions)

	// An 11x1 block covers 11 pixels and is reported.
	other = solid(40, 20, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	blackRect(other, 3, 3, 11, 1)
	regions, err = FindRegions(white, other, 0)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, BoundingBox{X1: 3, Y1: 3, X2: 14, Y2: 4}, regions[0])
	assert.Equal(t, 11, regions[0].Area())
}

func TestFindRegions_ExactBounds(t *testing.T) {
	white := solid(10, 10, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	other := solid(10, 10, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	blackRect(other, 2, 1, 4, 3)

	regions, err := FindRegions(white, other, 0)
	require.NoError(t, err)
	require.Len(t, regions, 1)

	box := regions[0]
	assert.Equal(t, BoundingBox{X1: 2, Y1: 1, X2: 6, Y2: 4}, box)
	assert.Equal(t, 4, box.Width())
	assert.Equal(t, 3, box.Height())
	assert.Equal(t, 12, box.Area())
	assert.Equal(t, "BoundingBox(x=2, y=1, w=4, h=3)", box.String())
}

func TestFindRegions_MultipleRegionsInScanOrder(t *testing.T) {
	white := solid(40, 40, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	other := solid(40, 40, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	blackRect(other, 20, 2, 4, 4)
	blackRect(other, 2, 10, 4, 4)
	blackRect(other, 30, 30, 4, 4)

	regions, err := FindRegions(white, other, 0)
	require.NoError(t, err)
	require.Len(t, regions, 3)
	assert.Equal(t, BoundingBox{X1: 20, Y1: 2, X2: 24, Y2: 6}, regions[0])
	assert.Equal(t, BoundingBox{X1: 2, Y1: 10, X2: 6, Y2: 14}, regions[1])
	assert.Equal(t, BoundingBox{X1: 30, Y1: 30, X2: 34, Y2: 34}, regions[2])
}

func TestFindRegions_DiagonalTouchIsNotConnected(t *testing.T) {
	white := solid(20, 20, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	other := solid(20, 20, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	// The blocks share only the corner at (4, 4), which 4-connectivity does
	// not bridge.
	blackRect(other, 0, 0, 4, 4)
	blackRect(other, 4, 4, 4, 4)

	regions, err := FindRegions(white, other, 0)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, BoundingBox{X1: 0, Y1: 0, X2: 4, Y2: 4}, regions[0])
	assert.Equal(t, BoundingBox{X1: 4, Y1: 4, X2: 8, Y2: 8}, regions[1])
}

func TestFindRegions_LShapedComponent(t *testing.T) {
	left := text.MustToNRGBA(`! SKTEXTSIMPLE
6 6
0xff 0xff 0xff 0xff 0xff 0xff
0xff 0x00 0xff 0xff 0xff 0xff
0xff 0x00 0xff 0xff 0xff 0xff
0xff 0x00 0xff 0xff 0xff 0xff
0xff 0x00 0x00 0x00 0x00 0xff
0xff 0xff 0xff 0xff 0xff 0xff`)
	white := solid(6, 6, color.NRGBA{0xff, 0xff, 0xff, 0xff})

	// The L covers 7 pixels but its bounding box covers 16, which is over the
	// noise limit.
	regions, err := FindRegions(left, white, 0)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, BoundingBox{X1: 1, Y1: 1, X2: 5, Y2: 5}, regions[0])
}

func TestFindRegions_LargeComponentDoesNotOverflow(t *testing.T) {
	// A single component spanning the whole image exercises the worklist fill
	// on a path a recursive fill could not handle.
	white := solid(500, 500, color.NRGBA{0xff, 0xff, 0xff, 0xff})
	black := solid(500, 500, color.NRGBA{0x00, 0x00, 0x00, 0xff})

	regions, err := FindRegions(white, black, 0)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, BoundingBox{X1: 0, Y1: 0, X2: 500, Y2: 500}, regions[0])
}

func TestFindRegions_ThresholdMatchesDiff(t *testing.T) {
	a := solid(20, 20, color.NRGBA{200, 200, 200, 0xff})
	b := solid(20, 20, color.NRGBA{200, 200, 200, 0xff})
	blackRect(b, 2, 2, 5, 5)

	// Below the suppression threshold the region disappears entirely.
	regions, err := FindRegions(a, b, 255)
	require.NoError(t, err)
	assert.Empty(t, regions)

	regions, err = FindRegions(a, b, 0)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, BoundingBox{X1: 2, Y1: 2, X2: 7, Y2: 7}, regions[0])
}
