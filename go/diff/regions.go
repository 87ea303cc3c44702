package diff

import (
	"fmt"
	"image"

	"github.com/ADR3N4LYN3/pdf-compare/go/util"
)

// maxNoiseArea is the largest region area that is still considered rendering
// noise. Components whose bounding box covers this many pixels or fewer are
// dropped from FindRegions results.
const maxNoiseArea = 10

// BoundingBox is an axis-aligned rectangle around one connected component of
// differing pixels. The upper bounds are exclusive: a single pixel at (3, 5)
// yields {3, 5, 4, 6}.
type BoundingBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the width of the box in pixels.
func (b BoundingBox) Width() int {
	return b.X2 - b.X1
}

// Height returns the height of the box in pixels.
func (b BoundingBox) Height() int {
	return b.Y2 - b.Y1
}

// Area returns the number of pixels covered by the box.
func (b BoundingBox) Area() int {
	return b.Width() * b.Height()
}

// String implements the fmt.Stringer interface.
func (b BoundingBox) String() string {
	return fmt.Sprintf("BoundingBox(x=%d, y=%d, w=%d, h=%d)", b.X1, b.Y1, b.Width(), b.Height())
}

// FindRegions compares the two images at the given threshold and returns the
// bounding boxes of all 4-connected components of differing pixels, in the
// row-major scan order of each component's first pixel. Components with a
// bounding box area of maxNoiseArea pixels or fewer are dropped, so isolated
// anti-aliasing jitter does not show up as a difference region.
func FindRegions(left, right *image.NRGBA, threshold int) ([]BoundingBox, error) {
	mask, w, h, err := grayDiffMask(left, right, threshold)
	if err != nil {
		return nil, err
	}

	visited := make([]bool, w*h)
	var regions []BoundingBox
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask[y*w+x] == 0 || visited[y*w+x] {
				continue
			}
			box := fillComponent(mask, visited, w, h, x, y)
			if box.Area() > maxNoiseArea {
				regions = append(regions, box)
			}
		}
	}
	return regions, nil
}

// fillComponent flood fills the 4-connected component of set mask pixels
// containing (startX, startY), marking every member visited, and returns its
// bounding box. The fill is iterative with an explicit worklist so that
// arbitrarily large components cannot exhaust the call stack.
func fillComponent(mask []uint8, visited []bool, w, h, startX, startY int) BoundingBox {
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	stack := [][2]int{{startX, startY}}
	visited[startY*w+startX] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := p[0], p[1]

		minX = util.MinInt(minX, x)
		minY = util.MinInt(minY, y)
		maxX = util.MaxInt(maxX, x)
		maxY = util.MaxInt(maxY, y)

		for _, n := range [4][2]int{{x + 1, y}, {x - 1, y}, {x, y + 1}, {x, y - 1}} {
			nx, ny := n[0], n[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			idx := ny*w + nx
			if mask[idx] == 0 || visited[idx] {
				continue
			}
			visited[idx] = true
			stack = append(stack, n)
		}
	}
	return BoundingBox{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1}
}
