package diff

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// outlineWidth is the thickness in pixels of the rectangles drawn around
// difference regions.
const outlineWidth = 3

// AnnotatedDiff builds a richer variant of the composite image: differing
// pixels are overwritten with the given highlight color and, if drawBoxes is
// set, each difference region is framed with a numbered rectangle. This is
// the drill-down image offered to report emitters; Diff remains the cheap
// default path.
func AnnotatedDiff(left, right *image.NRGBA, threshold int, highlight color.NRGBA, drawBoxes bool) (*image.NRGBA, error) {
	_, composite, err := diffWithHighlight(left, right, threshold, highlight)
	if err != nil {
		return nil, err
	}
	if !drawBoxes {
		return composite, nil
	}

	regions, err := FindRegions(left, right, threshold)
	if err != nil {
		return nil, err
	}
	for i, box := range regions {
		drawOutline(composite, box, highlight)
		drawLabel(composite, box, fmt.Sprintf("%d", i+1), highlight)
	}
	return composite, nil
}

// drawOutline paints an outlineWidth thick rectangle around the box, clipped
// to the image bounds.
func drawOutline(img *image.NRGBA, box BoundingBox, c color.NRGBA) {
	for i := 0; i < outlineWidth; i++ {
		hline(img, box.X1-i, box.X2+i, box.Y1-1-i, c)
		hline(img, box.X1-i, box.X2+i, box.Y2+i, c)
		vline(img, box.X1-1-i, box.Y1-i, box.Y2+i, c)
		vline(img, box.X2+i, box.Y1-i, box.Y2+i, c)
	}
}

func hline(img *image.NRGBA, x1, x2, y int, c color.NRGBA) {
	if y < img.Rect.Min.Y || y >= img.Rect.Max.Y {
		return
	}
	for x := x1; x < x2; x++ {
		if x >= img.Rect.Min.X && x < img.Rect.Max.X {
			img.SetNRGBA(x, y, c)
		}
	}
}

func vline(img *image.NRGBA, x, y1, y2 int, c color.NRGBA) {
	if x < img.Rect.Min.X || x >= img.Rect.Max.X {
		return
	}
	for y := y1; y < y2; y++ {
		if y >= img.Rect.Min.Y && y < img.Rect.Max.Y {
			img.SetNRGBA(x, y, c)
		}
	}
}

// drawLabel renders the region number just above the top-left corner of the
// box, falling back to inside the box at the top of the image.
func drawLabel(img *image.NRGBA, box BoundingBox, label string, c color.NRGBA) {
	face := basicfont.Face7x13
	x := box.X1
	y := box.Y1 - outlineWidth - 2
	if y-face.Ascent < img.Rect.Min.Y {
		y = box.Y1 + face.Ascent + outlineWidth
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
