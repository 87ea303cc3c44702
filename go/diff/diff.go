// Package diff computes pixel level differences between two rendered page
// images: a thresholded difference mask, a highlighted composite image and
// summary metrics.
package diff

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ADR3N4LYN3/pdf-compare/go/util"
)

// ErrDimensionMismatch is returned when the two images handed to Diff do not
// have identical width and height. Callers are expected to normalize sizes
// first, see the render package.
var ErrDimensionMismatch = errors.New("images must have the same dimensions")

// DefaultHighlight is the color painted over differing pixels in composite
// images.
var DefaultHighlight = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}

// DiffMetrics contains the summary of diffing two images at a given
// threshold.
type DiffMetrics struct {
	// NumDiffPixels is the number of pixel positions whose thresholded gray
	// intensity is nonzero.
	NumDiffPixels int

	// PixelDiffPercent is NumDiffPixels over the total number of pixel
	// positions, as a value between 0 and 100.
	PixelDiffPercent float32

	// MaxRGBDiffs contains the maximum per-channel difference over all
	// differing pixels.
	MaxRGBDiffs [3]int
}

// Identical returns true if no pixel differed after thresholding.
func (d *DiffMetrics) Identical() bool {
	return d.NumDiffPixels == 0
}

// grayDiffMask computes the thresholded single channel difference mask of
// two equal sized images. The returned buffer is row-major with one entry
// per pixel position; zero means the pixels match within the threshold.
//
// The per-channel absolute differences are collapsed to a gray intensity
// with the ITU-R BT.601 integer weighting (299r + 587g + 114b) / 1000.
// Intensities less than or equal to threshold are suppressed. The alpha
// channel is ignored. Both Diff and FindRegions binarize off this one
// function so their verdicts can never diverge.
func grayDiffMask(left, right *image.NRGBA, threshold int) ([]uint8, int, int, error) {
	lb, rb := left.Bounds(), right.Bounds()
	w, h := lb.Dx(), lb.Dy()
	if w != rb.Dx() || h != rb.Dy() {
		return nil, 0, 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, w, h, rb.Dx(), rb.Dy())
	}
	mask := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		lo := left.PixOffset(lb.Min.X, lb.Min.Y+y)
		ro := right.PixOffset(rb.Min.X, rb.Min.Y+y)
		for x := 0; x < w; x++ {
			dr := util.AbsInt(int(left.Pix[lo]) - int(right.Pix[ro]))
			dg := util.AbsInt(int(left.Pix[lo+1]) - int(right.Pix[ro+1]))
			db := util.AbsInt(int(left.Pix[lo+2]) - int(right.Pix[ro+2]))
			gray := (299*dr + 587*dg + 114*db) / 1000
			if gray > threshold {
				mask[y*w+x] = uint8(gray)
			}
			lo += 4
			ro += 4
		}
	}
	return mask, w, h, nil
}

// Diff compares two equal sized images and returns the diff metrics along
// with a composite image: a copy of left in which every differing pixel is
// overwritten with DefaultHighlight.
func Diff(left, right *image.NRGBA, threshold int) (*DiffMetrics, *image.NRGBA, error) {
	return diffWithHighlight(left, right, threshold, DefaultHighlight)
}

func diffWithHighlight(left, right *image.NRGBA, threshold int, highlight color.NRGBA) (*DiffMetrics, *image.NRGBA, error) {
	mask, w, h, err := grayDiffMask(left, right, threshold)
	if err != nil {
		return nil, nil, err
	}

	composite := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(composite.Pix, left.Pix)

	ret := &DiffMetrics{}
	lb, rb := left.Bounds(), right.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask[y*w+x] == 0 {
				continue
			}
			ret.NumDiffPixels++
			lo := left.PixOffset(lb.Min.X+x, lb.Min.Y+y)
			ro := right.PixOffset(rb.Min.X+x, rb.Min.Y+y)
			for c := 0; c < 3; c++ {
				d := util.AbsInt(int(left.Pix[lo+c]) - int(right.Pix[ro+c]))
				ret.MaxRGBDiffs[c] = util.MaxInt(ret.MaxRGBDiffs[c], d)
			}
			co := composite.PixOffset(x, y)
			composite.Pix[co] = highlight.R
			composite.Pix[co+1] = highlight.G
			composite.Pix[co+2] = highlight.B
			composite.Pix[co+3] = highlight.A
		}
	}
	if w*h > 0 {
		ret.PixelDiffPercent = float32(ret.NumDiffPixels) * 100 / float32(w*h)
	}
	return ret, composite, nil
}

// SimilarityPercent returns the percentage of identical pixel channels
// between the two images, as a value between 0 and 100. The denominator
// counts channels (width*height*3) and each differing pixel position counts
// as three differing channels.
func SimilarityPercent(left, right *image.NRGBA, threshold int) (float64, error) {
	ret, _, err := Diff(left, right, threshold)
	if err != nil {
		return 0, err
	}
	totalChannels := left.Bounds().Dx() * left.Bounds().Dy() * 3
	if totalChannels == 0 {
		return 100.0, nil
	}
	return float64(totalChannels-3*ret.NumDiffPixels) / float64(totalChannels) * 100, nil
}
