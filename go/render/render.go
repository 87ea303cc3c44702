// Package render defines the rasterizer contract the comparison pipeline
// consumes, plus the image size normalization step that runs before any two
// page rasters are diffed. The MuPDF backed implementation lives in fitz.go.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/ADR3N4LYN3/pdf-compare/go/util"
)

// ErrPageOutOfRange is returned by Document.RenderPage for page numbers
// outside [0, PageCount()).
var ErrPageOutOfRange = errors.New("page number out of range")

// DefaultDPI is the rasterization resolution used when the caller does not
// choose one.
const DefaultDPI = 150

// Document is one open page-bearing document.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// RenderPage rasterizes the 0-based page into a fresh RGB raster. The
	// caller owns the returned buffer.
	RenderPage(pageNumber int) (*image.NRGBA, error)

	// Close releases the resources held by the document.
	Close() error
}

// Renderer opens documents for rasterization.
type Renderer interface {
	Open(path string) (Document, error)
}

// background is the fill used for padded areas during normalization.
var background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Normalize pads the two images to a common canvas size: the maximum of
// both widths and both heights. Original pixel content stays anchored at the
// origin and the padding on the right and bottom edges is filled white.
// Images that already have the target size are returned unchanged.
// Normalization only ever extends, it never crops or scales.
func Normalize(a, b *image.NRGBA) (*image.NRGBA, *image.NRGBA) {
	width := util.MaxInt(a.Bounds().Dx(), b.Bounds().Dx())
	height := util.MaxInt(a.Bounds().Dy(), b.Bounds().Dy())
	return padTo(a, width, height), padTo(b, width, height)
}

func padTo(img *image.NRGBA, width, height int) *image.NRGBA {
	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return img
	}
	ret := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(ret, ret.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	draw.Draw(ret, img.Bounds().Sub(img.Bounds().Min), img, img.Bounds().Min, draw.Src)
	return ret
}

// ToNRGBA returns the image as an *image.NRGBA, converting if necessary.
func ToNRGBA(img image.Image) *image.NRGBA {
	if ret, ok := img.(*image.NRGBA); ok {
		return ret
	}
	ret := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(ret, ret.Bounds(), img, img.Bounds().Min, draw.Src)
	return ret
}
