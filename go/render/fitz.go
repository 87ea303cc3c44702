package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// fitzRenderer implements Renderer on top of MuPDF via go-fitz.
type fitzRenderer struct {
	dpi float64
}

// NewRenderer returns a MuPDF backed Renderer that rasterizes pages at the
// given resolution. A dpi of 0 selects DefaultDPI.
func NewRenderer(dpi float64) Renderer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &fitzRenderer{dpi: dpi}
}

// Open implements the Renderer interface.
func (r *fitzRenderer) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %q: %w", path, err)
	}
	return &fitzDocument{doc: doc, path: path, dpi: r.dpi}, nil
}

// fitzDocument implements Document. A fitz.Document is not safe for
// concurrent use; callers that parallelize page work must open one Document
// per goroutine.
type fitzDocument struct {
	doc  *fitz.Document
	path string
	dpi  float64
}

// PageCount implements the Document interface.
func (d *fitzDocument) PageCount() int {
	return d.doc.NumPage()
}

// RenderPage implements the Document interface.
func (d *fitzDocument) RenderPage(pageNumber int) (*image.NRGBA, error) {
	if pageNumber < 0 || pageNumber >= d.doc.NumPage() {
		return nil, fmt.Errorf("%w: page %d does not exist in %q (total: %d)", ErrPageOutOfRange, pageNumber, d.path, d.doc.NumPage())
	}
	img, err := d.doc.ImageDPI(pageNumber, d.dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d from %q: %w", pageNumber, d.path, err)
	}
	return ToNRGBA(img), nil
}

// Close implements the Document interface.
func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
