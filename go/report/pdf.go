package report

import (
	"bytes"
	"fmt"
	"image/png"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
)

const pdfMargin = 25.0 // mm

// SavePDF writes a PDF report: a title page with the overall statistics
// followed by one page per diff image, each with its per-page numbers and
// the image scaled to fit.
func (r *Reporter) SavePDF(path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pageWidth, pageHeight := pdf.GetPageSize()

	verdict := "DIFFERENT"
	if r.stats.IsIdentical() {
		verdict = "IDENTICAL"
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, "PDF Comparison Report", "", 1, "C", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")),
		"",
		fmt.Sprintf("PDF 1: %s (%d pages)", filepath.Base(r.stats.LeftPath), r.stats.LeftPages),
		fmt.Sprintf("PDF 2: %s (%d pages)", filepath.Base(r.stats.RightPath), r.stats.RightPages),
		"",
		fmt.Sprintf("Result: %s", verdict),
		fmt.Sprintf("Overall Similarity: %.2f%%", r.stats.OverallSimilarity),
		fmt.Sprintf("Pages Compared: %d", r.stats.PagesCompared),
		fmt.Sprintf("Identical Pages: %d", r.stats.IdenticalPages),
		fmt.Sprintf("Different Pages: %d", r.stats.DifferentPages),
	} {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	for i, img := range r.diffImages {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", i+1), "", 1, "L", false, 0, "")

		if i < len(r.stats.Pages) {
			ps := r.stats.Pages[i]
			status := "DIFFERENT"
			if ps.IsIdentical {
				status = "IDENTICAL"
			}
			pdf.SetFont("Helvetica", "", 10)
			for _, line := range []string{
				fmt.Sprintf("Status: %s", status),
				fmt.Sprintf("Similarity: %.2f%%", ps.SimilarityPercent),
				fmt.Sprintf("Different Pixels: %d / %d", ps.DifferentPixels, ps.TotalPixels),
				fmt.Sprintf("Difference Regions: %d", ps.NumDiffRegions),
			} {
				pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
			}
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
		name := fmt.Sprintf("diff_page_%d", i+1)
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, &buf)

		// Scale the image to the printable area, preserving aspect ratio.
		maxW := pageWidth - 2*pdfMargin
		maxH := pageHeight - pdf.GetY() - 2*pdfMargin
		imgW := float64(img.Bounds().Dx())
		imgH := float64(img.Bounds().Dy())
		scale := maxW / imgW
		if imgH*scale > maxH {
			scale = maxH / imgH
		}
		pdf.ImageOptions(name, pdfMargin, pdf.GetY()+5, imgW*scale, imgH*scale, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}
