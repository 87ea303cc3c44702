// Package report serializes comparison results to JSON, text, HTML and PDF
// reports, and writes the per-page diff images to disk. It only consumes
// the data contract exposed by the compare package; it never re-runs any
// comparison.
package report

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"

	"github.com/ADR3N4LYN3/pdf-compare/go/fileutil"
	"github.com/ADR3N4LYN3/pdf-compare/go/stats"
	"github.com/ADR3N4LYN3/pdf-compare/go/util"
)

// Reporter emits the results of one comparison run in various formats.
type Reporter struct {
	stats      *stats.ComparisonStats
	diffImages []*image.NRGBA
}

// NewReporter returns a Reporter over the given results. diffImages must be
// in page order and may be nil for the formats that do not embed images
// (JSON, text).
func NewReporter(st *stats.ComparisonStats, diffImages []*image.NRGBA) *Reporter {
	return &Reporter{
		stats:      st,
		diffImages: diffImages,
	}
}

// WriteJSON writes the statistics as indented JSON.
func (r *Reporter) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.stats)
}

// SaveJSON writes the statistics as indented JSON to the given file.
func (r *Reporter) SaveJSON(path string) error {
	return util.WithWriteFile(path, r.WriteJSON)
}

// SaveText writes the human readable summary to the given file.
func (r *Reporter) SaveText(path string) error {
	return util.WithWriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, r.stats.Summary())
		return err
	})
}

// SaveDiffImages writes the per-page diff images as PNG files named
// diff_page_NNN.png into outDir, creating the directory if needed.
func (r *Reporter) SaveDiffImages(outDir string) error {
	outDir, err := fileutil.EnsureDirExists(outDir)
	if err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, img := range r.diffImages {
		path := filepath.Join(outDir, fmt.Sprintf("diff_page_%03d.png", i+1))
		img := img
		err := util.WithWriteFile(path, func(w io.Writer) error {
			return png.Encode(w, img)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
