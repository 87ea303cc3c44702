package report

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"image/png"
	"io"

	"github.com/ADR3N4LYN3/pdf-compare/go/stats"
	"github.com/ADR3N4LYN3/pdf-compare/go/util"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>PDF Comparison Report</title>
<style>
  body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; background: #f4f4f4; color: #333; }
  .container { max-width: 1100px; margin: 0 auto; padding: 20px; }
  .summary { background: #fff; border-radius: 8px; padding: 20px; margin-bottom: 20px; box-shadow: 0 1px 3px rgba(0,0,0,.15); }
  .verdict { font-size: 1.4em; font-weight: bold; }
  .verdict.identical { color: #2e7d32; }
  .verdict.different { color: #c62828; }
  table { border-collapse: collapse; margin-top: 10px; }
  td { padding: 2px 14px 2px 0; }
  .page { background: #fff; border-radius: 8px; padding: 20px; margin-bottom: 20px; box-shadow: 0 1px 3px rgba(0,0,0,.15); }
  .page img { max-width: 100%; border: 1px solid #ddd; }
  .status-identical { color: #2e7d32; font-weight: bold; }
  .status-different { color: #c62828; font-weight: bold; }
</style>
</head>
<body>
<div class="container">
  <div class="summary">
    <h1>PDF Comparison Report</h1>
    {{if .Stats.IsIdentical}}<div class="verdict identical">IDENTICAL</div>{{else}}<div class="verdict different">DIFFERENT</div>{{end}}
    <table>
      <tr><td>PDF 1</td><td>{{.Stats.LeftPath}} ({{.Stats.LeftPages}} pages)</td></tr>
      <tr><td>PDF 2</td><td>{{.Stats.RightPath}} ({{.Stats.RightPages}} pages)</td></tr>
      <tr><td>Overall Similarity</td><td>{{printf "%.2f" .Stats.OverallSimilarity}}%</td></tr>
      <tr><td>Pages Compared</td><td>{{.Stats.PagesCompared}}</td></tr>
      <tr><td>Identical Pages</td><td>{{.Stats.IdenticalPages}}</td></tr>
      <tr><td>Different Pages</td><td>{{.Stats.DifferentPages}}</td></tr>
    </table>
  </div>
  {{range .Pages}}
  <div class="page">
    <h2>Page {{.Number}}
      {{if .Stats.IsIdentical}}<span class="status-identical">IDENTICAL</span>{{else}}<span class="status-different">DIFFERENT</span>{{end}}
    </h2>
    {{if not .Stats.IsIdentical}}
    <table>
      <tr><td>Similarity</td><td>{{printf "%.2f" .Stats.SimilarityPercent}}%</td></tr>
      <tr><td>Different Pixels</td><td>{{.Stats.DifferentPixels}} / {{.Stats.TotalPixels}}</td></tr>
      <tr><td>Difference Regions</td><td>{{.Stats.NumDiffRegions}}</td></tr>
    </table>
    {{end}}
    {{if .Image}}<img src="data:image/png;base64,{{.Image}}" alt="Page {{.Number}} diff">{{end}}
  </div>
  {{end}}
</div>
</body>
</html>
`))

type htmlPage struct {
	Number int
	Stats  *stats.PageStats
	Image  string
}

// WriteHTML writes a standalone HTML report with the diff images embedded as
// base64 PNG data URIs.
func (r *Reporter) WriteHTML(w io.Writer) error {
	pages := make([]htmlPage, 0, len(r.stats.Pages))
	for i, ps := range r.stats.Pages {
		page := htmlPage{Number: i + 1, Stats: ps}
		if i < len(r.diffImages) && r.diffImages[i] != nil {
			var buf bytes.Buffer
			if err := png.Encode(&buf, r.diffImages[i]); err != nil {
				return err
			}
			page.Image = base64.StdEncoding.EncodeToString(buf.Bytes())
		}
		pages = append(pages, page)
	}
	return htmlTemplate.Execute(w, struct {
		Stats *stats.ComparisonStats
		Pages []htmlPage
	}{
		Stats: r.stats,
		Pages: pages,
	})
}

// SaveHTML writes the HTML report to the given file.
func (r *Reporter) SaveHTML(path string) error {
	return util.WithWriteFile(path, r.WriteHTML)
}
