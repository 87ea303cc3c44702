// Package stats converts raw diff results into per-page and overall
// comparison statistics records, and defines their JSON serialization.
package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/ADR3N4LYN3/pdf-compare/go/diff"
)

// RegionStats is the flattened description of one difference region.
type RegionStats struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Area   int `json:"area"`
}

// PageStats holds the comparison statistics for a single page. It is
// immutable after CalcPageStats returns it.
type PageStats struct {
	// PageNumber is 0-based.
	PageNumber  int  `json:"page_number"`
	IsIdentical bool `json:"is_identical"`

	// TotalPixels and DifferentPixels count pixel channels, i.e. three per
	// pixel position.
	TotalPixels     int `json:"total_pixels"`
	DifferentPixels int `json:"different_pixels"`

	// DifferencePercent and SimilarityPercent always sum to exactly 100.
	DifferencePercent float64 `json:"difference_percentage"`
	SimilarityPercent float64 `json:"similarity_percentage"`

	NumDiffRegions int           `json:"num_difference_regions"`
	DiffRegions    []RegionStats `json:"difference_regions"`
}

// CalcPageStats builds the PageStats record for one compared page.
// totalPixels and differentPixels are channel counts. regions is taken as
// produced by diff.FindRegions; region detection is not re-run here.
func CalcPageStats(pageNumber int, identical bool, totalPixels, differentPixels int, regions []diff.BoundingBox) *PageStats {
	diffPct := 0.0
	simPct := 100.0
	if totalPixels > 0 {
		diffPct = float64(differentPixels) / float64(totalPixels) * 100
		simPct = 100.0 - diffPct
	}

	regionStats := make([]RegionStats, 0, len(regions))
	for _, r := range regions {
		regionStats = append(regionStats, RegionStats{
			X:      r.X1,
			Y:      r.Y1,
			Width:  r.Width(),
			Height: r.Height(),
			Area:   r.Area(),
		})
	}

	return &PageStats{
		PageNumber:        pageNumber,
		IsIdentical:       identical,
		TotalPixels:       totalPixels,
		DifferentPixels:   differentPixels,
		DifferencePercent: diffPct,
		SimilarityPercent: simPct,
		NumDiffRegions:    len(regions),
		DiffRegions:       regionStats,
	}
}

// MarshalJSON implements the json.Marshaler interface. Percentages are
// rounded to two decimals on the wire.
func (p *PageStats) MarshalJSON() ([]byte, error) {
	type alias PageStats
	cp := *p
	cp.DifferencePercent = round2(cp.DifferencePercent)
	cp.SimilarityPercent = round2(cp.SimilarityPercent)
	return json.Marshal((*alias)(&cp))
}

// ComparisonStats is the aggregate result of comparing two documents.
type ComparisonStats struct {
	LeftPath   string `json:"pdf1_path"`
	RightPath  string `json:"pdf2_path"`
	LeftPages  int    `json:"pdf1_pages"`
	RightPages int    `json:"pdf2_pages"`

	// PagesCompared is min(LeftPages, RightPages); pages beyond that range
	// are never scored.
	PagesCompared  int `json:"pages_compared"`
	IdenticalPages int `json:"identical_pages"`
	DifferentPages int `json:"different_pages"`

	// OverallSimilarity is the unweighted mean of the per-page similarity
	// percentages. It is 0 when no pages were compared: nothing was
	// verified, which is not the same as everything matching.
	OverallSimilarity float64 `json:"overall_similarity"`

	Pages []*PageStats `json:"page_stats"`
}

// CalcComparisonStats folds the per-page statistics and the page count
// metadata into the aggregate record.
func CalcComparisonStats(leftPath, rightPath string, leftPages, rightPages int, pages []*PageStats) *ComparisonStats {
	identical := 0
	totalSimilarity := 0.0
	for _, p := range pages {
		if p.IsIdentical {
			identical++
		}
		totalSimilarity += p.SimilarityPercent
	}
	overall := 0.0
	if len(pages) > 0 {
		overall = totalSimilarity / float64(len(pages))
	}
	return &ComparisonStats{
		LeftPath:          leftPath,
		RightPath:         rightPath,
		LeftPages:         leftPages,
		RightPages:        rightPages,
		PagesCompared:     len(pages),
		IdenticalPages:    identical,
		DifferentPages:    len(pages) - identical,
		OverallSimilarity: overall,
		Pages:             pages,
	}
}

// IsIdentical reports whether the two documents are completely identical:
// the page counts must match and no compared page may differ. Two documents
// whose compared pages all match but whose page counts differ are not
// identical even though OverallSimilarity reads 100.
func (c *ComparisonStats) IsIdentical() bool {
	return c.LeftPages == c.RightPages && c.DifferentPages == 0
}

// MarshalJSON implements the json.Marshaler interface. The derived
// are_identical verdict is included so serialized reports are self
// contained; percentages are rounded to two decimals.
func (c *ComparisonStats) MarshalJSON() ([]byte, error) {
	type alias ComparisonStats
	cp := *c
	cp.OverallSimilarity = round2(cp.OverallSimilarity)
	return json.Marshal(struct {
		*alias
		AreIdentical bool `json:"are_identical"`
	}{
		alias:        (*alias)(&cp),
		AreIdentical: c.IsIdentical(),
	})
}

// DifferentPageNumbers returns the 0-based numbers of all compared pages
// that differ.
func (c *ComparisonStats) DifferentPageNumbers() []int {
	var ret []int
	for _, p := range c.Pages {
		if !p.IsIdentical {
			ret = append(ret, p.PageNumber)
		}
	}
	return ret
}

// Page returns the statistics for the given 0-based page number.
func (c *ComparisonStats) Page(pageNumber int) (*PageStats, error) {
	for _, p := range c.Pages {
		if p.PageNumber == pageNumber {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no statistics found for page %d", pageNumber)
}

// Summary returns a human readable multi-line summary of the comparison.
func (c *ComparisonStats) Summary() string {
	var b strings.Builder
	verdict := "DIFFERENT"
	if c.IsIdentical() {
		verdict = "IDENTICAL"
	}
	fmt.Fprintf(&b, "PDF Comparison Summary\n")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(&b, "PDF 1: %s (%d pages)\n", c.LeftPath, c.LeftPages)
	fmt.Fprintf(&b, "PDF 2: %s (%d pages)\n", c.RightPath, c.RightPages)
	fmt.Fprintf(&b, "\nResult: %s\n\n", verdict)
	fmt.Fprintf(&b, "Overall Similarity: %.2f%%\n", c.OverallSimilarity)
	fmt.Fprintf(&b, "Pages Compared: %d\n", c.PagesCompared)
	fmt.Fprintf(&b, "Identical Pages: %d\n", c.IdenticalPages)
	fmt.Fprintf(&b, "Different Pages: %d\n", c.DifferentPages)

	if len(c.Pages) > 0 {
		fmt.Fprintf(&b, "\nPer-Page Details:\n")
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 50))
		for _, p := range c.Pages {
			status := "DIFFERENT"
			if p.IsIdentical {
				status = "IDENTICAL"
			}
			fmt.Fprintf(&b, "  Page %d: %s\n", p.PageNumber+1, status)
			if !p.IsIdentical {
				fmt.Fprintf(&b, "    Similarity: %.2f%%\n", p.SimilarityPercent)
				fmt.Fprintf(&b, "    Different Pixels: %d / %d\n", p.DifferentPixels, p.TotalPixels)
				fmt.Fprintf(&b, "    Difference Regions: %d\n", p.NumDiffRegions)
			}
		}
	}
	return b.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
