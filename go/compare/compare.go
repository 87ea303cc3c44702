// Package compare orchestrates a full document comparison run: input
// validation, page rasterization, size normalization, per-page diffing and
// aggregation of the results.
package compare

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ADR3N4LYN3/pdf-compare/go/diff"
	"github.com/ADR3N4LYN3/pdf-compare/go/fileutil"
	"github.com/ADR3N4LYN3/pdf-compare/go/render"
	"github.com/ADR3N4LYN3/pdf-compare/go/sklog"
	"github.com/ADR3N4LYN3/pdf-compare/go/stats"
	"github.com/ADR3N4LYN3/pdf-compare/go/util"
)

// State describes where a Comparator is in its lifecycle.
type State string

const (
	StateIdle       State = "Idle"
	StateValidating State = "Validating"
	StateComparing  State = "Comparing"
	StateAggregated State = "Aggregated"
	StateFailed     State = "Failed"
)

// ErrNoResults is returned when results are requested before a comparison
// has completed successfully. This is a programmer error in the calling
// code, not a property of the compared documents.
var ErrNoResults = errors.New("no comparison results available, run Compare first")

// ProgressFn is called after each page finishes. completed is strictly
// increasing from 1 to total over the course of one run.
type ProgressFn func(completed, total int)

// Config configures a Comparator. The zero value selects 150 DPI, exact
// matching (threshold 0), one worker per CPU and the MuPDF renderer.
type Config struct {
	// DPI is the rasterization resolution.
	DPI float64

	// Threshold is the minimum gray intensity delta (0-255) for a pixel to
	// count as different.
	Threshold int

	// NumWorkers bounds how many pages are diffed concurrently.
	NumWorkers int

	// Progress, if set, receives page completion notifications.
	Progress ProgressFn

	// Renderer overrides the default MuPDF renderer, e.g. for tests.
	Renderer render.Renderer
}

// Comparator runs comparisons and holds the results of the most recent run
// for retrieval by report emitters. It is safe for concurrent reads but
// only one Compare may be in flight at a time.
type Comparator struct {
	dpi        float64
	threshold  int
	numWorkers int
	progress   ProgressFn
	renderer   render.Renderer

	mtx        sync.Mutex
	state      State
	stats      *stats.ComparisonStats
	diffImages []*image.NRGBA
	leftPath   string
	rightPath  string
}

// New returns a Comparator for the given configuration.
func New(cfg Config) *Comparator {
	if cfg.DPI <= 0 {
		cfg.DPI = render.DefaultDPI
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.GOMAXPROCS(0)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.NewRenderer(cfg.DPI)
	}
	return &Comparator{
		dpi:        cfg.DPI,
		threshold:  cfg.Threshold,
		numWorkers: cfg.NumWorkers,
		progress:   cfg.Progress,
		renderer:   cfg.Renderer,
		state:      StateIdle,
	}
}

// State returns the current lifecycle state.
func (c *Comparator) State() State {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.state
}

func (c *Comparator) setState(s State) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.state = s
}

// Compare compares the two documents page by page and returns the aggregate
// statistics. Any previous results held by the Comparator are discarded at
// the start of the run. A failure on any page aborts the entire run with no
// partial result retained.
func (c *Comparator) Compare(ctx context.Context, leftPath, rightPath string) (*stats.ComparisonStats, error) {
	c.mtx.Lock()
	c.state = StateValidating
	c.stats = nil
	c.diffImages = nil
	c.leftPath = leftPath
	c.rightPath = rightPath
	c.mtx.Unlock()

	leftPages, rightPages, err := c.validate(leftPath, rightPath)
	if err != nil {
		c.setState(StateFailed)
		return nil, err
	}

	pagesToCompare := util.MinInt(leftPages, rightPages)
	sklog.Infof("Comparing %q (%d pages) and %q (%d pages): %d pages to compare", leftPath, leftPages, rightPath, rightPages, pagesToCompare)
	c.setState(StateComparing)

	pageStats := make([]*stats.PageStats, pagesToCompare)
	diffImages := make([]*image.NRGBA, pagesToCompare)

	indexCh := make(chan int, pagesToCompare)
	for i := 0; i < pagesToCompare; i++ {
		indexCh <- i
	}
	close(indexCh)

	completed := 0
	var progressMtx sync.Mutex
	notify := func() {
		progressMtx.Lock()
		defer progressMtx.Unlock()
		completed++
		if c.progress != nil {
			c.progress(completed, pagesToCompare)
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < util.MinInt(c.numWorkers, util.MaxInt(pagesToCompare, 1)); w++ {
		eg.Go(func() error {
			// Each worker owns its documents and page buffers, so no
			// locking is needed around the actual diffing.
			leftDoc, err := c.renderer.Open(leftPath)
			if err != nil {
				return err
			}
			defer util.Close(leftDoc)
			rightDoc, err := c.renderer.Open(rightPath)
			if err != nil {
				return err
			}
			defer util.Close(rightDoc)

			for i := range indexCh {
				// Page boundaries are the clean cancellation points.
				if err := egCtx.Err(); err != nil {
					return err
				}
				ps, img, err := c.comparePage(leftDoc, rightDoc, i)
				if err != nil {
					return err
				}
				pageStats[i] = ps
				diffImages[i] = img
				notify()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		c.setState(StateFailed)
		return nil, err
	}

	ret := stats.CalcComparisonStats(leftPath, rightPath, leftPages, rightPages, pageStats)

	c.mtx.Lock()
	c.stats = ret
	c.diffImages = diffImages
	c.state = StateAggregated
	c.mtx.Unlock()
	return ret, nil
}

// validate checks both inputs resolve to page-bearing documents before any
// page work begins and returns their page counts.
func (c *Comparator) validate(leftPath, rightPath string) (int, int, error) {
	counts := make([]int, 2)
	for i, path := range []string{leftPath, rightPath} {
		if !fileutil.FileExists(path) {
			return 0, 0, fmt.Errorf("file not found: %s", path)
		}
		doc, err := c.renderer.Open(path)
		if err != nil {
			return 0, 0, err
		}
		counts[i] = doc.PageCount()
		util.Close(doc)
	}
	return counts[0], counts[1], nil
}

// comparePage renders page i from both documents, normalizes sizes, and
// computes the diff image, regions and statistics for that page.
func (c *Comparator) comparePage(leftDoc, rightDoc render.Document, i int) (*stats.PageStats, *image.NRGBA, error) {
	leftImg, err := leftDoc.RenderPage(i)
	if err != nil {
		return nil, nil, err
	}
	rightImg, err := rightDoc.RenderPage(i)
	if err != nil {
		return nil, nil, err
	}
	leftImg, rightImg = render.Normalize(leftImg, rightImg)

	metrics, composite, err := diff.Diff(leftImg, rightImg, c.threshold)
	if err != nil {
		return nil, nil, err
	}
	regions, err := diff.FindRegions(leftImg, rightImg, c.threshold)
	if err != nil {
		return nil, nil, err
	}

	totalChannels := leftImg.Bounds().Dx() * leftImg.Bounds().Dy() * 3
	ps := stats.CalcPageStats(i, metrics.Identical(), totalChannels, 3*metrics.NumDiffPixels, regions)
	return ps, composite, nil
}

// Stats returns the aggregate statistics of the most recent run.
func (c *Comparator) Stats() (*stats.ComparisonStats, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.state != StateAggregated {
		return nil, ErrNoResults
	}
	return c.stats, nil
}

// DiffImages returns the per-page composite images of the most recent run,
// in page order.
func (c *Comparator) DiffImages() ([]*image.NRGBA, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.state != StateAggregated {
		return nil, ErrNoResults
	}
	return c.diffImages, nil
}

// AnnotatedPage re-renders one compared page pair and produces the richer
// annotated diff image with a caller chosen highlight color and optional
// numbered boxes around each difference region.
func (c *Comparator) AnnotatedPage(ctx context.Context, pageNumber int, highlight color.NRGBA, drawBoxes bool) (*image.NRGBA, error) {
	c.mtx.Lock()
	if c.state != StateAggregated {
		c.mtx.Unlock()
		return nil, ErrNoResults
	}
	leftPath, rightPath := c.leftPath, c.rightPath
	pagesCompared := c.stats.PagesCompared
	c.mtx.Unlock()

	if pageNumber < 0 || pageNumber >= pagesCompared {
		return nil, fmt.Errorf("%w: page %d, compared %d pages", render.ErrPageOutOfRange, pageNumber, pagesCompared)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	leftDoc, err := c.renderer.Open(leftPath)
	if err != nil {
		return nil, err
	}
	defer util.Close(leftDoc)
	rightDoc, err := c.renderer.Open(rightPath)
	if err != nil {
		return nil, err
	}
	defer util.Close(rightDoc)

	leftImg, err := leftDoc.RenderPage(pageNumber)
	if err != nil {
		return nil, err
	}
	rightImg, err := rightDoc.RenderPage(pageNumber)
	if err != nil {
		return nil, err
	}
	leftImg, rightImg = render.Normalize(leftImg, rightImg)
	return diff.AnnotatedDiff(leftImg, rightImg, c.threshold, highlight, drawBoxes)
}

// ExitCode maps the most recent result onto the process exit code contract:
// 0 for identical documents, 1 otherwise.
func (c *Comparator) ExitCode() int {
	st, err := c.Stats()
	if err != nil {
		return 1
	}
	if st.IsIdentical() {
		return 0
	}
	return 1
}
