package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ADR3N4LYN3/pdf-compare/go/compare"
	"github.com/ADR3N4LYN3/pdf-compare/go/report"
	"github.com/ADR3N4LYN3/pdf-compare/go/resultstore"
	"github.com/ADR3N4LYN3/pdf-compare/go/stats"
)

// compareEnv provides the environment for the compare command.
type compareEnv struct {
	threshold  int
	dpi        float64
	parallel   int
	quiet      bool
	noProgress bool

	outPDF    string
	outJSON   string
	outHTML   string
	outText   string
	outImages string

	storeDir string
	runID    string
}

// getCompareCmd returns the definition of the compare command.
func getCompareCmd() *cobra.Command {
	env := &compareEnv{}
	cmd := &cobra.Command{
		Use:   "compare <pdf1> <pdf2>",
		Short: "Compare two PDF files page by page",
		Long: `
Renders both PDFs at the chosen resolution, computes per-page pixel
differences and prints a summary. Exits 0 if the documents are identical,
1 if they differ and 2 on error.
`,
		Args: cobra.ExactArgs(2),
		Run:  env.runCompareCmd,
	}

	cmd.Flags().IntVar(&env.threshold, "threshold", 0, "Pixel difference threshold 0-255 (0 means exact match)")
	cmd.Flags().Float64Var(&env.dpi, "dpi", 150, "Resolution for PDF rendering")
	cmd.Flags().IntVar(&env.parallel, "parallel", 0, "Number of pages to diff concurrently (0 means one per CPU)")
	cmd.Flags().BoolVarP(&env.quiet, "quiet", "q", false, "Quiet mode, only the exit code reports the result")
	cmd.Flags().BoolVar(&env.noProgress, "no-progress", false, "Disable per-page progress output")
	cmd.Flags().StringVar(&env.outPDF, "out-pdf", "", "Write a PDF report with highlighted differences to this file")
	cmd.Flags().StringVar(&env.outJSON, "out-json", "", "Write detailed statistics as JSON to this file")
	cmd.Flags().StringVar(&env.outHTML, "out-html", "", "Write an HTML report with embedded diff images to this file")
	cmd.Flags().StringVar(&env.outText, "out-text", "", "Write the comparison summary as text to this file")
	cmd.Flags().StringVar(&env.outImages, "out-images", "", "Write per-page diff images as PNGs into this directory")
	cmd.Flags().StringVar(&env.storeDir, "store", "", "Directory of a result store to record this run in")
	cmd.Flags().StringVar(&env.runID, "run-id", "", "Run ID used with --store (defaults to a timestamp)")

	return cmd
}

func (e *compareEnv) runCompareCmd(cmd *cobra.Command, args []string) {
	leftPath, rightPath := args[0], args[1]

	var progress compare.ProgressFn
	if !e.quiet && !e.noProgress {
		progress = func(completed, total int) {
			fmt.Printf("\rComparing pages: %d/%d", completed, total)
			if completed == total {
				fmt.Println()
			}
		}
	}

	comparator := compare.New(compare.Config{
		DPI:        e.dpi,
		Threshold:  e.threshold,
		NumWorkers: e.parallel,
		Progress:   progress,
	})

	if !e.quiet {
		fmt.Println("[INFO] Comparing PDFs...")
		fmt.Printf("[INFO]   PDF 1: %s\n", leftPath)
		fmt.Printf("[INFO]   PDF 2: %s\n", rightPath)
		fmt.Printf("[INFO]   DPI: %v, Threshold: %d\n", e.dpi, e.threshold)
	}

	st, err := comparator.Compare(context.Background(), leftPath, rightPath)
	ifErrLogExit(err)

	if !e.quiet {
		fmt.Println()
		if st.IsIdentical() {
			fmt.Println("[OK] PDFs are IDENTICAL")
		} else {
			fmt.Println("[WARNING] PDFs are DIFFERENT")
		}
		fmt.Println()
		fmt.Printf("Summary:\n")
		fmt.Printf("  Overall Similarity: %.2f%%\n", st.OverallSimilarity)
		fmt.Printf("  Pages Compared: %d\n", st.PagesCompared)
		fmt.Printf("  Identical Pages: %d\n", st.IdenticalPages)
		fmt.Printf("  Different Pages: %d\n", st.DifferentPages)
	}

	ifErrLogExit(e.writeOutputs(comparator))
	ifErrLogExit(e.storeRun(st))

	os.Exit(comparator.ExitCode())
}

// writeOutputs generates all the report files requested via flags.
func (e *compareEnv) writeOutputs(comparator *compare.Comparator) error {
	if e.outPDF == "" && e.outJSON == "" && e.outHTML == "" && e.outText == "" && e.outImages == "" {
		return nil
	}
	st, err := comparator.Stats()
	if err != nil {
		return err
	}
	diffImages, err := comparator.DiffImages()
	if err != nil {
		return err
	}
	reporter := report.NewReporter(st, diffImages)

	outputs := []struct {
		path  string
		label string
		fn    func(string) error
	}{
		{e.outPDF, "PDF report", reporter.SavePDF},
		{e.outJSON, "JSON report", reporter.SaveJSON},
		{e.outHTML, "HTML report", reporter.SaveHTML},
		{e.outText, "Text report", reporter.SaveText},
		{e.outImages, "Difference images", reporter.SaveDiffImages},
	}
	generated := false
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := out.fn(out.path); err != nil {
			return fmt.Errorf("failed to write %s: %w", out.label, err)
		}
		if !e.quiet {
			if !generated {
				fmt.Println("\nOutputs generated:")
				generated = true
			}
			fmt.Printf("  [+] %s: %s\n", out.label, out.path)
		}
	}
	return nil
}

// storeRun records the run in the result store if one was requested.
func (e *compareEnv) storeRun(st *stats.ComparisonStats) error {
	if e.storeDir == "" {
		return nil
	}
	now := time.Now()
	runID := e.runID
	if runID == "" {
		runID = now.Format("20060102-150405")
	}
	store, err := resultstore.NewBoltResultStore(e.storeDir, "results.db")
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()
	rec := &resultstore.ResultRec{
		RunID:     runID,
		Timestamp: now,
		Stats:     st,
	}
	if err := store.Put(rec); err != nil {
		return fmt.Errorf("failed to store run %q: %w", runID, err)
	}
	if !e.quiet {
		fmt.Printf("\nStored run %q in %s\n", runID, e.storeDir)
	}
	return nil
}
