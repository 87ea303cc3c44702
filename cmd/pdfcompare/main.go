// pdfcompare is a command line tool that compares two PDF files pixel by
// pixel and reports where and how much they differ.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the semantic version of the tool, overridable at link time.
var Version = "1.0.0"

// exitCodeError is the exit code for failed runs. Successful runs exit 0
// when the documents are identical and 1 when they differ.
const exitCodeError = 2

func main() {
	rootCmd := &cobra.Command{
		Use:   "pdfcompare",
		Short: "Compare two PDF files and detect visual differences",
		Long: `
pdfcompare renders both PDFs page by page, computes pixel level differences
and reports per-page and overall similarity statistics. Reports can be
written as PDF, JSON, HTML, text or individual diff images.
`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(getCompareCmd())
	rootCmd.AddCommand(getVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeError)
	}
}

// getVersionCmd returns the definition of the version command.
func getVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of pdfcompare",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("pdfcompare %s\n", Version)
		},
	}
}

// ifErrLogExit prints the error to stderr and exits if err is not nil.
func ifErrLogExit(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %s\n", err)
		os.Exit(exitCodeError)
	}
}
