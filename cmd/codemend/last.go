package codemend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codemend/codemend/internal/cache"
	"github.com/codemend/codemend/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "last",
		Short: "Show the findings from the last scan without re-walking the tree",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(".")
			results, err := cache.LoadResults(abs)
			if err != nil {
				return fmt.Errorf("no cached scan results; run 'codemend scan' first")
			}
			if flagJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results.Findings)
			}
			fmt.Fprintf(os.Stderr, "last scan: %s (%d findings)\n", results.Timestamp.Format("2006-01-02 15:04:05"), results.Count)
			report.PrintFindings(os.Stdout, results.Findings, report.PrintOptions{NoColor: flagNoColor})
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
