package codemend

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codemend/codemend/internal/engine"
	"github.com/codemend/codemend/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage the accepted-findings baseline",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Accept every current finding into the baseline",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(".")
			results, err := engine.Scan(engine.Config{Root: abs, NoCache: true, DefaultExcludes: true})
			if err != nil {
				return err
			}
			if err := report.SaveBaseline("codemend.baseline.json", results); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Baseline updated with %d findings.\n", len(results))
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
