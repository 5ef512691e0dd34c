package codemend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codemend/codemend/internal/audit"
)

func init() {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past fix runs from the audit log",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(".")
			records, err := audit.NewLog(abs).LoadHistory()
			if err != nil {
				fmt.Fprintln(os.Stderr, "no fix runs recorded yet")
				return nil
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			if flagJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			for _, r := range records {
				mode := ""
				if r.DryRun {
					mode = " (dry-run)"
				}
				fmt.Printf("%s%s  findings: %d  applied: %d  failed: %d  declined: %d\n",
					r.Timestamp.Format("2006-01-02 15:04:05"), mode,
					r.TotalFindings, r.Applied, r.Failed, r.Declined)
				if r.Checkpoint != "" {
					fmt.Printf("  checkpoint: %s\n", r.Checkpoint)
				}
				for _, p := range r.ModifiedFiles {
					fmt.Printf("  modified: %s\n", p)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "show at most this many runs (0 = all)")
	rootCmd.AddCommand(cmd)
}
