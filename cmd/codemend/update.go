package codemend

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codemend/codemend/internal/update"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update codemend to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			latest, newer, err := update.Check(version, false)
			if err == nil && !newer && latest != "" {
				fmt.Fprintf(os.Stderr, "already up to date (v%s)\n", version)
				return nil
			}
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			fmt.Fprintln(os.Stderr, "updated to latest release")
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
