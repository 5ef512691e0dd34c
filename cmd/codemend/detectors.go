package codemend

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codemend/codemend/internal/detectors"
)

func init() {
	var category string
	cmd := &cobra.Command{
		Use:   "detectors",
		Short: "List available detectors",
		Run: func(_ *cobra.Command, _ []string) {
			for _, d := range detectors.All() {
				if category != "" && string(d.Category) != category {
					continue
				}
				fmt.Printf("%-12s %s\n", d.Category, d.ID)
			}
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list detectors in this category")
	rootCmd.AddCommand(cmd)
}
