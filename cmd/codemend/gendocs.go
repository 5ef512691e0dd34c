package codemend

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codemend/codemend/internal/detectors"
	"github.com/codemend/codemend/internal/types"
)

// gendocs regenerates the detectors section in README.md between the markers
// <!-- BEGIN:DETECTORS --> and <!-- END:DETECTORS -->.
func init() {
	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Regenerate the README detectors section",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := "README.md"
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			start := []byte("<!-- BEGIN:DETECTORS -->")
			end := []byte("<!-- END:DETECTORS -->")
			i := bytes.Index(b, start)
			j := bytes.Index(b, end)
			if i < 0 || j < 0 || j <= i {
				return fmt.Errorf("markers not found in README.md")
			}

			byCategory := map[types.Category][]string{}
			for _, d := range detectors.All() {
				byCategory[d.Category] = append(byCategory[d.Category], d.ID)
			}

			var out strings.Builder
			out.WriteString("\nDetectors by category (run `codemend detectors` for the up-to-date list):\n\n")
			for _, c := range types.Categories() {
				ids := byCategory[c]
				if len(ids) == 0 {
					continue
				}
				sort.Strings(ids)
				out.WriteString("- " + string(c) + ":\n")
				out.WriteString("  - " + strings.Join(ids, ", ") + "\n")
			}

			var nb bytes.Buffer
			nb.Write(b[:i])
			nb.Write(start)
			nb.WriteString("\n")
			nb.WriteString(out.String())
			nb.Write(end)
			nb.Write(b[j+len(end):])
			return os.WriteFile(path, nb.Bytes(), 0644)
		},
	}
	rootCmd.AddCommand(cmd)
}
