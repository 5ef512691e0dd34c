package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/codemend/codemend/internal/types"
)

// PrintOptions control rendering of findings and reports.
type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
}

var categoryStyles = map[types.Category]lipgloss.Style{
	types.CatSecurity:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	types.CatSupabase:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	types.CatReact:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	types.CatImports:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	types.CatPerformance: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	types.CatFormatting:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
}

func colorCategory(c types.Category, noColor bool) string {
	if noColor {
		return string(c)
	}
	if style, ok := categoryStyles[c]; ok {
		return style.Render(string(c))
	}
	return string(c)
}

// PrintFindings writes scan findings as a table, sorted by path and line,
// followed by a summary footer.
func PrintFindings(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path == findings[j].Path {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Path < findings[j].Path
	})
	if len(findings) == 0 {
		fmt.Fprintln(w, "No issues found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("Category", "Detector", "Location", "Conf", "Fix", "Description")
		for _, f := range findings {
			fixable := ""
			if f.Fix != nil {
				fixable = "yes"
			}
			table.Append([]string{
				colorCategory(f.Category, opts.NoColor),
				f.Detector,
				fmt.Sprintf("%s:%d", f.Path, f.Line),
				fmt.Sprintf("%.2f", f.Confidence),
				fixable,
				f.Description,
			})
		}
		table.Render()
	}

	byCat := map[types.Category]int{}
	for _, f := range findings {
		byCat[f.Category]++
	}
	if opts.Duration > 0 || opts.FilesScanned > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Findings: %d", len(findings))
		for _, c := range types.Categories() {
			if byCat[c] > 0 {
				fmt.Fprintf(w, "  %s: %d", c, byCat[c])
			}
		}
		fmt.Fprintln(w)
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
		if opts.FilesScanned > 0 {
			fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
		}
	}
}

// PrintReport writes the outcome of a fix run: one line per finding with its
// result, then the totals.
func PrintReport(w io.Writer, r Report, opts PrintOptions) {
	for _, fx := range r.Fixes {
		f := fx.Finding
		line := fmt.Sprintf("%-8s %-11s %s:%d  %s", fx.Result, colorCategory(f.Category, opts.NoColor), f.Path, f.Line, f.Description)
		if fx.Error != "" {
			line += "  (" + fx.Error + ")"
		}
		fmt.Fprintln(w, line)
	}
	if len(r.Fixes) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Findings: %d  applied: %d  failed: %d  skipped: %d  declined: %d\n",
		r.Total, r.Applied, r.Failed, r.Skipped, r.Declined)
	if len(r.ModifiedFiles) > 0 {
		fmt.Fprintf(w, "Modified files: %d\n", len(r.ModifiedFiles))
		for _, p := range r.ModifiedFiles {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	for _, s := range r.Unreadable {
		fmt.Fprintf(w, "Skipped (unreadable): %s: %s\n", s.Path, s.Err)
	}
	if r.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", r.FilesScanned)
	}
	if r.Duration > 0 {
		fmt.Fprintf(w, "Duration: %.2fs\n", r.Duration)
	}
}
