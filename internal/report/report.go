// Package report aggregates the outcome of a run into a Report and renders
// it as text, a table, JSON, or SARIF. Aggregation is pure: it never touches
// the filesystem or mutates its inputs.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/codemend/codemend/internal/engine"
	"github.com/codemend/codemend/internal/fixer"
	"github.com/codemend/codemend/internal/types"
)

// Stats carries scan-level numbers that are not derivable from the fixes.
type Stats struct {
	FilesScanned int
	Duration     time.Duration
	Unreadable   []engine.SkippedFile
}

// Report is the aggregated outcome of one run.
type Report struct {
	GeneratedAt   time.Time              `json:"generated_at"`
	Duration      float64                `json:"duration_seconds"`
	FilesScanned  int                    `json:"files_scanned"`
	Total         int                    `json:"total_findings"`
	Applied       int                    `json:"applied"`
	Failed        int                    `json:"failed"`
	Skipped       int                    `json:"skipped"`
	Declined      int                    `json:"declined"`
	ByCategory    map[types.Category]int `json:"by_category"`
	ModifiedFiles []string               `json:"modified_files"`
	Unreadable    []engine.SkippedFile   `json:"unreadable_files,omitempty"`
	Fixes         []types.AppliedFix     `json:"fixes"`
}

// Build aggregates per-finding outcomes into a Report.
func Build(fixes []types.AppliedFix, stats Stats) Report {
	r := Report{
		GeneratedAt:  time.Now(),
		Duration:     stats.Duration.Seconds(),
		FilesScanned: stats.FilesScanned,
		Total:        len(fixes),
		ByCategory:   map[types.Category]int{},
		Unreadable:   stats.Unreadable,
		Fixes:        fixes,
	}
	for _, f := range fixes {
		r.ByCategory[f.Finding.Category]++
		switch f.Result {
		case types.ResultApplied:
			r.Applied++
		case types.ResultFailed:
			r.Failed++
		case types.ResultDeclined:
			r.Declined++
		default:
			r.Skipped++
		}
	}
	r.ModifiedFiles = fixer.ModifiedFiles(fixes)
	return r
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
