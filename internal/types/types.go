package types

import "time"

// Category groups findings by the concern a detector covers.
type Category string

const (
	CatFormatting  Category = "formatting"
	CatImports     Category = "imports"
	CatReact       Category = "react"
	CatSupabase    Category = "supabase"
	CatSecurity    Category = "security"
	CatPerformance Category = "performance"
)

// Categories lists every category in priority order (highest first).
// The order is used to break ties between findings on the same line.
func Categories() []Category {
	return []Category{CatSecurity, CatSupabase, CatReact, CatImports, CatPerformance, CatFormatting}
}

// Priority returns the rank of c, lower is more important. Unknown
// categories sort last.
func Priority(c Category) int {
	for i, k := range Categories() {
		if k == c {
			return i
		}
	}
	return len(Categories())
}

// Valid reports whether c is one of the known categories.
func Valid(c Category) bool {
	return Priority(c) < len(Categories())
}

// Fix is a textual rewrite: the original span on the finding's line and its
// replacement. Replacement may contain newlines (e.g. an inserted guard).
type Fix struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	// Col is the 1-based byte offset of Original within the line. Detectors
	// set it when a line can hold the span more than once so the applier
	// rewrites the right occurrence. Zero means first occurrence.
	Col int `json:"col,omitempty"`
	// DeleteLine removes the whole line instead of rewriting the span.
	DeleteLine bool `json:"delete_line,omitempty"`
}

// Finding describes a single detected issue at a path and line, including
// the detector ID, category, and confidence in [0,1]. Fix is nil when the
// detector can only report, not rewrite. Findings are immutable once created.
type Finding struct {
	Path        string   `json:"path"`
	Line        int      `json:"line"`
	Detector    string   `json:"detector"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
	Fix         *Fix     `json:"fix,omitempty"`
}

// FixResult is the outcome of handling one finding.
type FixResult string

const (
	ResultApplied  FixResult = "applied"
	ResultFailed   FixResult = "failed"
	ResultSkipped  FixResult = "skipped"  // report-only finding or non-interactive run
	ResultDeclined FixResult = "declined" // user rejected a suggested fix
)

// AppliedFix records how one finding was handled. Retained only for the
// report of the current run.
type AppliedFix struct {
	Finding   Finding   `json:"finding"`
	Result    FixResult `json:"result"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
