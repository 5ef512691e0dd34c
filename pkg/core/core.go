package core

import (
	"github.com/codemend/codemend/internal/engine"
	"github.com/codemend/codemend/internal/fixer"
	"github.com/codemend/codemend/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Finding = types.Finding
type Fix = types.Fix
type AppliedFix = types.AppliedFix
type FixOptions = fixer.Options

// Scan is the stable entrypoint for other programs.
func Scan(cfg Config) ([]Finding, error) {
	return engine.Scan(cfg)
}

// ScanWithStats runs a scan and returns findings with execution statistics.
func ScanWithStats(cfg Config) (engine.Result, error) {
	return engine.ScanWithStats(cfg)
}

// ApplyFixes applies the fixable findings per the given options. Callers that
// want prompts supply their own Confirmer; the default declines everything
// below the auto-apply threshold.
func ApplyFixes(findings []Finding, opts FixOptions) []AppliedFix {
	return fixer.Apply(findings, opts)
}

// DetectorIDs returns the list of configured detector IDs.
// This is exposed for convenience to avoid importing internals directly.
func DetectorIDs() []string { return engine.DetectorIDs() }
