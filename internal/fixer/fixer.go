// Package fixer applies textual fixes from findings to files on disk. It
// partitions findings by a confidence threshold: at or above it a fix is
// applied without confirmation, below it the fix goes through a Confirmer.
// A failed application is recorded and never aborts the rest of the run.
package fixer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/codemend/codemend/internal/types"
)

// DefaultThreshold is the auto-apply confidence cutoff. Equality counts:
// a finding at exactly the threshold is applied without confirmation.
const DefaultThreshold = 0.9

// Confirmer decides whether a suggested (below-threshold) fix is applied.
type Confirmer interface {
	Confirm(f types.Finding) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(f types.Finding) bool

func (fn ConfirmFunc) Confirm(f types.Finding) bool { return fn(f) }

// DeclineAll is the non-interactive policy: every suggested fix is skipped.
var DeclineAll = ConfirmFunc(func(types.Finding) bool { return false })

// Options control one fix run.
type Options struct {
	Root      string
	Threshold *float64 // nil means DefaultThreshold; an explicit 0 applies everything
	DryRun    bool     // compute results without touching any file
	SafeOnly  bool     // apply only >= threshold, never consult the Confirmer
	BackupDir string   // when set, keep pre-fix copies here instead of discarding them
	Confirm   Confirmer
	Clock     func() time.Time // test hook; defaults to time.Now
}

// EffectiveThreshold resolves the auto-apply cutoff for this run.
func (o Options) EffectiveThreshold() float64 {
	if o.Threshold == nil {
		return DefaultThreshold
	}
	return *o.Threshold
}

func (o Options) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

// Apply processes findings in deterministic order: per file, fixes apply from
// the bottom of the file up so earlier line numbers stay valid after a
// multi-line replacement, and within a line from the rightmost column so
// earlier offsets stay valid too. Report-only findings are recorded as
// skipped. At most one application attempt is made per finding; failures are
// recorded and processing continues.
func Apply(findings []types.Finding, opts Options) []types.AppliedFix {
	if opts.Confirm == nil {
		opts.Confirm = DeclineAll
	}
	ordered := make([]types.Finding, len(findings))
	copy(ordered, findings)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Path != ordered[j].Path {
			return ordered[i].Path < ordered[j].Path
		}
		if ordered[i].Line != ordered[j].Line {
			return ordered[i].Line > ordered[j].Line // bottom-up
		}
		if ci, cj := fixCol(ordered[i]), fixCol(ordered[j]); ci != cj {
			return ci > cj // right-to-left within a line
		}
		return types.Priority(ordered[i].Category) < types.Priority(ordered[j].Category)
	})

	out := make([]types.AppliedFix, 0, len(ordered))
	for _, f := range ordered {
		out = append(out, applyOne(f, opts))
	}
	return out
}

func applyOne(f types.Finding, opts Options) types.AppliedFix {
	res := types.AppliedFix{Finding: f, Timestamp: opts.now()}
	if f.Fix == nil {
		res.Result = types.ResultSkipped
		return res
	}
	if f.Confidence < opts.EffectiveThreshold() {
		if opts.SafeOnly {
			res.Result = types.ResultSkipped
			return res
		}
		if !opts.Confirm.Confirm(f) {
			res.Result = types.ResultDeclined
			return res
		}
	}
	if opts.DryRun {
		res.Result = types.ResultApplied
		return res
	}
	if err := rewrite(f, opts); err != nil {
		res.Result = types.ResultFailed
		res.Error = err.Error()
		return res
	}
	res.Result = types.ResultApplied
	return res
}

// rewrite loads the finding's file, verifies the original span still matches,
// and writes the replacement. A snapshot of the original content guarantees a
// restore path: if the write fails the previous bytes are put back.
func rewrite(f types.Finding, opts Options) error {
	path := filepath.Join(opts.Root, f.Path)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.Path, err)
	}

	updated, err := applyFix(string(data), f)
	if err != nil {
		return err
	}

	if opts.BackupDir != "" {
		if err := writeBackup(opts.BackupDir, f.Path, data); err != nil {
			return fmt.Errorf("backup %s: %w", f.Path, err)
		}
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		// Restore the snapshot so a partial write cannot corrupt the file.
		_ = os.WriteFile(path, data, info.Mode().Perm())
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

// applyFix performs the textual replacement on content. The original span
// must still be present on the recorded line — at the recorded column when
// the fix carries one; if the file drifted since analysis the fix fails
// instead of guessing.
func applyFix(content string, f types.Finding) (string, error) {
	fix := f.Fix
	lines := strings.Split(content, "\n")
	idx := f.Line - 1
	if idx < 0 || idx >= len(lines) {
		return "", fmt.Errorf("line %d out of range in %s", f.Line, f.Path)
	}
	line := lines[idx]
	col := fix.Col - 1
	if col >= 0 {
		if col+len(fix.Original) > len(line) || line[col:col+len(fix.Original)] != fix.Original {
			return "", fmt.Errorf("original text not found at %s:%d:%d", f.Path, f.Line, fix.Col)
		}
	} else if !strings.Contains(line, fix.Original) {
		return "", fmt.Errorf("original text not found at %s:%d", f.Path, f.Line)
	}
	if fix.DeleteLine {
		lines = append(lines[:idx], lines[idx+1:]...)
		return strings.Join(lines, "\n"), nil
	}
	if col >= 0 {
		lines[idx] = line[:col] + fix.Replacement + line[col+len(fix.Original):]
	} else {
		lines[idx] = strings.Replace(line, fix.Original, fix.Replacement, 1)
	}
	return strings.Join(lines, "\n"), nil
}

func fixCol(f types.Finding) int {
	if f.Fix == nil {
		return 0
	}
	return f.Fix.Col
}

// writeBackup stores a pre-fix copy under backupDir, mirroring the relative
// path. An existing backup for the same file is kept: the first snapshot of
// a run is the one worth restoring.
func writeBackup(backupDir, rel string, data []byte) error {
	dst := filepath.Join(backupDir, rel)
	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

// ModifiedFiles returns the distinct paths of successfully applied fixes,
// sorted.
func ModifiedFiles(applied []types.AppliedFix) []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range applied {
		if a.Result != types.ResultApplied || seen[a.Finding.Path] {
			continue
		}
		seen[a.Finding.Path] = true
		out = append(out, a.Finding.Path)
	}
	sort.Strings(out)
	return out
}
