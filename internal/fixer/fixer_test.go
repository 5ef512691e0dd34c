package fixer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codemend/codemend/internal/engine"
	"github.com/codemend/codemend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	return full
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(data)
}

func finding(path string, line int, conf float64, fix *types.Fix) types.Finding {
	return types.Finding{
		Path:       path,
		Line:       line,
		Detector:   "react_missing_key",
		Category:   types.CatReact,
		Confidence: conf,
		Fix:        fix,
	}
}

func TestApplyHighConfidenceWithoutConfirmation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/App.jsx", "items.map(item => <div>{item.name}</div>)\n")

	f := finding("src/App.jsx", 1, 0.95, &types.Fix{
		Original:    "<div>",
		Replacement: "<div key={item.id}>",
	})
	results := Apply([]types.Finding{f}, Options{Root: root})

	require.Len(t, results, 1)
	assert.Equal(t, types.ResultApplied, results[0].Result)
	assert.Equal(t, "items.map(item => <div key={item.id}>{item.name}</div>)\n", readFile(t, root, "src/App.jsx"))
}

func TestApplyThresholdBoundaryCounts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "var x = 1\n")

	// Exactly at the threshold: no confirmation needed.
	f := finding("a.js", 1, DefaultThreshold, &types.Fix{Original: "var ", Replacement: "let "})
	declined := false
	results := Apply([]types.Finding{f}, Options{
		Root: root,
		Confirm: ConfirmFunc(func(types.Finding) bool {
			declined = true
			return false
		}),
	})

	require.Len(t, results, 1)
	assert.Equal(t, types.ResultApplied, results[0].Result)
	assert.False(t, declined, "confirmer must not be consulted at the threshold")
	assert.Equal(t, "let x = 1\n", readFile(t, root, "a.js"))
}

func TestApplySuggestedFixGoesThroughConfirmer(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "var x = 1\nvar y = 2\n")

	fs := []types.Finding{
		finding("a.js", 1, 0.6, &types.Fix{Original: "var ", Replacement: "let "}),
		finding("a.js", 2, 0.6, &types.Fix{Original: "var ", Replacement: "let "}),
	}
	// Accept line 2, decline line 1.
	results := Apply(fs, Options{
		Root: root,
		Confirm: ConfirmFunc(func(f types.Finding) bool {
			return f.Line == 2
		}),
	})

	require.Len(t, results, 2)
	byLine := map[int]types.FixResult{}
	for _, r := range results {
		byLine[r.Finding.Line] = r.Result
	}
	assert.Equal(t, types.ResultDeclined, byLine[1])
	assert.Equal(t, types.ResultApplied, byLine[2])
	assert.Equal(t, "var x = 1\nlet y = 2\n", readFile(t, root, "a.js"))
}

func TestApplyNonInteractiveDeclinesAll(t *testing.T) {
	root := t.TempDir()
	before := "var x = 1\n"
	writeFile(t, root, "a.js", before)

	f := finding("a.js", 1, 0.6, &types.Fix{Original: "var ", Replacement: "let "})
	results := Apply([]types.Finding{f}, Options{Root: root})

	require.Len(t, results, 1)
	assert.Equal(t, types.ResultDeclined, results[0].Result)
	assert.Equal(t, before, readFile(t, root, "a.js"))
}

func TestApplySafeOnlySkipsSuggested(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "var x = 1\n")

	f := finding("a.js", 1, 0.6, &types.Fix{Original: "var ", Replacement: "let "})
	results := Apply([]types.Finding{f}, Options{
		Root:     root,
		SafeOnly: true,
		Confirm: ConfirmFunc(func(types.Finding) bool {
			t.Fatal("safe-only must never prompt")
			return false
		}),
	})

	require.Len(t, results, 1)
	assert.Equal(t, types.ResultSkipped, results[0].Result)
}

func TestApplyReportOnlyFindingIsSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "eval(code)\n")

	f := finding("a.js", 1, 0.95, nil)
	results := Apply([]types.Finding{f}, Options{Root: root})

	require.Len(t, results, 1)
	assert.Equal(t, types.ResultSkipped, results[0].Result)
}

func TestApplyDryRunLeavesFilesUntouched(t *testing.T) {
	root := t.TempDir()
	before := "items.map(item => <div>{item.name}</div>)\nvar x = 1\n"
	writeFile(t, root, "src/App.jsx", before)

	fs := []types.Finding{
		finding("src/App.jsx", 1, 0.95, &types.Fix{Original: "<div>", Replacement: "<div key={item.id}>"}),
		finding("src/App.jsx", 2, 0.95, &types.Fix{Original: "var ", Replacement: "let "}),
	}
	results := Apply(fs, Options{Root: root, DryRun: true})

	for _, r := range results {
		assert.Equal(t, types.ResultApplied, r.Result)
	}
	assert.Equal(t, before, readFile(t, root, "src/App.jsx"))
}

func TestApplyBottomUpKeepsLineNumbersValid(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib/users.js",
		"const { data } = await supabase.from('users').select('*')\n"+
			"console.log(data)\n")

	fs := []types.Finding{
		{
			Path: "src/lib/users.js", Line: 1,
			Detector: "supabase_missing_error_handling", Category: types.CatSupabase, Confidence: 0.9,
			Fix: &types.Fix{
				Original:    "const { data } = await supabase.from('users').select('*')",
				Replacement: "const { data, error } = await supabase.from('users').select('*')\nif (error) throw error",
			},
		},
		{
			Path: "src/lib/users.js", Line: 2,
			Detector: "fmt_console_log", Category: types.CatFormatting, Confidence: 0.95,
			Fix: &types.Fix{Original: "console.log(data)", DeleteLine: true},
		},
	}
	results := Apply(fs, Options{Root: root})

	for _, r := range results {
		require.Equal(t, types.ResultApplied, r.Result, "%s:%d failed: %s", r.Finding.Path, r.Finding.Line, r.Error)
	}
	want := "const { data, error } = await supabase.from('users').select('*')\nif (error) throw error\n"
	assert.Equal(t, want, readFile(t, root, "src/lib/users.js"))
}

func TestApplyFailsWhenOriginalDrifted(t *testing.T) {
	root := t.TempDir()
	before := "let x = 1\n"
	writeFile(t, root, "a.js", before)

	f := finding("a.js", 1, 0.95, &types.Fix{Original: "var ", Replacement: "let "})
	results := Apply([]types.Finding{f}, Options{Root: root})

	require.Len(t, results, 1)
	assert.Equal(t, types.ResultFailed, results[0].Result)
	assert.NotEmpty(t, results[0].Error)
	assert.Equal(t, before, readFile(t, root, "a.js"))
}

func TestApplyFailureDoesNotAbortRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "var x = 1\n")

	fs := []types.Finding{
		finding("missing.js", 1, 0.95, &types.Fix{Original: "x", Replacement: "y"}),
		finding("a.js", 1, 0.95, &types.Fix{Original: "var ", Replacement: "let "}),
	}
	results := Apply(fs, Options{Root: root})

	byPath := map[string]types.FixResult{}
	for _, r := range results {
		byPath[r.Finding.Path] = r.Result
	}
	assert.Equal(t, types.ResultFailed, byPath["missing.js"])
	assert.Equal(t, types.ResultApplied, byPath["a.js"])
}

func TestApplyLineDeletion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "const a = 1\nconsole.log(a)\nconst b = 2\n")

	f := types.Finding{
		Path: "a.js", Line: 2,
		Detector: "fmt_console_log", Category: types.CatFormatting, Confidence: 0.95,
		Fix: &types.Fix{Original: "console.log(a)", DeleteLine: true},
	}
	results := Apply([]types.Finding{f}, Options{Root: root})

	require.Equal(t, types.ResultApplied, results[0].Result)
	assert.Equal(t, "const a = 1\nconst b = 2\n", readFile(t, root, "a.js"))
}

func TestApplySameLineDuplicateSpans(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/App.jsx",
		"const x = items.map(item => <div>{item.n}</div>).concat(more.map(item => <div>{item.m}</div>))\n")

	findings, err := engine.Scan(engine.Config{Root: root, NoCache: true})
	require.NoError(t, err)
	require.Len(t, findings, 2, "both renders must be flagged")

	results := Apply(findings, Options{Root: root})
	for _, r := range results {
		require.Equal(t, types.ResultApplied, r.Result, "%s:%d: %s", r.Finding.Path, r.Finding.Line, r.Error)
	}

	want := "const x = items.map(item => <div key={item.id}>{item.n}</div>).concat(more.map(item => <div key={item.id}>{item.m}</div>))\n"
	assert.Equal(t, want, readFile(t, root, "src/App.jsx"))
}

func TestApplyColumnMismatchFailsCleanly(t *testing.T) {
	root := t.TempDir()
	before := "let a = 1; var b = 2\n"
	writeFile(t, root, "a.js", before)

	// Column points past where the span actually sits.
	f := finding("a.js", 1, 0.95, &types.Fix{Original: "var ", Replacement: "let ", Col: 1})
	results := Apply([]types.Finding{f}, Options{Root: root})

	require.Len(t, results, 1)
	assert.Equal(t, types.ResultFailed, results[0].Result)
	assert.Contains(t, results[0].Error, "a.js:1:1")
	assert.Equal(t, before, readFile(t, root, "a.js"))
}

func TestApplyWhitespaceOnlyLineIsStrippedNotDeleted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "const a = 1\n   \nconst b = 2\n")

	findings, err := engine.Scan(engine.Config{Root: root, NoCache: true})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Equal(t, "fmt_trailing_whitespace", findings[0].Detector)

	results := Apply(findings, Options{Root: root})
	require.Equal(t, types.ResultApplied, results[0].Result)
	assert.Equal(t, "const a = 1\n\nconst b = 2\n", readFile(t, root, "a.js"),
		"the blank line must survive, only its whitespace goes")
}

func TestApplyExplicitZeroThresholdAppliesEverything(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "var x = 1\n")

	zero := 0.0
	f := finding("a.js", 1, 0.1, &types.Fix{Original: "var ", Replacement: "let "})
	results := Apply([]types.Finding{f}, Options{
		Root:      root,
		Threshold: &zero,
		Confirm: ConfirmFunc(func(types.Finding) bool {
			t.Fatal("zero threshold must not prompt")
			return false
		}),
	})

	require.Len(t, results, 1)
	assert.Equal(t, types.ResultApplied, results[0].Result)
	assert.Equal(t, "let x = 1\n", readFile(t, root, "a.js"))
}

func TestApplyBackupKeepsOriginalCopy(t *testing.T) {
	root := t.TempDir()
	backups := t.TempDir()
	before := "var x = 1\n"
	writeFile(t, root, "src/a.js", before)

	f := finding("src/a.js", 1, 0.95, &types.Fix{Original: "var ", Replacement: "let "})
	results := Apply([]types.Finding{f}, Options{Root: root, BackupDir: backups})

	require.Equal(t, types.ResultApplied, results[0].Result)
	data, err := os.ReadFile(filepath.Join(backups, "src/a.js"))
	require.NoError(t, err)
	assert.Equal(t, before, string(data))
}

func TestApplyIdempotentAfterFix(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/App.jsx", "items.map(item => <div>{item.name}</div>)\n")

	first, err := engine.Scan(engine.Config{Root: root, NoCache: true})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	Apply(first, Options{Root: root})

	second, err := engine.Scan(engine.Config{Root: root, NoCache: true})
	require.NoError(t, err)
	for _, f := range second {
		assert.NotEqual(t, "react_missing_key", f.Detector, "fixed issue reappeared")
	}
}

func TestModifiedFiles(t *testing.T) {
	applied := []types.AppliedFix{
		{Finding: types.Finding{Path: "b.js"}, Result: types.ResultApplied},
		{Finding: types.Finding{Path: "a.js"}, Result: types.ResultApplied},
		{Finding: types.Finding{Path: "b.js"}, Result: types.ResultApplied},
		{Finding: types.Finding{Path: "c.js"}, Result: types.ResultDeclined},
	}
	assert.Equal(t, []string{"a.js", "b.js"}, ModifiedFiles(applied))
}
