package engine

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/codemend/codemend/internal/types"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for p, content := range files {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestScanFindsIssuesAcrossTree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/App.jsx":        "items.map(item => <div>{item.name}</div>)\n",
		"src/lib/users.js":   "const { data } = await supabase.from('users').select('*')\n",
		"node_modules/x.js":  "var x = 1\n",
		"README.md":          "not source\n",
	})
	res, err := ScanWithStats(Config{Root: root, NoCache: true, DefaultExcludes: true})
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, f := range res.Findings {
		ids = append(ids, f.Detector)
	}
	want := []string{"react_missing_key", "supabase_missing_error_handling"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("detectors = %v, want %v", ids, want)
	}
	if res.FilesScanned != 2 {
		t.Fatalf("files scanned = %d, want 2", res.FilesScanned)
	}
}

func TestScanMissingRootIsFatal(t *testing.T) {
	_, err := ScanWithStats(Config{Root: filepath.Join(t.TempDir(), "nope"), NoCache: true})
	if err == nil {
		t.Fatalf("expected scan error for missing root")
	}
}

func TestScanCategoryFilter(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/App.jsx": "items.map(item => <div>{item.name}</div>)\nvar x = 1   \n",
	})
	res, err := ScanWithStats(Config{Root: root, NoCache: true, Categories: "react"})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range res.Findings {
		if f.Category != types.CatReact {
			t.Fatalf("unexpected category %s", f.Category)
		}
	}
	if len(res.Findings) != 1 {
		t.Fatalf("expected 1 react finding, got %d", len(res.Findings))
	}
}

func TestScanConfidenceFilter(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/App.jsx": "items.map(item => <div>{item.name}</div>)\nvar x = 1\n",
	})
	res, err := ScanWithStats(Config{Root: root, NoCache: true, MinConfidence: 0.9})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range res.Findings {
		if f.Confidence < 0.9 {
			t.Fatalf("finding below min confidence: %+v", f)
		}
	}
}

func TestScanIgnoreFileDirective(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/App.jsx": "// codemend:ignore-file\nitems.map(item => <div>{item.name}</div>)\n",
	})
	res, err := ScanWithStats(Config{Root: root, NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Findings) != 0 {
		t.Fatalf("unexpected findings: %+v", res.Findings)
	}
}

func TestScanCacheSkipsUnchangedFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/App.jsx": "items.map(item => <div>{item.name}</div>)\n",
	})
	first, err := ScanWithStats(Config{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Findings) != 1 {
		t.Fatalf("expected 1 finding on first scan, got %d", len(first.Findings))
	}
	second, err := ScanWithStats(Config{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Findings) != 0 {
		t.Fatalf("expected cached second scan to skip unchanged file, got %+v", second.Findings)
	}
}

func TestScanDeterministicOrder(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/App.jsx":      "items.map(item => <div>{item.name}</div>)\nvar a = 1   \n",
		"src/lib/users.js": "const { data } = await supabase.from('u').select()\n",
	})
	a, err := Scan(Config{Root: root, NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Scan(Config{Root: root, NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("scan order not deterministic:\n%+v\n%+v", a, b)
	}
}
