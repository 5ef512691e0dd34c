package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, ".codemendignore")
	content := "node_modules/\n*.min.js\n# comment\n\nsrc/generated.ts\n"
	if err := os.WriteFile(ig, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(ig)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"node_modules/pkg/index.js": true,
		"dist/app.min.js":           true,
		"src/generated.ts":          true,
		"src/App.jsx":               false,
	}
	for p, want := range cases {
		if got := m.Match(p); got != want {
			t.Fatalf("Match(%q)=%v want %v", p, got, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), ".codemendignore"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if m.Match("anything") {
		t.Fatalf("empty matcher must match nothing")
	}
}
