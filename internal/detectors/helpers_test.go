package detectors

import (
	"testing"

	"github.com/codemend/codemend/internal/filetype"
)

func TestLinesSuppression(t *testing.T) {
	src := []byte(
		"one\n" +
			"// codemend:ignore-next-line\n" +
			"two\n" +
			"// codemend:ignore-start\n" +
			"three\n" +
			"// codemend:ignore-end\n" +
			"four\n")
	var visible []int
	EachLine(src, func(n int, _ string) { visible = append(visible, n) })
	want := []int{1, 7}
	if len(visible) != len(want) {
		t.Fatalf("visible lines = %v, want %v", visible, want)
	}
	for i := range want {
		if visible[i] != want[i] {
			t.Fatalf("visible lines = %v, want %v", visible, want)
		}
	}
}

func TestStripStrings(t *testing.T) {
	got := stripStrings(`call("error here", id)`)
	if got != `call("          ", id)` {
		t.Fatalf("stripStrings = %q", got)
	}
}

func TestRegistryTable(t *testing.T) {
	ids := map[string]bool{}
	for _, d := range All() {
		if ids[d.ID] {
			t.Fatalf("duplicate detector id %q", d.ID)
		}
		ids[d.ID] = true
		if len(d.FileTypes) == 0 {
			t.Fatalf("detector %q handles no file types", d.ID)
		}
		if d.Analyze == nil {
			t.Fatalf("detector %q has no analyze func", d.ID)
		}
	}
	var reactHandles bool
	for _, d := range All() {
		if d.ID == "react_missing_key" {
			reactHandles = d.CanHandle(filetype.Component) && !d.CanHandle(filetype.Style)
		}
	}
	if !reactHandles {
		t.Fatalf("react_missing_key should handle components only")
	}
}
