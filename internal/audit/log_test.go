package audit

import (
	"testing"
	"time"

	"github.com/codemend/codemend/internal/types"
)

func TestLogRunAndLoadHistory(t *testing.T) {
	root := t.TempDir()
	l := NewLog(root)

	applied := []types.AppliedFix{
		{Finding: types.Finding{Category: types.CatReact}, Result: types.ResultApplied, Timestamp: time.Now()},
		{Finding: types.Finding{Category: types.CatFormatting}, Result: types.ResultDeclined, Timestamp: time.Now()},
	}
	rec := NewRunRecord(root, false, applied, []string{"src/App.jsx"}, "")
	if rec.Applied != 1 || rec.Declined != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.CategoryCounts["react"] != 1 {
		t.Fatalf("unexpected category counts: %v", rec.CategoryCounts)
	}

	if err := l.LogRun(rec); err != nil {
		t.Fatal(err)
	}
	if err := l.LogRun(NewRunRecord(root, true, nil, nil, "")); err != nil {
		t.Fatal(err)
	}

	hist, err := l.LoadHistory()
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Fatalf("expected 2 records, got %d", len(hist))
	}
	if !hist[0].DryRun {
		t.Fatalf("history must be newest first")
	}
}
