package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codemend/codemend/internal/types"
)

// RunRecord is one fix run appended to the JSONL audit log. It keeps enough
// to answer "what did codemend change here, and when".
type RunRecord struct {
	Timestamp      time.Time      `json:"timestamp"`
	RunID          string         `json:"run_id"`
	Root           string         `json:"root"`
	Repo           string         `json:"repo,omitempty"`
	Branch         string         `json:"branch,omitempty"`
	DryRun         bool           `json:"dry_run"`
	TotalFindings  int            `json:"total_findings"`
	Applied        int            `json:"applied"`
	Failed         int            `json:"failed"`
	Declined       int            `json:"declined"`
	CategoryCounts map[string]int `json:"category_counts"`
	ModifiedFiles  []string       `json:"modified_files,omitempty"`
	Checkpoint     string         `json:"checkpoint,omitempty"` // commit hash when --checkpoint ran
}

type Log struct {
	logPath string
}

func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".codemend_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "codemend_audit.jsonl")
	}
	return &Log{logPath: logPath}
}

// LoadHistory returns past runs, newest first.
func (l *Log) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogRun appends one run record.
func (l *Log) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", time.Now().Unix())
	}
	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// NewRunRecord summarizes a fix run for the audit log.
func NewRunRecord(root string, dryRun bool, applied []types.AppliedFix, modified []string, checkpoint string) RunRecord {
	rec := RunRecord{
		Timestamp:      time.Now(),
		Root:           root,
		DryRun:         dryRun,
		TotalFindings:  len(applied),
		CategoryCounts: map[string]int{},
		ModifiedFiles:  modified,
		Checkpoint:     checkpoint,
	}
	for _, a := range applied {
		rec.CategoryCounts[string(a.Finding.Category)]++
		switch a.Result {
		case types.ResultApplied:
			rec.Applied++
		case types.ResultFailed:
			rec.Failed++
		case types.ResultDeclined:
			rec.Declined++
		}
	}
	return rec
}
