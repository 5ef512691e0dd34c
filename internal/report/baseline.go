package report

import (
	"encoding/json"
	"os"

	"github.com/codemend/codemend/internal/types"
)

// Baseline is a set of accepted findings. Keys stay stable across line
// shifts by hashing on path, detector, and description rather than line.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	_ = json.Unmarshal(f, &b)
	return b, nil
}

func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[key(f)] = true
	}
	buf, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(path, buf, 0644)
}

// FilterNewFindings removes findings already present in the baseline.
func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[key(f)] {
			out = append(out, f)
		}
	}
	return out
}

func key(f types.Finding) string {
	return f.Path + "|" + f.Detector + "|" + f.Description
}

// ShouldFail reports whether findings warrant a non-zero CI exit. failOn
// names the least important category that still fails the run; "any" fails
// on everything. An empty or unknown value defaults to supabase, which also
// covers security.
func ShouldFail(findings []types.Finding, failOn string) bool {
	if failOn == "any" {
		return len(findings) > 0
	}
	th := types.Priority(types.Category(failOn))
	if !types.Valid(types.Category(failOn)) {
		th = types.Priority(types.CatSupabase)
	}
	for _, f := range findings {
		if types.Priority(f.Category) <= th {
			return true
		}
	}
	return false
}
