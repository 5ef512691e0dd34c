package engine

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/codemend/codemend/internal/cache"
	"github.com/codemend/codemend/internal/detectors"
	"github.com/codemend/codemend/internal/filetype"
	"github.com/codemend/codemend/internal/ignore"
	"github.com/codemend/codemend/internal/types"
)

// IgnoreFileName is the per-project exclusion file.
const IgnoreFileName = ".codemendignore"

// Config controls scanning behavior including scope and filters.
type Config struct {
	Root             string
	IncludeGlobs     string
	ExcludeGlobs     string
	MaxBytes         int64
	Categories       string // comma list; empty = all
	EnableDetectors  string
	DisableDetectors string
	MinConfidence    float64
	NoCache          bool
	DefaultExcludes  bool
	Progress         func()
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	// SkippedFiles could not be read; the run continues without them.
	SkippedFiles []SkippedFile
	Duration     time.Duration
}

// SkippedFile records a single unreadable file.
type SkippedFile struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// Scan runs a scan and returns only findings (without stats).
func Scan(cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats walks the tree sequentially, analyzes each eligible file with
// every applicable detector, and returns findings in deterministic order.
// Only an unreadable root aborts; unreadable files are recorded and skipped.
func ScanWithStats(cfg Config) (Result, error) {
	var result Result

	var db cache.DB
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root)
	} else {
		db.Entries = map[string]string{}
	}
	updated := map[string]string{}

	ign, _ := ignore.Load(filepath.Join(cfg.Root, IgnoreFileName))
	cats := categorySet(cfg.Categories)

	started := time.Now()
	var out []types.Finding

	handle := func(rel string, data []byte) {
		result.FilesScanned++
		if cfg.Progress != nil {
			cfg.Progress()
		}
		h := fastHash(data)
		if !cfg.NoCache && db.Entries[rel] == h {
			return
		}
		out = append(out, analyzeFile(rel, data, cats)...)
		if !cfg.NoCache {
			updated[rel] = h
		}
	}
	skip := func(rel string, err error) {
		result.SkippedFiles = append(result.SkippedFiles, SkippedFile{Path: rel, Err: err.Error()})
	}

	if err := Walk(context.Background(), cfg, ign, handle, skip); err != nil {
		return result, err
	}

	out = filterByConfidence(out, cfg.MinConfidence)
	out = filterByIDs(out, cfg.EnableDetectors, cfg.DisableDetectors)
	sortFindings(out)

	result.Findings = out
	result.Duration = time.Since(started)
	if !cfg.NoCache && len(updated) > 0 {
		if db.Entries == nil {
			db.Entries = map[string]string{}
		}
		for k, v := range updated {
			db.Entries[k] = v
		}
		_ = cache.Save(cfg.Root, db)
	}
	return result, nil
}

// analyzeFile classifies one file and runs every detector that handles its
// type, optionally restricted to a category set.
func analyzeFile(rel string, data []byte, cats map[types.Category]bool) []types.Finding {
	ft := filetype.Classify(rel)
	if ft == filetype.Unknown {
		return nil
	}
	var out []types.Finding
	for _, d := range detectors.All() {
		if cats != nil && !cats[d.Category] {
			continue
		}
		if !d.CanHandle(ft) {
			continue
		}
		out = append(out, d.Analyze(rel, data)...)
	}
	return out
}

// sortFindings orders by path, then line, then category priority, then
// detector ID. The fixed order makes overlapping findings on one line
// deterministic across runs.
func sortFindings(fs []types.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		if fs[i].Line != fs[j].Line {
			return fs[i].Line < fs[j].Line
		}
		pi, pj := types.Priority(fs[i].Category), types.Priority(fs[j].Category)
		if pi != pj {
			return pi < pj
		}
		return fs[i].Detector < fs[j].Detector
	})
}

// DetectorIDs returns the list of available detector IDs.
func DetectorIDs() []string {
	return detectors.IDs()
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// CountTargets estimates the number of files a scan would visit. Used only
// for the progress indicator, so errors degrade to zero.
func CountTargets(cfg Config) (int, error) {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, IgnoreFileName))
	count := 0
	err := Walk(context.Background(), cfg, ign, func(string, []byte) { count++ }, func(string, error) {})
	if err != nil {
		return 0, err
	}
	return count, nil
}
