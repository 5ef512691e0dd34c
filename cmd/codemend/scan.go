package codemend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codemend/codemend/internal/cache"
	"github.com/codemend/codemend/internal/config"
	"github.com/codemend/codemend/internal/engine"
	"github.com/codemend/codemend/internal/report"
	"github.com/codemend/codemend/internal/types"
	"github.com/codemend/codemend/internal/update"
)

var (
	flagScanPath      string
	flagInclude       string
	flagExclude       string
	flagMaxBytes      int64
	flagEnable        string
	flagDisable       string
	flagCategories    string
	flagMinConfidence float64
	flagSARIF         bool
	flagFailOn        string
	flagBaselinePath  string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the project and report issues without fixing them",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagScanPath, "path", "p", ".", "project root to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these detectors (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these detectors (comma-separated IDs)")
	cmd.Flags().StringVar(&flagCategories, "categories", "", "restrict to these categories (comma-separated)")
	cmd.Flags().Float64Var(&flagMinConfidence, "min-confidence", 0.0, "only show findings with confidence >= value (0-1)")
	cmd.Flags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "exit 1 when findings at or above this category exist (security|supabase|react|imports|performance|formatting|any)")
	cmd.Flags().StringVar(&flagBaselinePath, "baseline", "codemend.baseline.json", "baseline file; baselined findings are hidden")
}

// scanConfig resolves the engine configuration with CLI > local > global
// config precedence.
func scanConfig(root string) engine.Config {
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	}
	return engine.Config{
		Root:             root,
		IncludeGlobs:     pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:     pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:         pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Categories:       pickString(flagCategories, lcfg.Categories, gcfg.Categories),
		EnableDetectors:  pickString(flagEnable, lcfg.Enable, gcfg.Enable),
		DisableDetectors: pickString(flagDisable, lcfg.Disable, gcfg.Disable),
		MinConfidence:    flagMinConfidence,
		NoCache:          pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		DefaultExcludes:  true,
	}
}

func runScan(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagScanPath)
	cfg := scanConfig(abs)

	machineOutput := flagJSON || flagSARIF
	if !machineOutput {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'codemend update' to upgrade\n", latest)
			}
		}
		fmt.Fprintf(os.Stderr, "Scanning %s with %d detectors...\n", abs, len(engine.DetectorIDs()))
	}

	// Simple textual progress bar on stderr
	total, _ := engine.CountTargets(cfg)
	progressed := 0
	if total > 0 && !machineOutput {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.ScanWithStats(cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if total > 0 && !machineOutput {
		fmt.Fprintln(os.Stderr)
	}

	baseline, _ := report.LoadBaseline(filepath.Join(abs, flagBaselinePath))
	newFindings := report.FilterNewFindings(res.Findings, baseline)
	if newFindings == nil {
		newFindings = []types.Finding{} // no `null` in JSON
	}
	_ = cache.SaveResults(abs, newFindings)

	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, newFindings); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newFindings); err != nil {
			return err
		}
	default:
		report.PrintFindings(os.Stdout, newFindings, report.PrintOptions{
			NoColor:      flagNoColor,
			Duration:     res.Duration,
			FilesScanned: res.FilesScanned,
		})
		for _, s := range res.SkippedFiles {
			fmt.Fprintf(os.Stderr, "skipped (unreadable): %s: %s\n", s.Path, s.Err)
		}
	}

	if flagFailOn != "" && report.ShouldFail(newFindings, flagFailOn) {
		os.Exit(1)
	}
	return nil
}
