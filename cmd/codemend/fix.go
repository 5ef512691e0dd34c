package codemend

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codemend/codemend/internal/audit"
	"github.com/codemend/codemend/internal/config"
	"github.com/codemend/codemend/internal/engine"
	"github.com/codemend/codemend/internal/files"
	"github.com/codemend/codemend/internal/fixer"
	"github.com/codemend/codemend/internal/gitutil"
	"github.com/codemend/codemend/internal/report"
	"github.com/codemend/codemend/internal/tui"
	"github.com/codemend/codemend/internal/types"
)

var (
	flagFixPath       string
	flagFixInclude    string
	flagFixExclude    string
	flagFixCategories string
	flagFixEnable     string
	flagFixDisable    string
	flagFixMaxBytes   int64
	flagSafeOnly      bool
	flagReview        bool
	flagBackupDir     string
	flagCheckpoint    bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Scan the project and apply fixes",
		Long: `Scan the project, apply fixes at or above the confidence threshold
automatically, and confirm the rest interactively. Declining a fix is a
normal outcome, not an error; the run reports every finding's result.`,
		RunE: runFix,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagFixPath, "path", "p", ".", "project root to fix")
	cmd.Flags().StringVar(&flagFixInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagFixExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagFixMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagFixCategories, "categories", "", "restrict to these categories (comma-separated)")
	cmd.Flags().StringVar(&flagFixEnable, "enable", "", "only run these detectors (comma-separated IDs)")
	cmd.Flags().StringVar(&flagFixDisable, "disable", "", "disable these detectors (comma-separated IDs)")
	cmd.Flags().BoolVar(&flagSafeOnly, "safe-only", false, "apply only fixes at or above the threshold; never prompt")
	cmd.Flags().BoolVar(&flagReview, "review", false, "review suggested fixes in an interactive UI")
	cmd.Flags().StringVar(&flagBackupDir, "backup-dir", "", "keep pre-fix copies of modified files in this directory")
	cmd.Flags().BoolVar(&flagCheckpoint, "checkpoint", false, "commit the pre-fix state of affected files before applying")
}

func runFix(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagFixPath)

	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	// Flags only beat config when the user actually set them; default values
	// fall through to the local then global file.
	maxBytes := int64(0)
	if cmd.Flags().Changed("max-bytes") {
		maxBytes = flagFixMaxBytes
	}

	// Fixing always re-analyzes: the cache tracks scanned content, and a fix
	// run must see the tree exactly as it is now.
	cfg := engine.Config{
		Root:             abs,
		IncludeGlobs:     pickString(flagFixInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:     pickString(flagFixExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:         pickInt64(maxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Categories:       pickString(flagFixCategories, lcfg.Categories, gcfg.Categories),
		EnableDetectors:  pickString(flagFixEnable, lcfg.Enable, gcfg.Enable),
		DisableDetectors: pickString(flagFixDisable, lcfg.Disable, gcfg.Disable),
		NoCache:          true,
		DefaultExcludes:  true,
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = 1 << 20
	}

	res, err := engine.ScanWithStats(cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	opts := fixer.Options{
		Root:      abs,
		DryRun:    flagDryRun,
		SafeOnly:  flagSafeOnly || pickBool(false, lcfg.SafeOnly, gcfg.SafeOnly),
		BackupDir: pickString(flagBackupDir, lcfg.BackupDir, gcfg.BackupDir),
	}
	// An explicit --confidence wins even at 0 ("apply everything") or at the
	// default value; otherwise the config files decide.
	switch {
	case cmd.Flags().Changed("confidence"):
		opts.Threshold = &flagConfidence
	case lcfg.Confidence != nil:
		opts.Threshold = lcfg.Confidence
	case gcfg.Confidence != nil:
		opts.Threshold = gcfg.Confidence
	}
	if opts.BackupDir != "" && !filepath.IsAbs(opts.BackupDir) {
		opts.BackupDir = filepath.Join(abs, opts.BackupDir)
	}

	confirm, err := chooseConfirmer(abs, res.Findings, opts)
	if err != nil {
		return err
	}
	opts.Confirm = confirm

	if opts.BackupDir != "" && !flagDryRun {
		// Backup copies under the project root must never be scanned or
		// committed; keep .gitignore in sync.
		if rel, err := filepath.Rel(abs, opts.BackupDir); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			if err := files.AppendIgnore(abs, rel+"/"); err != nil {
				fmt.Fprintln(os.Stderr, "warning: could not update .gitignore:", err)
			}
		}
	}

	checkpoint := ""
	doCheckpoint := flagCheckpoint || pickBool(false, lcfg.Checkpoint, gcfg.Checkpoint)
	if doCheckpoint && !flagDryRun {
		paths := fixablePaths(res.Findings)
		if len(paths) > 0 {
			checkpoint, err = gitutil.Checkpoint(abs, "codemend: checkpoint before fixes", paths)
			if err != nil {
				return fmt.Errorf("checkpoint: %w", err)
			}
			fmt.Fprintf(os.Stderr, "checkpoint commit: %s\n", checkpoint)
		}
	}

	applied := fixer.Apply(res.Findings, opts)
	rep := report.Build(applied, report.Stats{
		FilesScanned: res.FilesScanned,
		Duration:     res.Duration,
		Unreadable:   res.SkippedFiles,
	})

	if flagJSON {
		if err := report.WriteJSON(os.Stdout, rep); err != nil {
			return err
		}
	} else {
		report.PrintReport(os.Stdout, rep, report.PrintOptions{NoColor: flagNoColor})
		if flagDryRun {
			fmt.Fprintln(os.Stderr, "(dry-run: no files were modified)")
		}
	}

	if !flagDryRun {
		rec := audit.NewRunRecord(abs, flagDryRun, applied, rep.ModifiedFiles, checkpoint)
		rec.Repo, _, rec.Branch = gitutil.RepoMetadata(abs)
		if err := audit.NewLog(abs).LogRun(rec); err != nil {
			fmt.Fprintln(os.Stderr, "audit warning:", err)
		}
	}
	return nil
}

// chooseConfirmer picks the policy for suggested (below-threshold) fixes:
// the review UI with --review, a y/N prompt on a terminal, and decline-all
// everywhere else (CI, pipes, --no-input).
func chooseConfirmer(root string, findings []types.Finding, opts fixer.Options) (fixer.Confirmer, error) {
	if opts.SafeOnly {
		return fixer.DeclineAll, nil
	}
	suggested := suggestedFindings(findings, opts)
	if len(suggested) == 0 {
		return fixer.DeclineAll, nil
	}
	if flagReview {
		accepted, err := tui.Review(root, suggested)
		if err != nil {
			return nil, err
		}
		return fixer.ConfirmFunc(func(f types.Finding) bool {
			return accepted[tui.Key(f)]
		}), nil
	}
	if flagNoInput || !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "%d suggested fixes need confirmation; skipping (non-interactive). Use --review or run on a terminal.\n", len(suggested))
		return fixer.DeclineAll, nil
	}
	return &promptConfirmer{in: bufio.NewReader(os.Stdin), out: os.Stderr}, nil
}

func suggestedFindings(findings []types.Finding, opts fixer.Options) []types.Finding {
	threshold := opts.EffectiveThreshold()
	var out []types.Finding
	for _, f := range findings {
		if f.Fix != nil && f.Confidence < threshold {
			out = append(out, f)
		}
	}
	return out
}

func fixablePaths(findings []types.Finding) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range findings {
		if f.Fix == nil || seen[f.Path] {
			continue
		}
		seen[f.Path] = true
		out = append(out, f.Path)
	}
	return out
}

// promptConfirmer asks y/N per suggested fix on the terminal.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *promptConfirmer) Confirm(f types.Finding) bool {
	fmt.Fprintf(p.out, "\n%s:%d  %s (%s, confidence %.2f)\n", f.Path, f.Line, f.Description, f.Category, f.Confidence)
	if f.Fix != nil {
		fmt.Fprintf(p.out, "  - %s\n", f.Fix.Original)
		if f.Fix.Replacement != "" {
			for _, line := range strings.Split(f.Fix.Replacement, "\n") {
				fmt.Fprintf(p.out, "  + %s\n", line)
			}
		}
	}
	fmt.Fprint(p.out, "Apply this fix? [y/N] ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false
	}
	s := strings.ToLower(strings.TrimSpace(line))
	return s == "y" || s == "yes"
}
