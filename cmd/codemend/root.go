package codemend

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagNoColor       bool
	flagConfidence    float64
	flagDryRun        bool
	flagNoCache       bool
	flagNoInput       bool
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the codemend CLI.
var rootCmd = &cobra.Command{
	Use:           "codemend",
	Version:       version,
	Short:         "Find and fix common issues in React + Vite + Supabase codebases",
	Long:          "codemend scans a project tree for formatting, import, React, Supabase, security and performance issues, applies confident fixes automatically, and asks before applying the rest.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the codemend CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().Float64Var(&flagConfidence, "confidence", 0.9, "auto-apply fixes with confidence >= value (0-1)")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "report what would change without writing files")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	rootCmd.PersistentFlags().BoolVar(&flagNoInput, "no-input", false, "never prompt; skip fixes that need confirmation")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}
