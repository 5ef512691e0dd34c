package codemend

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codemend/codemend/internal/config"
	"github.com/codemend/codemend/internal/types"
)

var (
	cfgPreset     string
	cfgOutput     string
	cfgCategories string
	cfgDisable    string
	cfgMaxBytes   int64
	cfgConfidence float64
	cfgNoColor    bool
	cfgSafeOnly   bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .codemend.yml with selected categories and options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgPreset, "preset", "standard", "category preset: minimal | standard")
	initCmd.Flags().StringVar(&cfgOutput, "output", ".codemend.yml", "output file path")
	initCmd.Flags().StringVar(&cfgCategories, "categories", "", "comma-separated categories (overrides preset if set)")
	initCmd.Flags().StringVar(&cfgDisable, "disable", "", "comma-separated detector IDs to disable")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	initCmd.Flags().Float64Var(&cfgConfidence, "confidence", 0.9, "auto-apply confidence threshold (0.0-1.0)")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgSafeOnly, "safe-only", false, "never prompt; apply only confident fixes")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (local over global)",
		RunE:  runConfigShow,
	}
	cfgCmd.AddCommand(showCmd)
}

// runConfigShow prints the merged file configuration. CLI flags are not part
// of the output; they apply per invocation, not per project.
func runConfigShow(_ *cobra.Command, _ []string) error {
	var merged config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		merged = c
	}
	if c, err := config.LoadLocal("."); err == nil {
		overlayConfig(&merged, c)
	}
	b, err := yaml.Marshal(&merged)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(b)
	return err
}

// overlayConfig copies every set field of src over dst.
func overlayConfig(dst *config.FileConfig, src config.FileConfig) {
	if src.Include != nil {
		dst.Include = src.Include
	}
	if src.Exclude != nil {
		dst.Exclude = src.Exclude
	}
	if src.MaxBytes != nil {
		dst.MaxBytes = src.MaxBytes
	}
	if src.Enable != nil {
		dst.Enable = src.Enable
	}
	if src.Disable != nil {
		dst.Disable = src.Disable
	}
	if src.Categories != nil {
		dst.Categories = src.Categories
	}
	if src.Confidence != nil {
		dst.Confidence = src.Confidence
	}
	if src.NoColor != nil {
		dst.NoColor = src.NoColor
	}
	if src.NoCache != nil {
		dst.NoCache = src.NoCache
	}
	if src.SafeOnly != nil {
		dst.SafeOnly = src.SafeOnly
	}
	if src.BackupDir != nil {
		dst.BackupDir = src.BackupDir
	}
	if src.Checkpoint != nil {
		dst.Checkpoint = src.Checkpoint
	}
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	categories := strings.TrimSpace(cfgCategories)
	if categories == "" {
		switch strings.ToLower(cfgPreset) {
		case "minimal":
			// The categories that matter most in CI: data loss and leaks.
			categories = strings.Join([]string{
				string(types.CatSecurity),
				string(types.CatSupabase),
			}, ",")
		default: // standard: every category
			var all []string
			for _, c := range types.Categories() {
				all = append(all, string(c))
			}
			categories = strings.Join(all, ",")
		}
	}

	fc := config.FileConfig{
		Include:    nil,
		Exclude:    nil,
		MaxBytes:   int64Ptr(cfgMaxBytes),
		Categories: strPtr(categories),
		Disable:    optStrPtr(cfgDisable),
		Confidence: floatPtr(cfgConfidence),
		NoColor:    boolPtr(cfgNoColor),
		SafeOnly:   boolPtr(cfgSafeOnly),
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Println("Wrote", cfgOutput)
	return nil
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
