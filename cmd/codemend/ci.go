package codemend

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		RunE: func(_ *cobra.Command, _ []string) error {
			var path string
			var content string
			switch provider {
			case "github":
				path = filepath.Join(".github", "workflows", "codemend.yml")
				content = `name: codemend
on: [push, pull_request]
jobs:
  scan:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: go install github.com/codemend/codemend@latest
      - run: codemend scan --json --fail-on supabase | tee codemend-findings.json
      - uses: actions/upload-artifact@v4
        if: always()
        with:
          name: codemend-findings
          path: codemend-findings.json
`
			case "gitlab":
				path = ".gitlab-ci.yml"
				content = `stages: [scan]
scan:
  stage: scan
  image: golang:1.25
  script:
    - go install github.com/codemend/codemend@latest
    - codemend scan --json --fail-on supabase | tee codemend-findings.json
  artifacts:
    when: always
    paths:
      - codemend-findings.json
`
			case "bitbucket":
				path = "bitbucket-pipelines.yml"
				content = `pipelines:
  default:
    - step:
        name: codemend scan
        image: golang:1.25
        caches:
          - go
        script:
          - go install github.com/codemend/codemend@latest
          - codemend scan --json --fail-on supabase | tee codemend-findings.json
        artifacts:
          - codemend-findings.json
`
			default:
				return fmt.Errorf("unknown --provider. Supported: github, gitlab, bitbucket")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
			fmt.Println("Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: github | gitlab | bitbucket")
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	ci.AddCommand(initCmd)
}
