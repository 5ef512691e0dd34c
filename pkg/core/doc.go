// Package core provides a small, stable facade over codemend's internal
// engine and fixer for external integrations. It deliberately re-exports a
// narrow API surface so editor plugins and CI tooling can depend on a stable
// import path without exposing internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: "."}
//	findings, err := core.Scan(cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
