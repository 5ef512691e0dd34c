// Package codemend provides the command-line interface for the codemend
// tool. It configures subcommands (fix, scan, baseline, etc.), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/codemend/codemend/cmd/codemend"
//	func main() { codemend.Execute() }
package codemend
