package detectors

import (
	"regexp"
	"strings"

	"github.com/codemend/codemend/internal/types"
)

var reTrailingWS = regexp.MustCompile(`[ \t]+$`)

// TrailingWhitespace flags lines with trailing spaces or tabs. The fix
// rewrites the whole line so the applier cannot hit an earlier run of
// whitespace by accident.
func TrailingWhitespace(path string, data []byte) []types.Finding {
	var out []types.Finding
	EachLine(data, func(n int, t string) {
		if !reTrailingWS.MatchString(t) {
			return
		}
		out = append(out, types.Finding{
			Path:        path,
			Line:        n,
			Detector:    "fmt_trailing_whitespace",
			Category:    types.CatFormatting,
			Description: "trailing whitespace",
			Confidence:  0.95,
			Fix: &types.Fix{
				Original:    t,
				Replacement: strings.TrimRight(t, " \t"),
			},
		})
	})
	return out
}

var reConsoleLog = regexp.MustCompile(`^\s*console\.(log|debug|info)\s*\(.*\)\s*;?\s*$`)

// ConsoleLog flags statement lines that are nothing but a console.log call.
// The fix removes the whole line.
func ConsoleLog(path string, data []byte) []types.Finding {
	var out []types.Finding
	EachLine(data, func(n int, t string) {
		if !reConsoleLog.MatchString(t) {
			return
		}
		out = append(out, types.Finding{
			Path:        path,
			Line:        n,
			Detector:    "fmt_console_log",
			Category:    types.CatFormatting,
			Description: "leftover console logging",
			Confidence:  0.55,
			Fix:         &types.Fix{Original: t, DeleteLine: true},
		})
	})
	return out
}

var reVarDecl = regexp.MustCompile(`^\s*var\s+[A-Za-z_$]`)

// VarDeclaration flags `var` declarations. The rewrite to `let` is usually
// safe but changes hoisting, so it stays below the auto-apply band.
func VarDeclaration(path string, data []byte) []types.Finding {
	var out []types.Finding
	EachLine(data, func(n int, t string) {
		if !reVarDecl.MatchString(t) {
			return
		}
		out = append(out, types.Finding{
			Path:        path,
			Line:        n,
			Detector:    "fmt_var_declaration",
			Category:    types.CatFormatting,
			Description: "var declaration; prefer let or const",
			Confidence:  0.6,
			Fix:         &types.Fix{Original: "var ", Replacement: "let "},
		})
	})
	return out
}
