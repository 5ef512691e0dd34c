package detectors

import (
	"regexp"
	"strings"

	"github.com/codemend/codemend/internal/types"
)

// reDataOnly matches a Supabase call whose result destructures only the
// success value: `const { data } = await supabase.from(...)...` (an alias
// `{ data: users }` counts too).
var reDataOnly = regexp.MustCompile(
	`^(\s*)(const|let|var)\s+(\{\s*data(?:\s*:\s*[A-Za-z_$][\w$]*)?\s*\})\s*=\s*await\s+[\w$]*[sS]upabase[\w$]*\s*\.`)

// MissingErrorHandling flags data-fetch calls that drop the error value.
// The fix destructures `error` alongside `data` and throws on it.
func MissingErrorHandling(path string, data []byte) []types.Finding {
	var out []types.Finding
	ls := Lines(data)
	for i, l := range ls {
		if l.Suppressed {
			continue
		}
		m := reDataOnly.FindStringSubmatch(l.Text)
		if m == nil {
			continue
		}
		if errorHandledNearby(ls, i) {
			continue
		}
		indent, destruct := m[1], m[3]
		inner := strings.TrimSuffix(strings.TrimPrefix(destruct, "{"), "}")
		fixed := "{" + strings.TrimRight(inner, " \t") + ", error }"
		out = append(out, types.Finding{
			Path:        path,
			Line:        l.N,
			Detector:    "supabase_missing_error_handling",
			Category:    types.CatSupabase,
			Description: "query result destructures data but ignores error",
			Confidence:  0.9,
			Fix: &types.Fix{
				Original:    l.Text,
				Replacement: strings.Replace(l.Text, destruct, fixed, 1) + "\n" + indent + "if (error) throw error",
			},
		})
	}
	return out
}

// reDataAndError matches a destructure that does take the error value.
var reDataAndError = regexp.MustCompile(`(?:const|let|var)\s+\{[^}]*\berror\b[^}]*\}\s*=\s*await\s+[\w$]*[sS]upabase[\w$]*`)

// UncheckedError flags a destructured error value that the following lines
// never look at. Report-only: the right guard depends on surrounding code.
func UncheckedError(path string, data []byte) []types.Finding {
	var out []types.Finding
	ls := Lines(data)
	for i, l := range ls {
		if l.Suppressed {
			continue
		}
		if !reDataAndError.MatchString(l.Text) {
			continue
		}
		if errorHandledNearby(ls, i) {
			continue
		}
		out = append(out, types.Finding{
			Path:        path,
			Line:        l.N,
			Detector:    "supabase_unchecked_error",
			Category:    types.CatSupabase,
			Description: "error result is destructured but never checked",
			Confidence:  0.6,
		})
	}
	return out
}

// errorHandledNearby reports whether any of the five lines after index i
// references `error` (a check, a throw, a log).
func errorHandledNearby(ls []Line, i int) bool {
	for j := i + 1; j < len(ls) && j <= i+5; j++ {
		if strings.Contains(ls[j].Text, "error") {
			return true
		}
	}
	return false
}

var reBodyParse = regexp.MustCompile(`await\s+req(?:uest)?\s*\.\s*json\s*\(\s*\)`)

// UnguardedBodyParse flags Edge Function request-body parsing with no try
// block in the preceding lines. Malformed JSON otherwise crashes the
// function with an unhandled rejection.
func UnguardedBodyParse(path string, data []byte) []types.Finding {
	var out []types.Finding
	ls := Lines(data)
	for i, l := range ls {
		if l.Suppressed || !reBodyParse.MatchString(l.Text) {
			continue
		}
		guarded := false
		for j := i; j >= 0 && j >= i-5; j-- {
			if strings.Contains(ls[j].Text, "try") {
				guarded = true
				break
			}
		}
		if guarded {
			continue
		}
		out = append(out, types.Finding{
			Path:        path,
			Line:        l.N,
			Detector:    "supabase_unguarded_body_parse",
			Category:    types.CatSupabase,
			Description: "request body parsed without try/catch",
			Confidence:  0.55,
		})
	}
	return out
}
