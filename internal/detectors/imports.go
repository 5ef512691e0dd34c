package detectors

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/codemend/codemend/internal/types"
)

var reImportFrom = regexp.MustCompile(`^\s*import\s+.+\s+from\s+['"]([^'"]+)['"]`)

// DuplicateImport flags a second import statement pulling from a module that
// an earlier line already imported. Report-only: merging the specifier lists
// is not expressible as a single-span rewrite.
func DuplicateImport(path string, data []byte) []types.Finding {
	var out []types.Finding
	seen := map[string]int{}
	EachLine(data, func(n int, t string) {
		m := reImportFrom.FindStringSubmatch(t)
		if m == nil {
			return
		}
		src := m[1]
		if first, ok := seen[src]; ok {
			out = append(out, types.Finding{
				Path:        path,
				Line:        n,
				Detector:    "imports_duplicate_source",
				Category:    types.CatImports,
				Description: "duplicate import of '" + src + "' (first imported on line " + strconv.Itoa(first) + ")",
				Confidence:  0.8,
			})
			return
		}
		seen[src] = n
	})
	return out
}

var reReactDefaultImport = regexp.MustCompile(`^\s*import\s+React\s+from\s+['"]react['"]\s*;?\s*$`)

// UnusedReactImport flags a default React import in a file that never
// references the React namespace. The automatic JSX runtime makes the import
// unnecessary, but build setups vary, so the removal is suggested only.
func UnusedReactImport(path string, data []byte) []types.Finding {
	content := string(data)
	if strings.Contains(content, "React.") || strings.Contains(content, "extends React") {
		return nil
	}
	var out []types.Finding
	EachLine(data, func(n int, t string) {
		if !reReactDefaultImport.MatchString(t) {
			return
		}
		out = append(out, types.Finding{
			Path:        path,
			Line:        n,
			Detector:    "imports_unused_react",
			Category:    types.CatImports,
			Description: "default React import unused under the automatic JSX runtime",
			Confidence:  0.6,
			Fix:         &types.Fix{Original: t, DeleteLine: true},
		})
	})
	return out
}
