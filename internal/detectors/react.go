package detectors

import (
	"regexp"
	"sort"
	"strings"

	"github.com/codemend/codemend/internal/types"
)

// reMapJSX matches a .map() callback that returns a JSX element on the same
// line: `items.map(item => <div ...>` or `items.map((item, i) => (<li ...>`.
// Multi-line callbacks are out of reach for a line scan.
var reMapJSX = regexp.MustCompile(
	`\.map\(\s*\(?\s*([A-Za-z_$][\w$]*)\s*(?:,\s*([A-Za-z_$][\w$]*)\s*)?\)?\s*=>\s*\(?\s*<([A-Za-z][\w.]*)([^>]*?)/?>`)

// MissingKey flags list renders whose root JSX element has no key prop. The
// fix keys by `<item>.id`, or by the index parameter when the callback
// declares one. A line can hold several renders, so each fix records the
// column of its own element.
func MissingKey(path string, data []byte) []types.Finding {
	var out []types.Finding
	EachLine(data, func(n int, t string) {
		for _, loc := range reMapJSX.FindAllStringSubmatchIndex(t, -1) {
			item := t[loc[2]:loc[3]]
			index := ""
			if loc[4] >= 0 {
				index = t[loc[4]:loc[5]]
			}
			tag := t[loc[6]:loc[7]]
			attrs := t[loc[8]:loc[9]]
			if strings.Contains(attrs, "key=") {
				continue
			}
			keyExpr := item + ".id"
			if index != "" {
				keyExpr = index
			}
			out = append(out, types.Finding{
				Path:        path,
				Line:        n,
				Detector:    "react_missing_key",
				Category:    types.CatReact,
				Description: "list rendering without a unique key prop",
				Confidence:  0.95,
				Fix: &types.Fix{
					Original:    "<" + tag + attrs,
					Replacement: "<" + tag + " key={" + keyExpr + "}" + attrs,
					Col:         loc[6], // 1-based column of the '<' before the tag
				},
			})
		}
	})
	return out
}

// reUseEffect matches a single-line useEffect with an explicit dependency
// array. Group 1 is the body, group 2 the `, [deps])` tail, group 3 the deps.
var reUseEffect = regexp.MustCompile(`useEffect\(\s*\(\s*\)\s*=>\s*\{(.*)\}\s*(,\s*\[([^\]]*)\]\s*\))`)

var reIdent = regexp.MustCompile(`[A-Za-z_$][\w$]*`)

var reLocalDecl = regexp.MustCompile(`(?:const|let|var)\s+([A-Za-z_$][\w$]*)`)

// hookGlobals are identifiers never owed to a dependency array.
var hookGlobals = map[string]bool{
	"console": true, "window": true, "document": true, "localStorage": true,
	"sessionStorage": true, "navigator": true, "fetch": true, "alert": true,
	"setTimeout": true, "setInterval": true, "clearTimeout": true, "clearInterval": true,
	"JSON": true, "Math": true, "Date": true, "Promise": true, "Object": true,
	"Array": true, "String": true, "Number": true, "Boolean": true, "Error": true,
	"Map": true, "Set": true, "structuredClone": true, "crypto": true,
	"undefined": true, "null": true, "true": true, "false": true,
	"if": true, "else": true, "return": true, "const": true, "let": true,
	"var": true, "await": true, "async": true, "new": true, "typeof": true,
	"function": true, "try": true, "catch": true, "finally": true, "throw": true,
	"for": true, "while": true, "of": true, "in": true, "switch": true, "case": true,
}

// MissingHookDeps flags a useEffect whose body references identifiers that
// its dependency array omits. Only effects written on one line are parsed;
// the heuristic skips globals, locals declared in the body, and property
// accesses. Confidence stays below the auto-apply band on purpose.
func MissingHookDeps(path string, data []byte) []types.Finding {
	var out []types.Finding
	EachLine(data, func(n int, t string) {
		m := reUseEffect.FindStringSubmatch(t)
		if m == nil {
			return
		}
		body, tail, depsRaw := m[1], m[2], m[3]

		declared := map[string]bool{}
		for _, d := range reLocalDecl.FindAllStringSubmatch(body, -1) {
			declared[d[1]] = true
		}
		deps := splitDeps(depsRaw)
		have := map[string]bool{}
		for _, d := range deps {
			have[d] = true
		}

		stripped := stripStrings(body)
		missing := map[string]bool{}
		for _, loc := range reIdent.FindAllStringIndex(stripped, -1) {
			id := stripped[loc[0]:loc[1]]
			if loc[0] > 0 && stripped[loc[0]-1] == '.' {
				continue // property access
			}
			if hookGlobals[id] || declared[id] || have[id] {
				continue
			}
			if isStateSetter(id) {
				continue // useState setters are referentially stable
			}
			missing[id] = true
		}
		if len(missing) == 0 {
			return
		}
		add := make([]string, 0, len(missing))
		for id := range missing {
			add = append(add, id)
		}
		sort.Strings(add)
		out = append(out, types.Finding{
			Path:        path,
			Line:        n,
			Detector:    "react_missing_hook_deps",
			Category:    types.CatReact,
			Description: "effect dependency array omits " + strings.Join(add, ", "),
			Confidence:  0.7,
			Fix: &types.Fix{
				Original:    tail,
				Replacement: ", [" + strings.Join(append(deps, add...), ", ") + "])",
			},
		})
	})
	return out
}

func isStateSetter(id string) bool {
	return len(id) > 4 && strings.HasPrefix(id, "set") && id[3] >= 'A' && id[3] <= 'Z'
}

func splitDeps(raw string) []string {
	var out []string
	for _, d := range strings.Split(raw, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}
