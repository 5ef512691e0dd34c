package detectors

import (
	"github.com/codemend/codemend/internal/filetype"
	"github.com/codemend/codemend/internal/types"
)

// AnalyzeFunc inspects file content and returns findings. Implementations
// must be pure: no IO, no mutation of data, deterministic output.
type AnalyzeFunc func(path string, data []byte) []types.Finding

// Detector pairs an analysis function with its category and the file types
// it can handle. Dispatch is a static table rather than a runtime registry.
type Detector struct {
	ID        string
	Category  types.Category
	FileTypes []filetype.Type
	Analyze   AnalyzeFunc
}

// CanHandle reports whether the detector applies to files of type ft.
func (d Detector) CanHandle(ft filetype.Type) bool {
	for _, t := range d.FileTypes {
		if t == ft {
			return true
		}
	}
	return false
}

var sourceTypes = []filetype.Type{filetype.Component, filetype.Script, filetype.EdgeFunction}

var all = []Detector{
	{ID: "react_missing_key", Category: types.CatReact,
		FileTypes: []filetype.Type{filetype.Component}, Analyze: MissingKey},
	{ID: "react_missing_hook_deps", Category: types.CatReact,
		FileTypes: []filetype.Type{filetype.Component}, Analyze: MissingHookDeps},
	{ID: "supabase_missing_error_handling", Category: types.CatSupabase,
		FileTypes: sourceTypes, Analyze: MissingErrorHandling},
	{ID: "supabase_unchecked_error", Category: types.CatSupabase,
		FileTypes: sourceTypes, Analyze: UncheckedError},
	{ID: "supabase_unguarded_body_parse", Category: types.CatSupabase,
		FileTypes: []filetype.Type{filetype.EdgeFunction}, Analyze: UnguardedBodyParse},
	{ID: "security_service_role_client", Category: types.CatSecurity,
		FileTypes: []filetype.Type{filetype.Component, filetype.Script}, Analyze: ServiceRoleInClient},
	{ID: "security_hardcoded_credential", Category: types.CatSecurity,
		FileTypes: append(sourceTypes, filetype.Config), Analyze: HardcodedCredential},
	{ID: "security_dangerous_html", Category: types.CatSecurity,
		FileTypes: []filetype.Type{filetype.Component}, Analyze: DangerousHTML},
	{ID: "security_eval", Category: types.CatSecurity,
		FileTypes: sourceTypes, Analyze: EvalCall},
	{ID: "fmt_trailing_whitespace", Category: types.CatFormatting,
		FileTypes: append(sourceTypes, filetype.Config, filetype.Style), Analyze: TrailingWhitespace},
	{ID: "fmt_console_log", Category: types.CatFormatting,
		FileTypes: sourceTypes, Analyze: ConsoleLog},
	{ID: "fmt_var_declaration", Category: types.CatFormatting,
		FileTypes: sourceTypes, Analyze: VarDeclaration},
	{ID: "imports_duplicate_source", Category: types.CatImports,
		FileTypes: []filetype.Type{filetype.Component, filetype.Script}, Analyze: DuplicateImport},
	{ID: "imports_unused_react", Category: types.CatImports,
		FileTypes: []filetype.Type{filetype.Component}, Analyze: UnusedReactImport},
	{ID: "perf_deep_clone", Category: types.CatPerformance,
		FileTypes: sourceTypes, Analyze: DeepClone},
	{ID: "perf_img_loading", Category: types.CatPerformance,
		FileTypes: []filetype.Type{filetype.Component}, Analyze: ImgWithoutLazyLoading},
}

// All returns the static detector table.
func All() []Detector {
	return all
}

// IDs returns every detector ID, in table order.
func IDs() []string {
	out := make([]string, 0, len(all))
	for _, d := range all {
		out = append(out, d.ID)
	}
	return out
}
