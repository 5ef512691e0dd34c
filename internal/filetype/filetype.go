package filetype

import (
	"path/filepath"
	"strings"
)

// Type classifies a source file so detectors can opt in per kind.
type Type string

const (
	Component    Type = "component"     // .jsx/.tsx React components
	Script       Type = "script"        // plain .js/.ts application code
	EdgeFunction Type = "edge_function" // Supabase Edge Functions
	Config       Type = "config"        // build/tool configuration
	Style        Type = "style"         // stylesheets
	Unknown      Type = "unknown"
)

var configNames = map[string]bool{
	"vite.config.js":     true,
	"vite.config.ts":     true,
	"vite.config.mjs":    true,
	"vercel.json":        true,
	"tsconfig.json":      true,
	"package.json":       true,
	".eslintrc.js":       true,
	".eslintrc.cjs":      true,
	"tailwind.config.js": true,
	"postcss.config.js":  true,
}

// Classify maps a repo-relative path to a Type. Supabase Edge Functions live
// under supabase/functions/ and take precedence over the plain script kind.
func Classify(rel string) Type {
	rel = strings.ReplaceAll(rel, "\\", "/")
	base := filepath.Base(rel)
	if configNames[base] || strings.HasSuffix(base, ".config.js") || strings.HasSuffix(base, ".config.ts") {
		return Config
	}
	if strings.Contains(rel, "supabase/functions/") {
		if ext := filepath.Ext(base); ext == ".ts" || ext == ".js" {
			return EdgeFunction
		}
	}
	switch filepath.Ext(base) {
	case ".jsx", ".tsx":
		return Component
	case ".js", ".ts", ".mjs", ".cjs":
		return Script
	case ".css", ".scss", ".less":
		return Style
	}
	return Unknown
}
