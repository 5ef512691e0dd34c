package detectors

import (
	"regexp"

	"github.com/codemend/codemend/internal/types"
)

// Security findings are report-only: an automated rewrite cannot decide how
// a credential should be moved to the environment.

var reServiceRole = regexp.MustCompile(`(?i)\bSUPABASE_SERVICE_ROLE_KEY\b|['"]service_role['"]`)

// ServiceRoleInClient flags the Supabase service-role key referenced in
// client-side code, where it ships to every browser.
func ServiceRoleInClient(path string, data []byte) []types.Finding {
	return reportEachMatch(path, data, reServiceRole,
		"security_service_role_client",
		"service role key referenced in client-side code", 0.95)
}

var reHardcodedCred = regexp.MustCompile(`['"](?:sk-[A-Za-z0-9]{20,}|eyJ[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{10,})`)

// HardcodedCredential flags API-key and JWT shaped literals embedded in
// source.
func HardcodedCredential(path string, data []byte) []types.Finding {
	return reportEachMatch(path, data, reHardcodedCred,
		"security_hardcoded_credential",
		"credential-shaped literal hardcoded in source", 0.85)
}

var reDangerousHTML = regexp.MustCompile(`dangerouslySetInnerHTML`)

// DangerousHTML flags raw HTML injection points.
func DangerousHTML(path string, data []byte) []types.Finding {
	return reportEachMatch(path, data, reDangerousHTML,
		"security_dangerous_html",
		"dangerouslySetInnerHTML renders unsanitized markup", 0.5)
}

var reEval = regexp.MustCompile(`\beval\s*\(`)

// EvalCall flags eval usage.
func EvalCall(path string, data []byte) []types.Finding {
	return reportEachMatch(path, data, reEval,
		"security_eval", "eval executes arbitrary code", 0.6)
}

// reportEachMatch emits one report-only finding per matching line.
func reportEachMatch(path string, data []byte, re *regexp.Regexp, id, desc string, conf float64) []types.Finding {
	var out []types.Finding
	EachLine(data, func(n int, t string) {
		if re.MatchString(t) {
			out = append(out, types.Finding{
				Path:        path,
				Line:        n,
				Detector:    id,
				Category:    types.CatSecurity,
				Description: desc,
				Confidence:  conf,
			})
		}
	})
	return out
}
