// Package detectors contains the rule-based issue detectors. Each detector
// is a pure function over file content: the same input always yields the
// same findings. Detection is regular-expression scanning over raw text,
// not an AST analysis, so it is best-effort and may produce false
// positives/negatives for code spread across lines.
package detectors
