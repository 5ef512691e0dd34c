// Package engine walks a project tree, classifies each file, and dispatches
// content to every detector that handles the file's type. The pipeline is
// sequential: one file at a time, one detector at a time, findings in a
// deterministic order.
package engine
