package detectors

import (
	"bufio"
	"bytes"
	"strings"
)

// Line is one source line with its 1-based number. Suppressed lines carry an
// inline ignore directive and must not produce findings.
type Line struct {
	N          int
	Text       string
	Suppressed bool
}

// Lines splits data into lines and resolves inline suppressions:
//
//	codemend:ignore            suppress findings on this line
//	codemend:ignore-next-line  suppress the following line
//	codemend:ignore-start/end  suppress a region
//
// A file-level "codemend:ignore-file" is handled by the engine before any
// detector runs.
func Lines(data []byte) []Line {
	var out []Line
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	ignoreRegion := false
	skipNext := false
	for sc.Scan() {
		n++
		t := sc.Text()
		suppressed := false
		switch {
		case strings.Contains(t, "codemend:ignore-start"):
			ignoreRegion = true
			suppressed = true
		case strings.Contains(t, "codemend:ignore-end"):
			ignoreRegion = false
			suppressed = true
		case strings.Contains(t, "codemend:ignore-next-line"):
			suppressed = true
			out = append(out, Line{N: n, Text: t, Suppressed: true})
			skipNext = true
			continue
		case ignoreRegion, skipNext:
			suppressed = true
			skipNext = false
		case strings.Contains(t, "codemend:ignore"):
			suppressed = true
		}
		out = append(out, Line{N: n, Text: t, Suppressed: suppressed})
	}
	return out
}

// EachLine invokes fn for every non-suppressed line.
func EachLine(data []byte, fn func(n int, text string)) {
	for _, l := range Lines(data) {
		if l.Suppressed {
			continue
		}
		fn(l.N, l.Text)
	}
}

// stripStrings blanks out the contents of single-, double- and backtick-quoted
// literals so identifier scans do not pick up words inside strings. Escapes
// are not interpreted; this is a line-local heuristic.
func stripStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
				b.WriteByte(c)
			} else {
				b.WriteByte(' ')
			}
			continue
		}
		if c == '\'' || c == '"' || c == '`' {
			quote = c
		}
		b.WriteByte(c)
	}
	return b.String()
}
