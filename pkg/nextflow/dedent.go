package nextflow

import (
	"strings"
	"unicode"
)

// Dedent strips the leading indent of the first line from every line, so
// templates can be written as indented literals inside Go source. Lines
// indented deeper than the first keep their relative indent. A single
// leading newline is dropped first, which lets raw literals open on their
// own line.
func Dedent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	lines := strings.Split(s, "\n")

	first := lines[0]
	indent := len(first) - len(strings.TrimLeftFunc(first, unicode.IsSpace))

	for i, line := range lines {
		cut := indent
		if cut > len(line) {
			cut = len(line)
		}
		lines[i] = strings.TrimLeft(line[:cut], " ") + line[cut:]
	}
	return strings.Join(lines, "\n")
}
