// Package extract finds exported class declarations in TypeScript sources
// without parsing them.
//
// Only the first line containing "export class " is considered; a file that
// exports several classes contributes the first one. Comments are not
// recognized: a commented-out declaration matches like any other line.
package extract

import "strings"

// Marker is the literal text that identifies an exported class declaration.
const Marker = "export class "

// ExportedClass returns the identifier of the first exported class in text.
// The identifier is the first whitespace-separated token after the marker,
// taken verbatim (a trailing "{" or generic parameter list is kept).
// It reports false when no line contains the marker, or when the first
// matching line has nothing after it.
func ExportedClass(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, Marker)
		if idx == -1 {
			continue
		}

		fields := strings.Fields(line[idx+len(Marker):])
		if len(fields) == 0 {
			return "", false
		}
		return fields[0], true
	}
	return "", false
}
