package formats

import "strings"

// isBlankLine checks if a line contains only whitespace
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// singleLine folds line breaks so a record always renders on one line.
func singleLine(text string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(text, "\r", "")), " ")
}
