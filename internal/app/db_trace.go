package app

import (
	"regexp"
	"strings"
)

var collapseSpaces = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses whitespace and bounds the statement text
// so multi-line builder output stays readable in span attributes.
func formatDBQueryForTrace(query string) string {
	const maxLen = 512

	normalized := collapseSpaces.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(normalized) > maxLen {
		return normalized[:maxLen] + "..."
	}

	return normalized
}
