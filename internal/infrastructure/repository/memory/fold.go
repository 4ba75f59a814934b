package memory

import (
	"strings"

	"github.com/gosimple/unidecode"
)

// fold lowercases and strips diacritics so "Grêmio" and "gremio" compare
// equal in name searches.
func fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}

func foldContains(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(needle))
}
