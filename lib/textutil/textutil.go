package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace trims the edges of s and squeezes internal runs of
// whitespace down to single spaces.
func CollapseWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormalizeName lowercases a display name and strips all whitespace so
// fuzzy comparisons ignore formatting.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	return whitespaceRegex.ReplaceAllString(name, "")
}
