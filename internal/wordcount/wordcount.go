// Package wordcount derives word counts from content bodies. Bodies are
// stored as HTML fragments; markup is stripped before counting so tags and
// attributes never inflate an author's word total.
package wordcount

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Strip removes markup from s and decodes HTML entities. Tags are replaced
// with a space so adjacent words in separate elements stay separated.
func Strip(s string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, " "))
}

// Count returns the number of whitespace-delimited tokens in s after
// stripping markup.
func Count(s string) int {
	return len(strings.Fields(Strip(s)))
}
