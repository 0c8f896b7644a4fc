package search

import (
	"regexp"
	"strings"
)

const minTokenLen = 3

var nonTokenChars = regexp.MustCompile(`[^\w\s-]`)

// Tokenize turns a free-text query into the normalized keyword list the
// scorer consumes: lowercased, punctuation stripped (hyphens kept),
// split on whitespace, tokens shorter than three characters dropped.
// Empty input yields an empty list, which the scorer treats as the
// "no keywords" miss, not an error.
func Tokenize(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	query = nonTokenChars.ReplaceAllString(query, " ")
	fields := strings.Fields(query)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLen {
			continue
		}
		out = append(out, f)
	}
	return out
}
