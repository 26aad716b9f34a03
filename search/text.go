package search

import "strings"

// normalize lowercases text and collapses every run of characters outside
// [a-z0-9] into a single space, trimming both ends.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// compact lowercases text and drops every character outside [a-z0-9].
func compact(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// tokenSet splits normalized text into its distinct words.
func tokenSet(normalized string) map[string]struct{} {
	words := strings.Fields(normalized)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// MatchesSubstring reports whether query occurs, case-insensitively, in
// "name description". An empty query matches everything.
func MatchesSubstring(name, description, query string) bool {
	if query == "" {
		return true
	}
	hay := strings.ToLower(name + " " + description)
	return strings.Contains(hay, strings.ToLower(query))
}
