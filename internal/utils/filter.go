package utils

import "strings"

// SuggestionFilter drops duplicate words and explicitly excluded words from a
// result set, case-insensitively. Not safe for concurrent use; build one per
// query.
type SuggestionFilter struct {
	seen map[string]bool
}

// NewSuggestionFilter creates a filter that excludes the given words up front
// (typically the typed token itself plus caller-side exclusions).
func NewSuggestionFilter(exclude ...string) *SuggestionFilter {
	seen := make(map[string]bool, len(exclude)+8)
	for _, w := range exclude {
		if w != "" {
			seen[strings.ToLower(w)] = true
		}
	}
	return &SuggestionFilter{seen: seen}
}

// ShouldInclude reports whether word has not been seen yet and marks it seen.
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	lower := strings.ToLower(word)
	if f.seen[lower] {
		return false
	}
	f.seen[lower] = true
	return true
}
