// Package suggest is the core candidate machinery: prefix and fuzzy matching
// against the word table, context-sensitive ranking with n-gram counts, and
// pure next-word prediction.
package suggest

import "sort"

// Source tells the caller which path produced a suggestion.
type Source int

const (
	SourceTyping Source = iota
	SourceSwipe
	SourceNextWord
	SourceShortcut
)

// String returns the wire/display name of the source.
func (s Source) String() string {
	switch s {
	case SourceTyping:
		return "typing"
	case SourceSwipe:
		return "swipe"
	case SourceNextWord:
		return "next"
	case SourceShortcut:
		return "shortcut"
	default:
		return "unknown"
	}
}

// Suggestion is one ranked word candidate. Produced fresh per query and never
// mutated afterwards.
type Suggestion struct {
	Text         string
	Score        float64
	Frequency    int
	Source       Source
	IsAutoCommit bool
}

// Personal is the learner-side view consulted during scoring: learned-word
// boosts and session n-gram counts layered over the static tables. A nil
// Personal is valid and contributes nothing.
type Personal interface {
	// Boost returns the additive score boost for a learned word, 0 otherwise.
	Boost(word string) float64
	// NGramCount returns session-observed counts for context -> next, where
	// len(context) selects bigram (1) or trigram (2) overlays.
	NGramCount(context []string, next string) uint32
}

// SortByScore orders suggestions by descending score, breaking ties by word
// so identical inputs always rank identically.
func SortByScore(list []Suggestion) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].Text < list[j].Text
	})
}
