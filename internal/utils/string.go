// Package utils holds small string, casing and filesystem helpers shared
// across the engine packages.
package utils

import (
	"strings"
	"unicode"
)

// IsWordSeparator reports whether r ends a word during typing.
func IsWordSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '.', ',', '!', '?', ';', ':', '"', ')', ']', '}':
		return true
	}
	return false
}

// IsValidPrefix reports whether a typed token is worth querying for
// suggestions. Pure digits, tokens with embedded symbols and long
// single-character runs ("dddd") produce noise, not completions.
func IsValidPrefix(s string) bool {
	if len(s) == 0 {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) || r == '\'' {
			hasLetter = unicode.IsLetter(r) || hasLetter
			continue
		}
		return false
	}
	return hasLetter && !IsRepetitive(s)
}

// IsRepetitive reports whether s is a single character repeated 3+ times.
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

// CasePattern records which positions of the typed token were uppercase so
// the same shape can be reapplied to a lowercase dictionary word.
type CasePattern []bool

// CasePatternOf extracts the capitalization shape of a typed token.
func CasePatternOf(token string) CasePattern {
	pattern := make(CasePattern, 0, len(token))
	for _, r := range token {
		pattern = append(pattern, unicode.IsUpper(r))
	}
	return pattern
}

// AllUpper reports whether every letter position in the pattern is uppercase.
func (p CasePattern) AllUpper() bool {
	if len(p) < 2 {
		return false
	}
	for _, up := range p {
		if !up {
			return false
		}
	}
	return true
}

// Apply reapplies the recorded shape onto a lowercase word. All-caps tokens
// uppercase the whole word, a leading capital capitalizes the first rune, and
// anything else is left lowercase.
func (p CasePattern) Apply(word string) string {
	if word == "" {
		return word
	}
	switch {
	case p.AllUpper():
		return strings.ToUpper(word)
	case len(p) > 0 && p[0]:
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	default:
		return word
	}
}
