/*
Package resource holds the per-language statistical resources the engine
queries: a frequency-ranked word table backed by a patricia trie, bigram and
trigram counters, shortcut expansions and key layout geometry.

A language's resources are compiled once from a Bundle into an immutable
LanguageResources value and swapped into the Store atomically. Readers take a
snapshot reference and never observe a half-built table.
*/
package resource

import (
	"fmt"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// WordEntry is a single dictionary word with its corpus frequency weight.
type WordEntry struct {
	Text      string
	Frequency uint32
}

// Bundle is the parsed, format-agnostic input for one language. The engine
// does not care whether it came from text assets, binary tries or the host
// platform; it only needs this in-memory shape.
type Bundle struct {
	Words     []WordEntry
	Bigrams   []NGram
	Trigrams  []NGram
	Shortcuts map[string]string
	Layout    *KeyLayout
}

// NGram is one context -> next-word count observation.
type NGram struct {
	Context []string
	Next    string
	Count   uint32
}

// LanguageResources is the compiled, immutable resource set for one language.
// It is never mutated after Compile; personalization state lives in the
// learner, not here.
type LanguageResources struct {
	Lang      string
	Trie      *patricia.Trie
	Freqs     map[string]uint32
	Bigrams   *NGramTable
	Trigrams  *NGramTable
	Shortcuts map[string]string
	Layout    *KeyLayout

	TotalWords int
	MaxFreq    uint32
}

// Compile builds the immutable resource set from a bundle. A bundle without
// words is malformed: the store keeps the previous snapshot in that case.
func Compile(lang string, bundle *Bundle) (*LanguageResources, error) {
	if bundle == nil || len(bundle.Words) == 0 {
		return nil, fmt.Errorf("resource bundle for %q has no words", lang)
	}

	res := &LanguageResources{
		Lang:      lang,
		Trie:      patricia.NewTrie(),
		Freqs:     make(map[string]uint32, len(bundle.Words)),
		Bigrams:   NewNGramTable(2),
		Trigrams:  NewNGramTable(3),
		Shortcuts: make(map[string]string, len(bundle.Shortcuts)),
		Layout:    bundle.Layout,
	}

	for _, entry := range bundle.Words {
		word := strings.ToLower(strings.TrimSpace(entry.Text))
		if word == "" {
			continue
		}
		if prev, ok := res.Freqs[word]; ok && prev >= entry.Frequency {
			continue
		}
		res.Trie.Insert(patricia.Prefix(word), entry.Frequency)
		res.Freqs[word] = entry.Frequency
		if entry.Frequency > res.MaxFreq {
			res.MaxFreq = entry.Frequency
		}
	}
	res.TotalWords = len(res.Freqs)
	if res.TotalWords == 0 {
		return nil, fmt.Errorf("resource bundle for %q has no usable words", lang)
	}

	for _, g := range bundle.Bigrams {
		res.Bigrams.Add(g.Context, g.Next, g.Count)
	}
	for _, g := range bundle.Trigrams {
		res.Trigrams.Add(g.Context, g.Next, g.Count)
	}
	for shortcut, expansion := range bundle.Shortcuts {
		key := strings.ToLower(strings.TrimSpace(shortcut))
		if key != "" && expansion != "" {
			res.Shortcuts[key] = expansion
		}
	}
	if res.Layout == nil {
		res.Layout = NewQwertyLayout()
	}
	return res, nil
}

// Frequency returns the corpus frequency of a lowercase word, 0 when absent.
func (r *LanguageResources) Frequency(word string) uint32 {
	return r.Freqs[word]
}

// Contains reports whether the lowercase word is in the dictionary.
func (r *LanguageResources) Contains(word string) bool {
	_, ok := r.Freqs[word]
	return ok
}

// Expansion returns the shortcut expansion for a typed token, if any.
func (r *LanguageResources) Expansion(token string) (string, bool) {
	exp, ok := r.Shortcuts[strings.ToLower(token)]
	return exp, ok
}
