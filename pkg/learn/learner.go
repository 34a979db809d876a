/*
Package learn holds the engine's adaptive state: per-language learned words,
the rejected-correction blacklist, accepted-correction bias and the session
n-gram overlay fed by committed words.

All of it is append-mostly and engine-scoped. Ranking consults it through the
suggest.Personal view; nothing here touches the immutable language snapshots.
*/
package learn

import (
	"math"
	"strings"
	"sync"
)

// Learner records accept/reject feedback and freshly committed words, biasing
// future ranking toward learned words and away from rejected corrections.
// Safe for concurrent use: mutation frequency is low relative to reads.
type Learner struct {
	mu        sync.RWMutex
	boost     float64
	langs     map[string]*langState
	blacklist map[pairKey]struct{}
	preferred map[pairKey]struct{}
}

type langState struct {
	words    map[string]uint32
	bigrams  map[string]map[string]uint32
	trigrams map[string]map[string]uint32
}

type pairKey struct {
	original  string
	corrected string
}

const overlaySep = "\x1f"

// NewLearner creates an empty learner. boost is the additive score advantage
// a learned word receives during ranking.
func NewLearner(boost float64) *Learner {
	return &Learner{
		boost:     boost,
		langs:     make(map[string]*langState),
		blacklist: make(map[pairKey]struct{}),
		preferred: make(map[pairKey]struct{}),
	}
}

// CommitWord records a committed word. Words already in the dictionary are
// not re-learned; the n-gram overlay is updated either way so the session's
// own phrasing feeds next-word prediction.
func (l *Learner) CommitWord(lang, word string, context []string, inDictionary bool) {
	lower := strings.ToLower(strings.TrimSpace(word))
	if lower == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	state := l.lang(lang)
	if !inDictionary {
		state.words[lower]++
	}
	if n := len(context); n >= 1 {
		addOverlay(state.bigrams, overlayKey(context[n-1:]), lower)
	}
	if n := len(context); n >= 2 {
		addOverlay(state.trigrams, overlayKey(context[n-2:]), lower)
	}
}

// AcceptCorrection folds an accepted (original -> corrected) pair into the
// positive-bias set and boosts the corrected word.
func (l *Learner) AcceptCorrection(lang, original, corrected string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lang(lang).words[strings.ToLower(corrected)]++
	l.preferred[makePair(original, corrected)] = struct{}{}
}

// RejectCorrection blacklists the pair case-insensitively, so capitalization
// variants are covered by one entry, and learns the original as a valid word.
// Entries persist until ClearBlacklist; the engine never auto-expires them.
func (l *Learner) RejectCorrection(lang, original, corrected string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blacklist[makePair(original, corrected)] = struct{}{}
	l.lang(lang).words[strings.ToLower(original)]++
}

// RecordSwipeAcceptance boosts a word the user kept after gesture typing.
func (l *Learner) RecordSwipeAcceptance(lang, word string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lang(lang).words[strings.ToLower(word)]++
}

// IsRejected reports whether the user has rejected this correction before.
func (l *Learner) IsRejected(original, corrected string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.blacklist[makePair(original, corrected)]
	return ok
}

// IsPreferred reports whether the user has accepted this correction before.
func (l *Learner) IsPreferred(original, corrected string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.preferred[makePair(original, corrected)]
	return ok
}

// LearnedCount returns how often a word has been learned for a language.
func (l *Learner) LearnedCount(lang, word string) uint32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	state, ok := l.langs[lang]
	if !ok {
		return 0
	}
	return state.words[strings.ToLower(word)]
}

// ClearBlacklist drops every rejected pair, for an explicit dictionary reset.
func (l *Learner) ClearBlacklist() {
	l.mu.Lock()
	l.blacklist = make(map[pairKey]struct{})
	l.mu.Unlock()
}

// Reset drops all adaptive state.
func (l *Learner) Reset() {
	l.mu.Lock()
	l.langs = make(map[string]*langState)
	l.blacklist = make(map[pairKey]struct{})
	l.preferred = make(map[pairKey]struct{})
	l.mu.Unlock()
}

// View returns the suggest.Personal view of one language's adaptive state.
func (l *Learner) View(lang string) *View {
	return &View{learner: l, lang: lang}
}

// View adapts learner state for ranking. It reads live state under the
// learner's lock; per-call cost is two map lookups.
type View struct {
	learner *Learner
	lang    string
}

// Boost returns the additive score advantage for a learned word, growing
// gently with repetition, 0 for unknown words.
func (v *View) Boost(word string) float64 {
	count := v.learner.LearnedCount(v.lang, word)
	if count == 0 {
		return 0
	}
	return v.learner.boost + math.Log1p(float64(count-1))
}

// NGramCount returns the session overlay count for context -> next.
func (v *View) NGramCount(context []string, next string) uint32 {
	v.learner.mu.RLock()
	defer v.learner.mu.RUnlock()
	state, ok := v.learner.langs[v.lang]
	if !ok {
		return 0
	}
	var rows map[string]map[string]uint32
	switch len(context) {
	case 1:
		rows = state.bigrams
	case 2:
		rows = state.trigrams
	default:
		return 0
	}
	row, ok := rows[overlayKey(context)]
	if !ok {
		return 0
	}
	return row[strings.ToLower(next)]
}

func (l *Learner) lang(lang string) *langState {
	state, ok := l.langs[lang]
	if !ok {
		state = &langState{
			words:    make(map[string]uint32),
			bigrams:  make(map[string]map[string]uint32),
			trigrams: make(map[string]map[string]uint32),
		}
		l.langs[lang] = state
	}
	return state
}

func addOverlay(rows map[string]map[string]uint32, key, next string) {
	row, ok := rows[key]
	if !ok {
		row = make(map[string]uint32)
		rows[key] = row
	}
	row[next]++
}

func overlayKey(context []string) string {
	lowered := make([]string, len(context))
	for i, w := range context {
		lowered[i] = strings.ToLower(w)
	}
	return strings.Join(lowered, overlaySep)
}

func makePair(original, corrected string) pairKey {
	return pairKey{
		original:  strings.ToLower(original),
		corrected: strings.ToLower(corrected),
	}
}
