/*
Package engine is the facade over the prediction core: typed-prefix
suggestions, gesture decoding, next-word prediction, confidence-gated
autocorrection and adaptive learning, per language.

An Engine is an explicit instance owned by the caller; there is no ambient
global state. All suggestion queries run against an immutable language
snapshot taken at call start, so background language loads never block or
corrupt a query.
*/
package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/glidetype/glidetype/pkg/autocorrect"
	"github.com/glidetype/glidetype/pkg/config"
	"github.com/glidetype/glidetype/pkg/learn"
	"github.com/glidetype/glidetype/pkg/resource"
	"github.com/glidetype/glidetype/pkg/suggest"
	"github.com/glidetype/glidetype/pkg/swipe"
)

// ErrNotReady reports that a language's resources are absent or still
// loading. It is a normal, retryable condition, not a failure: callers may
// wait, retry or skip suggestions for the turn.
var ErrNotReady = errors.New("language resources not ready")

// Engine ties the resource store, candidate generation, gesture decoding,
// the confidence gate and the learner into one prediction engine.
type Engine struct {
	cfg     *config.Config
	store   *resource.Store
	manager *resource.Manager
	learner *learn.Learner
	timing  *autocorrect.Monitor
	gate    *autocorrect.Gate
}

// New creates an engine with the given configuration. Resources are supplied
// via SetLanguage; use NewWithDir when language assets live on disk.
func New(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	store := resource.NewStore()
	learner := learn.NewLearner(cfg.Suggest.UserBoost)
	timing := autocorrect.NewMonitor(cfg.Timing)
	return &Engine{
		cfg:     cfg,
		store:   store,
		learner: learner,
		timing:  timing,
		gate:    autocorrect.NewGate(cfg.Autocorrect, timing, learner),
	}
}

// NewWithDir creates an engine that can preload language bundles from a
// resource directory.
func NewWithDir(cfg *config.Config, dir string) *Engine {
	e := New(cfg)
	e.manager = resource.NewManager(e.store, dir, e.cfg.Dict.MaxWords)
	return e
}

// SetLanguage installs parsed resources for a language atomically. On a
// malformed bundle the language keeps its previous state and the error is
// returned.
func (e *Engine) SetLanguage(lang string, bundle *resource.Bundle) error {
	return e.store.SetLanguage(lang, bundle)
}

// PreloadLanguages loads the given languages from the resource directory
// concurrently, without blocking queries on already-loaded languages.
func (e *Engine) PreloadLanguages(ctx context.Context, langs []string) error {
	if e.manager == nil {
		return errors.New("engine has no resource directory configured")
	}
	return e.manager.Preload(ctx, langs)
}

// HasLanguage reports whether a language is loaded and queryable.
func (e *Engine) HasLanguage(lang string) bool {
	return e.store.Has(lang)
}

// ClearCache evicts every loaded language. In-flight queries finish against
// the snapshots they already hold.
func (e *Engine) ClearCache() {
	e.store.Clear()
}

// SuggestTyping returns ranked candidates for a partially typed word plus the
// last committed words. An empty prefix yields pure next-word predictions.
func (e *Engine) SuggestTyping(lang, prefix string, wordContext []string, limit int) ([]suggest.Suggestion, error) {
	res, ok := e.store.Snapshot(lang)
	if !ok {
		return nil, ErrNotReady
	}
	gen := suggest.NewGenerator(e.cfg.Suggest, res, e.learner.View(lang))
	return gen.Suggest(prefix, wordContext, limit), nil
}

// SuggestSwipe decodes a gesture path into ranked candidates. Decoding is a
// pure function of the path, so preview calls during a drag are just calls.
func (e *Engine) SuggestSwipe(lang string, path swipe.Path, wordContext []string, limit int) ([]suggest.Suggestion, error) {
	res, ok := e.store.Snapshot(lang)
	if !ok {
		return nil, ErrNotReady
	}
	ranker := suggest.NewRanker(e.cfg.Suggest, res, e.learner.View(lang))
	dec := swipe.NewDecoder(e.cfg.Swipe, res, ranker)
	return dec.Decode(path, wordContext, limit), nil
}

// BestSuggestion returns the top correction candidate for a typed word, or
// false when the language is not ready or nothing plausible exists. The
// result ignores the blacklist; committing it is the gate's call, not here.
func (e *Engine) BestSuggestion(lang, word string) (string, bool) {
	res, ok := e.store.Snapshot(lang)
	if !ok {
		return "", false
	}
	gen := suggest.NewGenerator(e.cfg.Suggest, res, e.learner.View(lang))
	cands := gen.Corrections(word, nil, 1)
	if len(cands) == 0 {
		return "", false
	}
	return cands[0].Text, true
}

// Confidence returns the score gap between a candidate correction and the
// typed original, the quantity the gate compares against RequiredConfidence.
func (e *Engine) Confidence(lang, original, candidate string) float64 {
	res, ok := e.store.Snapshot(lang)
	if !ok {
		return 0
	}
	gen := suggest.NewGenerator(e.cfg.Suggest, res, e.learner.View(lang))
	lower := strings.ToLower(candidate)
	candScore := gen.Ranker().Score(nil, lower, res.Frequency(lower), e.correctionCost(original, lower))
	return candScore - gen.WordScore(original, nil)
}

// RequiredConfidence returns the confidence bar for autocorrecting word;
// non-increasing as the word grows.
func (e *Engine) RequiredConfidence(word string) float64 {
	return e.gate.RequiredConfidence(word)
}

// Decide resolves a just-typed word at a word boundary: either the top
// candidate silently replaces it or it commits as typed. The committed word
// feeds the learner and the timing window rolls over to the next word.
func (e *Engine) Decide(lang, typed string, wordContext []string) (autocorrect.Decision, error) {
	res, ok := e.store.Snapshot(lang)
	if !ok {
		return autocorrect.Decision{Original: typed, Commit: typed}, ErrNotReady
	}
	gen := suggest.NewGenerator(e.cfg.Suggest, res, e.learner.View(lang))

	var best suggest.Suggestion
	if cands := gen.Corrections(typed, wordContext, 1); len(cands) > 0 {
		best = cands[0]
	}
	decision := e.gate.Decide(typed, best, gen.WordScore(typed, wordContext))
	e.timing.WordCommitted()

	commitLower := strings.ToLower(decision.Commit)
	e.learner.CommitWord(lang, decision.Commit, wordContext, res.Contains(commitLower))
	return decision, nil
}

// FallbackSuggestions returns context-driven next-word predictions used to
// fill a suggestion strip, excluding the given words.
func (e *Engine) FallbackSuggestions(lang string, wordContext []string, limit int, exclude ...string) ([]suggest.Suggestion, error) {
	res, ok := e.store.Snapshot(lang)
	if !ok {
		return nil, ErrNotReady
	}
	ranker := suggest.NewRanker(e.cfg.Suggest, res, e.learner.View(lang))
	return ranker.NextWords(wordContext, limit, exclude...), nil
}

// TopWords returns the globally most frequent words, minus exclusions.
func (e *Engine) TopWords(lang string, limit int, exclude ...string) ([]suggest.Suggestion, error) {
	res, ok := e.store.Snapshot(lang)
	if !ok {
		return nil, ErrNotReady
	}
	ranker := suggest.NewRanker(e.cfg.Suggest, res, e.learner.View(lang))
	return ranker.TopWords(limit, exclude...), nil
}

// CommitWord feeds a word committed outside Decide into the learner and rolls
// the timing window, for hosts where the user taps a suggestion directly.
func (e *Engine) CommitWord(lang, word string, wordContext []string) {
	e.timing.WordCommitted()
	res, ok := e.store.Snapshot(lang)
	inDict := ok && res.Contains(strings.ToLower(word))
	e.learner.CommitWord(lang, word, wordContext, inDict)
}

// LearnFromUser records that the user picked candidate over their own typed
// word, boosting the candidate and biasing the pair positively.
func (e *Engine) LearnFromUser(original, corrected, lang string) {
	e.learner.AcceptCorrection(lang, original, corrected)
}

// RejectCorrection records an undone autocorrection: the pair joins the
// blacklist and the original is learned as a valid word.
func (e *Engine) RejectCorrection(original, corrected, lang string) {
	e.learner.RejectCorrection(lang, original, corrected)
}

// RecordSwipeAcceptance boosts a gesture-typed word the user kept.
func (e *Engine) RecordSwipeAcceptance(lang, word string) {
	e.learner.RecordSwipeAcceptance(lang, word)
}

// RecordKeypress feeds the fast-typing detector; call once per keystroke.
func (e *Engine) RecordKeypress() { e.timing.RecordKeypress() }

// IsTypingFast reports whether the user is in a fast typing burst.
func (e *Engine) IsTypingFast() bool { return e.timing.IsTypingFast() }

// IsSpacePressedFast reports whether the word boundary follows the previous
// one suspiciously fast.
func (e *Engine) IsSpacePressedFast() bool { return e.timing.IsSpacePressedFast() }

// ClearTimingHistory resets the timing window, for field changes, language
// switches or long pauses.
func (e *Engine) ClearTimingHistory() { e.timing.Clear() }

// ClearBlacklist drops all rejected corrections, for a dictionary reset.
func (e *Engine) ClearBlacklist() { e.learner.ClearBlacklist() }

// SaveLearnerState serializes personalization state (learned words,
// blacklist, accepted pairs) for the host to persist.
func (e *Engine) SaveLearnerState() ([]byte, error) {
	return e.learner.Snapshot()
}

// LoadLearnerState restores personalization state saved earlier.
func (e *Engine) LoadLearnerState(data []byte) error {
	return e.learner.Restore(data)
}

// Stats reports per-language table sizes for diagnostics.
func (e *Engine) Stats() map[string]int {
	stats := make(map[string]int)
	for _, lang := range e.store.Languages() {
		if res, ok := e.store.Snapshot(lang); ok {
			stats["words_"+lang] = res.TotalWords
			stats["bigrams_"+lang] = res.Bigrams.Len()
			stats["trigrams_"+lang] = res.Trigrams.Len()
		}
	}
	return stats
}

// correctionCost is the edit penalty a candidate accrued relative to the
// typed original, mirroring the generator's fuzzy scoring.
func (e *Engine) correctionCost(original, candidate string) float64 {
	if strings.EqualFold(original, candidate) {
		return 0
	}
	return e.cfg.Suggest.EditPenalty
}
