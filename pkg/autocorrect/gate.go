package autocorrect

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/glidetype/glidetype/pkg/config"
	"github.com/glidetype/glidetype/pkg/suggest"
)

// Rejections is consulted before committing a correction: pairs the user has
// explicitly rejected must never be auto-applied again.
type Rejections interface {
	IsRejected(original, corrected string) bool
}

// Decision is the outcome for one pending word at a separator. Commit is the
// text the caller should emit; Corrected reports whether it differs from what
// was typed.
type Decision struct {
	Original   string
	Candidate  string
	Commit     string
	Corrected  bool
	Confidence float64
	Required   float64
}

// Gate is the per-word commit policy. It is re-entrant: no state is carried
// between words beyond the engine-scoped rejection set and timing monitor.
type Gate struct {
	cfg        config.AutocorrectConfig
	timing     *Monitor
	rejections Rejections
}

// NewGate builds a confidence gate. rejections may be nil.
func NewGate(cfg config.AutocorrectConfig, timing *Monitor, rejections Rejections) *Gate {
	return &Gate{cfg: cfg, timing: timing, rejections: rejections}
}

// RequiredConfidence returns the confidence bar a correction of word must
// clear. Shorter words demand strictly more confidence; words below the
// minimum length can never be corrected at all.
func (g *Gate) RequiredConfidence(word string) float64 {
	length := utf8.RuneCountInString(word)
	if length < g.cfg.MinWordLength {
		return math.Inf(1)
	}
	required := g.cfg.RequiredBase - g.cfg.RequiredStep*float64(length-g.cfg.MinWordLength)
	if required < g.cfg.RequiredFloor {
		required = g.cfg.RequiredFloor
	}
	return required
}

// Decide resolves a pending word at a separator. best is the top correction
// candidate (zero value when none exists) and originalScore is the typed
// word's own ranking score. The original is committed as typed unless the
// candidate clears every rejection rule and the confidence bar.
func (g *Gate) Decide(original string, best suggest.Suggestion, originalScore float64) Decision {
	decision := Decision{
		Original:  original,
		Candidate: best.Text,
		Commit:    original,
		Required:  g.RequiredConfidence(original),
	}
	if best.Text == "" || strings.EqualFold(best.Text, original) {
		return decision
	}
	decision.Confidence = best.Score - originalScore

	if utf8.RuneCountInString(original) < g.cfg.MinWordLength {
		return decision
	}
	if g.rejections != nil && g.rejections.IsRejected(original, best.Text) {
		return decision
	}
	if g.timing != nil && (g.timing.IsTypingFast() || g.timing.IsSpacePressedFast()) {
		return decision
	}
	if decision.Confidence < decision.Required {
		return decision
	}

	decision.Commit = best.Text
	decision.Corrected = true
	return decision
}
