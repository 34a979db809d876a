package suggest

import (
	"errors"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/glidetype/glidetype/internal/utils"
	"github.com/glidetype/glidetype/pkg/config"
	"github.com/glidetype/glidetype/pkg/resource"
)

// errStopVisit aborts a subtree visit once enough candidates are collected,
// keeping per-call time bounded on very short prefixes.
var errStopVisit = errors.New("stop visit")

// maxPrefixHits caps how many raw trie hits one query collects before
// ranking. Ranking still sees far more than any suggestion strip shows.
const maxPrefixHits = 256

// Generator produces typing candidates for a partially typed word: exact
// prefix matches first, then single-edit fuzzy matches when the prefix pass
// comes up short. Matching is case-insensitive; the typed token's case
// pattern is reapplied to the ranked output.
type Generator struct {
	cfg    config.SuggestConfig
	res    *resource.LanguageResources
	ranker *Ranker
}

// NewGenerator builds a generator over one language snapshot. personal may be
// nil when no learner state applies.
func NewGenerator(cfg config.SuggestConfig, res *resource.LanguageResources, personal Personal) *Generator {
	return &Generator{
		cfg:    cfg,
		res:    res,
		ranker: NewRanker(cfg, res, personal),
	}
}

// Ranker exposes the generator's context ranker for next-word queries.
func (g *Generator) Ranker() *Ranker {
	return g.ranker
}

// Suggest returns ranked candidates for a typed prefix and the last committed
// words. An empty prefix delegates to pure next-word prediction. Single-letter
// prefixes are served normally; autocorrect has its own length floor.
func (g *Generator) Suggest(prefix string, context []string, limit int) []Suggestion {
	if limit <= 0 {
		limit = g.cfg.MaxResults
	}
	if prefix == "" {
		return g.ranker.NextWords(context, limit)
	}
	if len(prefix) > g.cfg.MaxPrefixLen {
		return nil
	}

	lower := strings.ToLower(prefix)
	pattern := utils.CasePatternOf(prefix)
	filter := utils.NewSuggestionFilter(lower)

	var suggestions []Suggestion
	if exp, ok := g.res.Expansion(lower); ok {
		suggestions = append(suggestions, Suggestion{
			Text:   exp,
			Score:  0,
			Source: SourceShortcut,
		})
	}

	matched := g.prefixMatches(lower)
	if len(matched) < g.cfg.FuzzyTarget && len(lower) >= 2 {
		g.fuzzyMatches(lower, matched)
	}

	ranked := make([]Suggestion, 0, len(matched))
	for word, editCost := range matched {
		ranked = append(ranked, Suggestion{
			Text:      word,
			Score:     g.ranker.Score(context, word, g.res.Frequency(word), editCost),
			Frequency: int(g.res.Frequency(word)),
			Source:    SourceTyping,
		})
	}
	SortByScore(ranked)

	for _, s := range ranked {
		if !filter.ShouldInclude(s.Text) {
			continue
		}
		s.Text = pattern.Apply(s.Text)
		suggestions = append(suggestions, s)
		if len(suggestions) >= limit {
			break
		}
	}
	return suggestions
}

// Corrections returns candidate replacements for a fully typed word, ranked
// by context score minus edit cost. The typed word itself is excluded; this
// is the feed for the confidence gate and get-best-suggestion.
func (g *Generator) Corrections(word string, context []string, limit int) []Suggestion {
	lower := strings.ToLower(word)
	if lower == "" {
		return nil
	}
	if limit <= 0 {
		limit = g.cfg.MaxResults
	}

	candidates := make(map[string]float64)
	g.fuzzyMatches(lower, candidates)
	delete(candidates, lower)

	ranked := make([]Suggestion, 0, len(candidates))
	for cand, editCost := range candidates {
		ranked = append(ranked, Suggestion{
			Text:      cand,
			Score:     g.ranker.Score(context, cand, g.res.Frequency(cand), editCost),
			Frequency: int(g.res.Frequency(cand)),
			Source:    SourceTyping,
		})
	}
	SortByScore(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// WordScore returns the typed word's own standing in the ranking: its context
// score when it is a dictionary or learned word, 0 otherwise. The confidence
// gate measures candidates against this.
func (g *Generator) WordScore(word string, context []string) float64 {
	lower := strings.ToLower(word)
	freq := g.res.Frequency(lower)
	if freq == 0 && g.ranker.boost(lower) == 0 {
		return 0
	}
	return g.ranker.Score(context, lower, freq, 0)
}

// prefixMatches collects subtree hits under the lowercase prefix with zero
// edit cost.
func (g *Generator) prefixMatches(lower string) map[string]float64 {
	matched := make(map[string]float64)
	err := g.res.Trie.VisitSubtree(patricia.Prefix(lower), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == lower {
			return nil
		}
		matched[word] = 0
		if len(matched) >= maxPrefixHits {
			return errStopVisit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		return matched
	}
	return matched
}

// fuzzyMatches adds words within one optimal-string-alignment edit (insert,
// delete, substitute or adjacent transposition) of the token, filtered to
// roughly the same length. Existing prefix hits keep their zero cost.
func (g *Generator) fuzzyMatches(lower string, matched map[string]float64) {
	tokenLen := len(lower)
	for word := range g.res.Freqs {
		if _, ok := matched[word]; ok {
			continue
		}
		diff := len(word) - tokenLen
		if diff < -1 || diff > 1 {
			continue
		}
		if matchr.OSA(lower, word) == 1 {
			matched[word] = g.cfg.EditPenalty
		}
	}
}
