package suggest

import (
	"math"
	"strings"

	"github.com/glidetype/glidetype/internal/utils"
	"github.com/glidetype/glidetype/pkg/config"
	"github.com/glidetype/glidetype/pkg/resource"
)

// Ranker re-scores candidates with bigram/trigram context from the last one
// or two committed words and produces pure next-word predictions when no
// prefix is typed. Context counts are weighted above raw frequency so a
// strong n-gram hit outranks a merely common word.
type Ranker struct {
	cfg      config.SuggestConfig
	res      *resource.LanguageResources
	personal Personal
}

// NewRanker builds a ranker over one language snapshot. personal may be nil.
func NewRanker(cfg config.SuggestConfig, res *resource.LanguageResources, personal Personal) *Ranker {
	return &Ranker{cfg: cfg, res: res, personal: personal}
}

// Score computes the ranking score for a lowercase candidate word given the
// last committed words. editCost is the penalty already accrued by the
// candidate's generation path (0 for exact prefix matches).
func (r *Ranker) Score(context []string, word string, freq uint32, editCost float64) float64 {
	score := r.cfg.UnigramWeight*math.Log1p(float64(freq)) - editCost
	score += r.boost(word)

	context = lastN(context, 2)
	if len(context) >= 1 {
		prev := context[len(context)-1]
		if bi := r.bigramCount(prev, word); bi > 0 {
			score += r.cfg.BigramWeight * math.Log1p(float64(bi))
		}
	}
	if len(context) >= 2 {
		if tri := r.trigramCount(context[len(context)-2], context[len(context)-1], word); tri > 0 {
			score += r.cfg.TrigramWeight * math.Log1p(float64(tri))
		}
	}
	return score
}

// NextWords predicts the most likely following words for a context with no
// typed prefix. Candidates come from the trigram and bigram successor rows;
// an empty or unseen context falls back to the global top-frequency words.
func (r *Ranker) NextWords(context []string, limit int, exclude ...string) []Suggestion {
	context = lastN(context, 2)
	if limit <= 0 {
		limit = r.cfg.MaxResults
	}

	candidates := make(map[string]bool)
	if len(context) >= 2 {
		for next := range r.res.Trigrams.Successors(context) {
			candidates[next] = true
		}
	}
	if len(context) >= 1 {
		prev := lastN(context, 1)
		for next := range r.res.Bigrams.Successors(prev) {
			candidates[next] = true
		}
	}
	if len(candidates) == 0 {
		return r.TopWords(limit, exclude...)
	}

	filter := utils.NewSuggestionFilter(exclude...)
	suggestions := make([]Suggestion, 0, len(candidates))
	for word := range candidates {
		if !filter.ShouldInclude(word) {
			continue
		}
		freq := r.res.Frequency(word)
		suggestions = append(suggestions, Suggestion{
			Text:      word,
			Score:     r.Score(context, word, freq, 0),
			Frequency: int(freq),
			Source:    SourceNextWord,
		})
	}
	SortByScore(suggestions)
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// TopWords returns the globally most frequent words, minus exclusions. This
// is the empty-context fallback and the caller-facing filler for suggestion
// strips that came up short.
func (r *Ranker) TopWords(limit int, exclude ...string) []Suggestion {
	if limit <= 0 {
		limit = r.cfg.MaxResults
	}
	filter := utils.NewSuggestionFilter(exclude...)
	suggestions := make([]Suggestion, 0, limit*2)
	for word, freq := range r.res.Freqs {
		suggestions = append(suggestions, Suggestion{
			Text:      word,
			Score:     r.cfg.UnigramWeight*math.Log1p(float64(freq)) + r.boost(word),
			Frequency: int(freq),
			Source:    SourceNextWord,
		})
	}
	SortByScore(suggestions)
	out := suggestions[:0]
	for _, s := range suggestions {
		if !filter.ShouldInclude(s.Text) {
			continue
		}
		out = append(out, s)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func (r *Ranker) boost(word string) float64 {
	if r.personal == nil {
		return 0
	}
	return r.personal.Boost(word)
}

func (r *Ranker) bigramCount(prev, word string) uint32 {
	count := r.res.Bigrams.Count([]string{prev}, word)
	if r.personal != nil {
		count += r.personal.NGramCount([]string{prev}, word)
	}
	return count
}

func (r *Ranker) trigramCount(prev2, prev1, word string) uint32 {
	count := r.res.Trigrams.Count([]string{prev2, prev1}, word)
	if r.personal != nil {
		count += r.personal.NGramCount([]string{prev2, prev1}, word)
	}
	return count
}

// lastN returns the trailing n elements of context, lowercased.
func lastN(context []string, n int) []string {
	if len(context) > n {
		context = context[len(context)-n:]
	}
	out := make([]string, len(context))
	for i, w := range context {
		out[i] = strings.ToLower(w)
	}
	return out
}
