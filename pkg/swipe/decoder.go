package swipe

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/glidetype/glidetype/pkg/config"
	"github.com/glidetype/glidetype/pkg/resource"
	"github.com/glidetype/glidetype/pkg/suggest"
)

// Decoder converts sampled gesture paths into ranked word candidates.
// It holds no per-gesture state: every Decode call scores against the
// snapshot it was built over and nothing else.
type Decoder struct {
	cfg    config.SwipeConfig
	res    *resource.LanguageResources
	ranker *suggest.Ranker
}

// NewDecoder builds a decoder over one language snapshot using its key
// layout. ranker supplies frequency, context and learned-word scoring.
func NewDecoder(cfg config.SwipeConfig, res *resource.LanguageResources, ranker *suggest.Ranker) *Decoder {
	return &Decoder{cfg: cfg, res: res, ranker: ranker}
}

// Skeleton maps each sampled point to its nearest key and collapses
// immediately repeated characters, so a finger lingering on one key never
// duplicates letters.
func (d *Decoder) Skeleton(path Path) string {
	layout := d.res.Layout
	var sb strings.Builder
	var last rune
	for _, pt := range path {
		key, ok := layout.Nearest(pt.X, pt.Y)
		if !ok {
			continue
		}
		if key.Char == last && sb.Len() > 0 {
			continue
		}
		sb.WriteRune(key.Char)
		last = key.Char
		if sb.Len() >= d.cfg.MaxSkeletonLen {
			break
		}
	}
	return sb.String()
}

// Decode returns ranked candidates for a gesture. Paths with fewer than two
// points decode to nothing. When no dictionary word clears the score floor, a
// best-effort word built from row-based key regions is emitted instead, so a
// gesture always yields something visible.
func (d *Decoder) Decode(path Path, context []string, limit int) []suggest.Suggestion {
	if !path.Valid() {
		return nil
	}
	if limit <= 0 {
		limit = d.cfg.MaxResults
	}

	skeleton := d.Skeleton(path)
	if skeleton == "" {
		return nil
	}
	actualLen := path.Length()

	var candidates []suggest.Suggestion
	for word, freq := range d.res.Freqs {
		if len(word) < d.cfg.MinWordLength {
			continue
		}
		if word[0] != skeleton[0] {
			continue
		}
		collapsed := collapseRuns(word)

		match := 0.0
		if isSubsequence(collapsed, skeleton) {
			match = d.cfg.SubseqBonus
		} else {
			edits := matchr.OSA(collapsed, skeleton)
			if edits > d.cfg.MaxEdits {
				continue
			}
			match = -d.cfg.EditPenalty * float64(edits)
		}

		score := d.ranker.Score(context, word, freq, 0)
		score += match
		score += d.cfg.ShapeWeight * shapeRatio(d.idealLength(collapsed), actualLen)
		score -= d.cfg.LengthPenalty * absInt(len(collapsed)-len(skeleton))

		candidates = append(candidates, suggest.Suggestion{
			Text:      word,
			Score:     score,
			Frequency: int(freq),
			Source:    suggest.SourceSwipe,
		})
	}

	suggest.SortByScore(candidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if len(candidates) == 0 || candidates[0].Score < d.cfg.ScoreFloor {
		fallback := suggest.Suggestion{
			Text:   d.fallbackWord(path),
			Score:  d.cfg.ScoreFloor,
			Source: suggest.SourceSwipe,
		}
		candidates = append([]suggest.Suggestion{fallback}, candidates...)
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}
	}
	return candidates
}

// idealLength is the key-to-key travel distance a perfect trace of the word
// would cover. Words whose ideal travel diverges from the actual path length
// lose shape score: a short word never wins a long gesture.
func (d *Decoder) idealLength(collapsed string) float64 {
	layout := d.res.Layout
	total := 0.0
	runes := []rune(collapsed)
	for i := 1; i < len(runes); i++ {
		total += layout.Distance(runes[i-1], runes[i])
	}
	return total
}

// fallbackWord builds a letter sequence from crude row-based key regions with
// no dictionary lookup. Deterministic for a given path and layout.
func (d *Decoder) fallbackWord(path Path) string {
	layout := d.res.Layout
	var sb strings.Builder
	var last rune
	for _, pt := range path {
		ch, ok := layout.RowChar(pt.X, pt.Y)
		if !ok {
			continue
		}
		if ch == last && sb.Len() > 0 {
			continue
		}
		sb.WriteRune(ch)
		last = ch
		if sb.Len() >= d.cfg.MaxSkeletonLen {
			break
		}
	}
	return sb.String()
}

// shapeRatio maps (ideal, actual) travel lengths to [0,1]: 1 when they agree,
// shrinking as they diverge.
func shapeRatio(ideal, actual float64) float64 {
	if ideal == 0 && actual == 0 {
		return 1
	}
	if ideal == 0 || actual == 0 {
		return 0
	}
	if ideal < actual {
		return ideal / actual
	}
	return actual / ideal
}

// collapseRuns removes immediately repeated characters ("hello" -> "helo").
func collapseRuns(s string) string {
	var sb strings.Builder
	var last rune
	for i, r := range s {
		if i > 0 && r == last {
			continue
		}
		sb.WriteRune(r)
		last = r
	}
	return sb.String()
}

// isSubsequence reports whether every rune of sub appears in s in order.
func isSubsequence(sub, s string) bool {
	if sub == "" {
		return true
	}
	subRunes := []rune(sub)
	i := 0
	for _, r := range s {
		if r == subRunes[i] {
			i++
			if i == len(subRunes) {
				return true
			}
		}
	}
	return false
}

func absInt(n int) float64 {
	if n < 0 {
		n = -n
	}
	return float64(n)
}
