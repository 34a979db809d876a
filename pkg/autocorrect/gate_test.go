package autocorrect

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glidetype/glidetype/pkg/config"
	"github.com/glidetype/glidetype/pkg/suggest"
)

type stubRejections map[[2]string]bool

func (s stubRejections) IsRejected(original, corrected string) bool {
	return s[[2]string{original, corrected}]
}

func candidate(word string, score float64) suggest.Suggestion {
	return suggest.Suggestion{Text: word, Score: score, Source: suggest.SourceTyping}
}

func TestRequiredConfidenceShortWords(t *testing.T) {
	gate := NewGate(config.DefaultConfig().Autocorrect, nil, nil)
	assert.True(t, math.IsInf(gate.RequiredConfidence("to"), 1))
	assert.True(t, math.IsInf(gate.RequiredConfidence("a"), 1))
	assert.False(t, math.IsInf(gate.RequiredConfidence("the"), 1))
}

func TestRequiredConfidenceMonotone(t *testing.T) {
	gate := NewGate(config.DefaultConfig().Autocorrect, nil, nil)
	words := []string{"the", "that", "there", "theres", "thereby", "therefore", "thereabouts"}
	prev := gate.RequiredConfidence(words[0])
	for _, w := range words[1:] {
		cur := gate.RequiredConfidence(w)
		assert.LessOrEqual(t, cur, prev, "longer word %q may not demand more confidence", w)
		prev = cur
	}
}

func TestRequiredConfidenceFloor(t *testing.T) {
	cfg := config.DefaultConfig().Autocorrect
	gate := NewGate(cfg, nil, nil)
	assert.Equal(t, cfg.RequiredFloor, gate.RequiredConfidence("incomprehensible"))
}

func TestDecideCommitsConfidentCorrection(t *testing.T) {
	gate := NewGate(config.DefaultConfig().Autocorrect, nil, nil)

	d := gate.Decide("teh", candidate("the", 4.0), 0)
	assert.True(t, d.Corrected)
	assert.Equal(t, "the", d.Commit)
	assert.Equal(t, "teh", d.Original)
	assert.InDelta(t, 4.0, d.Confidence, 1e-9)
}

func TestDecideKeepsWordBelowThreshold(t *testing.T) {
	gate := NewGate(config.DefaultConfig().Autocorrect, nil, nil)

	d := gate.Decide("teh", candidate("the", 2.0), 0)
	assert.False(t, d.Corrected)
	assert.Equal(t, "teh", d.Commit)
}

func TestDecideNeverCorrectsShortWords(t *testing.T) {
	gate := NewGate(config.DefaultConfig().Autocorrect, nil, nil)

	d := gate.Decide("ot", candidate("to", 100.0), 0)
	assert.False(t, d.Corrected)
	assert.Equal(t, "ot", d.Commit)
}

func TestDecideNoCandidate(t *testing.T) {
	gate := NewGate(config.DefaultConfig().Autocorrect, nil, nil)

	d := gate.Decide("xyzzy", suggest.Suggestion{}, 0)
	assert.False(t, d.Corrected)
	assert.Equal(t, "xyzzy", d.Commit)
}

func TestDecideCandidateEqualsOriginal(t *testing.T) {
	gate := NewGate(config.DefaultConfig().Autocorrect, nil, nil)

	d := gate.Decide("The", candidate("the", 50.0), 0)
	assert.False(t, d.Corrected, "case-only differences never trigger a correction")
}

func TestDecideHonorsRejections(t *testing.T) {
	rej := stubRejections{{"teh", "the"}: true}
	gate := NewGate(config.DefaultConfig().Autocorrect, nil, rej)

	d := gate.Decide("teh", candidate("the", 50.0), 0)
	assert.False(t, d.Corrected)
	assert.Equal(t, "teh", d.Commit)
}

func TestDecideSuppressedWhileTypingFast(t *testing.T) {
	cfg := config.DefaultConfig()
	mon := NewMonitor(cfg.Timing)
	clock := newFakeClock()
	mon.SetClock(clock.Now)

	// Five keystrokes 50ms apart: well under the fast threshold.
	for i := 0; i < cfg.Timing.WindowSize; i++ {
		mon.RecordKeypress()
		clock.Advance(50 * time.Millisecond)
	}
	require.True(t, mon.IsTypingFast())

	gate := NewGate(cfg.Autocorrect, mon, nil)
	d := gate.Decide("teh", candidate("the", 50.0), 0)
	assert.False(t, d.Corrected, "fast typing defers the correction")

	// Slow down and the same decision flips.
	clock.Advance(5 * time.Second)
	for i := 0; i < cfg.Timing.WindowSize; i++ {
		mon.RecordKeypress()
		clock.Advance(400 * time.Millisecond)
	}
	require.False(t, mon.IsTypingFast())
	d = gate.Decide("teh", candidate("the", 50.0), 0)
	assert.True(t, d.Corrected)
}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
