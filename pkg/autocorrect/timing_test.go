package autocorrect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glidetype/glidetype/pkg/config"
)

func newClockedMonitor() (*Monitor, *fakeClock) {
	mon := NewMonitor(config.DefaultConfig().Timing)
	clock := newFakeClock()
	mon.SetClock(clock.Now)
	return mon, clock
}

func TestTypingFastNeedsFullWindow(t *testing.T) {
	mon, clock := newClockedMonitor()
	for i := 0; i < 3; i++ {
		mon.RecordKeypress()
		clock.Advance(20 * time.Millisecond)
	}
	assert.False(t, mon.IsTypingFast(), "a partial window never reads as fast")
}

func TestTypingFastStaleReset(t *testing.T) {
	mon, clock := newClockedMonitor()
	for i := 0; i < 5; i++ {
		mon.RecordKeypress()
		clock.Advance(20 * time.Millisecond)
	}
	assert.True(t, mon.IsTypingFast())

	// A long pause resets the window on the next keystroke.
	clock.Advance(10 * time.Second)
	mon.RecordKeypress()
	assert.False(t, mon.IsTypingFast())
}

func TestSpacePressedFast(t *testing.T) {
	mon, clock := newClockedMonitor()
	assert.False(t, mon.IsSpacePressedFast(), "no separator seen yet")

	mon.RecordSeparator()
	clock.Advance(100 * time.Millisecond)
	assert.True(t, mon.IsSpacePressedFast())

	clock.Advance(time.Second)
	assert.False(t, mon.IsSpacePressedFast())
}

func TestWordCommittedRollsOver(t *testing.T) {
	mon, clock := newClockedMonitor()
	for i := 0; i < 5; i++ {
		mon.RecordKeypress()
		clock.Advance(20 * time.Millisecond)
	}
	assert.True(t, mon.IsTypingFast())

	mon.WordCommitted()
	assert.False(t, mon.IsTypingFast(), "committing a word clears the keystroke window")
	assert.True(t, mon.IsSpacePressedFast(), "the commit stamps the separator boundary")
}

func TestClear(t *testing.T) {
	mon, clock := newClockedMonitor()
	mon.RecordSeparator()
	for i := 0; i < 5; i++ {
		mon.RecordKeypress()
		clock.Advance(20 * time.Millisecond)
	}
	mon.Clear()
	assert.False(t, mon.IsTypingFast())
	assert.False(t, mon.IsSpacePressedFast())
}

func TestWindowSizeFloor(t *testing.T) {
	cfg := config.DefaultConfig().Timing
	cfg.WindowSize = 0
	mon := NewMonitor(cfg)
	clock := newFakeClock()
	mon.SetClock(clock.Now)

	mon.RecordKeypress()
	clock.Advance(10 * time.Millisecond)
	mon.RecordKeypress()
	assert.True(t, mon.IsTypingFast(), "degenerate window size clamps to two keys")
}
