// Package autocorrect decides whether the top candidate should silently
// replace a just-typed word. The confidence gate applies a length-dependent
// threshold; the timing monitor supplies the fast-typing signal that
// suppresses correction so a burst of typing is never disrupted.
package autocorrect

import (
	"sync"
	"time"

	"github.com/glidetype/glidetype/pkg/config"
)

// Monitor tracks inter-keystroke and pre-separator intervals. Writes come
// from the typing path only; reads are snapshot reads under the same small
// lock, held for nanoseconds, never across a query.
type Monitor struct {
	cfg config.TimingConfig
	now func() time.Time

	mu            sync.Mutex
	keys          []time.Time
	lastSeparator time.Time
}

// NewMonitor creates a timing monitor with the given thresholds.
func NewMonitor(cfg config.TimingConfig) *Monitor {
	if cfg.WindowSize <= 1 {
		cfg.WindowSize = 2
	}
	return &Monitor{cfg: cfg, now: time.Now}
}

// SetClock replaces the time source, for tests.
func (m *Monitor) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// RecordKeypress appends a keystroke timestamp to the rolling window. A pause
// longer than the stale threshold resets the window first, so an old burst
// never classifies a fresh one.
func (m *Monitor) RecordKeypress() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if n := len(m.keys); n > 0 {
		if now.Sub(m.keys[n-1]) > time.Duration(m.cfg.StaleResetMillis)*time.Millisecond {
			m.keys = m.keys[:0]
		}
	}
	m.keys = append(m.keys, now)
	if len(m.keys) > m.cfg.WindowSize {
		m.keys = m.keys[len(m.keys)-m.cfg.WindowSize:]
	}
}

// RecordSeparator notes a word-ending separator press.
func (m *Monitor) RecordSeparator() {
	m.mu.Lock()
	m.lastSeparator = m.now()
	m.mu.Unlock()
}

// WordCommitted rolls the monitor over to the next word: the keystroke
// window is cleared and the separator timestamp is taken, in that order, so
// the next word's rushed-space check measures from this boundary.
func (m *Monitor) WordCommitted() {
	m.mu.Lock()
	m.keys = m.keys[:0]
	m.lastSeparator = m.now()
	m.mu.Unlock()
}

// IsTypingFast reports whether the rolling mean inter-key interval over a
// full window is below the fast threshold.
func (m *Monitor) IsTypingFast() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.keys) < m.cfg.WindowSize {
		return false
	}
	span := m.keys[len(m.keys)-1].Sub(m.keys[0])
	mean := span / time.Duration(len(m.keys)-1)
	return mean < time.Duration(m.cfg.FastKeyMillis)*time.Millisecond
}

// IsSpacePressedFast reports whether the current moment follows the previous
// word-ending separator faster than the rushed-space threshold.
func (m *Monitor) IsSpacePressedFast() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastSeparator.IsZero() {
		return false
	}
	return m.now().Sub(m.lastSeparator) < time.Duration(m.cfg.FastSpaceMillis)*time.Millisecond
}

// Clear resets the rolling window and separator state. Called on language
// switch, field change or long pauses so stale timing never colors a new
// typing burst.
func (m *Monitor) Clear() {
	m.mu.Lock()
	m.keys = m.keys[:0]
	m.lastSeparator = time.Time{}
	m.mu.Unlock()
}
