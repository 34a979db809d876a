package learn

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// The engine exposes load/save hooks for personalization but performs no I/O
// of its own: the host decides where (and whether) snapshots live.

type snapshotPair struct {
	Original  string `msgpack:"o"`
	Corrected string `msgpack:"c"`
}

type snapshot struct {
	Words     map[string]map[string]uint32 `msgpack:"words"`
	Blacklist []snapshotPair               `msgpack:"blacklist"`
	Preferred []snapshotPair               `msgpack:"preferred"`
}

// Snapshot serializes the durable adaptive state (learned words, blacklist,
// accepted-pair bias) as msgpack. The session n-gram overlay is deliberately
// not included; it describes one typing session, not the user.
func (l *Learner) Snapshot() ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := snapshot{Words: make(map[string]map[string]uint32, len(l.langs))}
	for lang, state := range l.langs {
		if len(state.words) == 0 {
			continue
		}
		words := make(map[string]uint32, len(state.words))
		for w, c := range state.words {
			words[w] = c
		}
		snap.Words[lang] = words
	}
	for pair := range l.blacklist {
		snap.Blacklist = append(snap.Blacklist, snapshotPair{pair.original, pair.corrected})
	}
	for pair := range l.preferred {
		snap.Preferred = append(snap.Preferred, snapshotPair{pair.original, pair.corrected})
	}
	return msgpack.Marshal(&snap)
}

// Restore replaces the durable adaptive state from a msgpack snapshot. A
// snapshot that fails to decode leaves the current state untouched.
func (l *Learner) Restore(data []byte) error {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode learner snapshot: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.langs = make(map[string]*langState, len(snap.Words))
	l.blacklist = make(map[pairKey]struct{}, len(snap.Blacklist))
	l.preferred = make(map[pairKey]struct{}, len(snap.Preferred))
	for lang, words := range snap.Words {
		state := l.lang(lang)
		for w, c := range words {
			state.words[w] = c
		}
	}
	for _, pair := range snap.Blacklist {
		l.blacklist[pairKey{pair.Original, pair.Corrected}] = struct{}{}
	}
	for _, pair := range snap.Preferred {
		l.preferred[pairKey{pair.Original, pair.Corrected}] = struct{}{}
	}
	return nil
}
