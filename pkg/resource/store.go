package resource

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Store owns the active LanguageResources per language code. Replacing a
// language is an atomic pointer swap: queries in flight against the previous
// snapshot finish against that snapshot, new queries see the new one. The
// mutex only guards the language map itself, never a query.
type Store struct {
	mu    sync.RWMutex
	langs map[string]*atomic.Pointer[LanguageResources]
}

// NewStore creates an empty resource store.
func NewStore() *Store {
	return &Store{langs: make(map[string]*atomic.Pointer[LanguageResources])}
}

// SetLanguage compiles a bundle and swaps it in for lang. On compile failure
// the language keeps its previous state (or stays absent) and the error is
// returned; nothing is torn down.
func (s *Store) SetLanguage(lang string, bundle *Bundle) error {
	res, err := Compile(lang, bundle)
	if err != nil {
		log.Warnf("Rejecting resource bundle for %q: %v", lang, err)
		return err
	}
	s.slot(lang).Store(res)
	log.Debugf("Language %q loaded: %d words, %d bigram contexts, %d trigram contexts",
		lang, res.TotalWords, res.Bigrams.Len(), res.Trigrams.Len())
	return nil
}

// Snapshot returns the current resource snapshot for lang. Absent or
// still-loading languages return false; callers treat that as a normal,
// retryable condition.
func (s *Store) Snapshot(lang string) (*LanguageResources, bool) {
	s.mu.RLock()
	slot, ok := s.langs[lang]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	res := slot.Load()
	if res == nil {
		return nil, false
	}
	return res, true
}

// Has reports whether lang has a fully loaded snapshot.
func (s *Store) Has(lang string) bool {
	_, ok := s.Snapshot(lang)
	return ok
}

// Remove evicts a language. In-flight queries holding its snapshot keep it
// alive until they finish.
func (s *Store) Remove(lang string) {
	s.mu.Lock()
	delete(s.langs, lang)
	s.mu.Unlock()
}

// Clear evicts every language.
func (s *Store) Clear() {
	s.mu.Lock()
	s.langs = make(map[string]*atomic.Pointer[LanguageResources])
	s.mu.Unlock()
}

// Languages returns the codes that currently have a loaded snapshot.
func (s *Store) Languages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	langs := make([]string, 0, len(s.langs))
	for lang, slot := range s.langs {
		if slot.Load() != nil {
			langs = append(langs, lang)
		}
	}
	return langs
}

func (s *Store) slot(lang string) *atomic.Pointer[LanguageResources] {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.langs[lang]
	if !ok {
		slot = &atomic.Pointer[LanguageResources]{}
		s.langs[lang] = slot
	}
	return slot
}
