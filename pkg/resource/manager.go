package resource

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Manager orchestrates asynchronous load, unload and switch of languages in a
// Store. Loading never blocks suggestion queries: each language is compiled
// off to the side and swapped in atomically when ready.
type Manager struct {
	store    *Store
	dir      string
	maxWords int
}

// NewManager creates a manager loading bundles from dir into store.
func NewManager(store *Store, dir string, maxWords int) *Manager {
	return &Manager{store: store, dir: dir, maxWords: maxWords}
}

// Preload loads the given languages concurrently and waits for all of them.
// A language that fails to load is left absent (or in its previous state) and
// reported in the joined error; the others still come up.
func (m *Manager) Preload(ctx context.Context, langs []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, lang := range langs {
		lang := lang
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := m.load(lang); err != nil {
				log.Warnf("Preload of %q failed: %v", lang, err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// PreloadAll discovers every language in the resource directory and loads
// them concurrently.
func (m *Manager) PreloadAll(ctx context.Context) error {
	langs, err := DiscoverLanguages(m.dir)
	if err != nil {
		return err
	}
	if len(langs) == 0 {
		return fmt.Errorf("no language resources found in %s", m.dir)
	}
	return m.Preload(ctx, langs)
}

// PreloadAsync starts a background load of the given languages and returns a
// channel that yields the final error once, for callers that would rather
// poll Has() than wait.
func (m *Manager) PreloadAsync(ctx context.Context, langs []string) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- m.Preload(ctx, langs)
	}()
	return done
}

// Has reports whether lang is fully loaded and queryable.
func (m *Manager) Has(lang string) bool {
	return m.store.Has(lang)
}

func (m *Manager) load(lang string) error {
	bundle, err := LoadBundle(m.dir, lang, m.maxWords)
	if err != nil {
		return err
	}
	return m.store.SetLanguage(lang, bundle)
}
