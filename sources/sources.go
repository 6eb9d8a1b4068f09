// Package sources provides pluggable card catalog adapters for
// third-party community sites, plus an aggregator that fetches and
// merges all of them.
package sources

import (
	"context"
	"sync"

	"botbrowser/card"
)

// Query carries the listing parameters forwarded to each source.
// Sources that don't understand a field ignore it.
type Query struct {
	Search string // free-text search term
	Sort   string // API-level sort token, forwarded untouched
	First  int    // page size
	Cursor string // pagination cursor (Chub-style)
	NSFW   bool   // ask the source to include adult-flagged cards
}

// Source defines the interface for card catalog adapters.
type Source interface {
	// Name returns the source's short identifier (also used as the
	// card Service field).
	Name() string

	// Fetch retrieves a page of cards matching the query.
	Fetch(ctx context.Context, q Query) ([]card.Card, error)
}

var (
	registry []Source
	mu       sync.RWMutex
)

// Register adds a source to the registry. Sources are fetched in
// registration order.
func Register(s Source) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, s)
}

// All returns the registered sources in registration order.
func All() []Source {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Source, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the registered source with the given name, or nil.
func Lookup(name string) Source {
	mu.RLock()
	defer mu.RUnlock()
	for _, s := range registry {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// Reset clears the registry (for testing).
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = nil
}
