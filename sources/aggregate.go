package sources

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"botbrowser/card"
)

// Aggregator fetches from every configured source and merges the
// results into one deduplicated listing.
type Aggregator struct {
	sources     []Source
	concurrency int
}

// NewAggregator creates an aggregator over the given sources. When none
// are given it uses the package registry.
func NewAggregator(srcs ...Source) *Aggregator {
	if len(srcs) == 0 {
		srcs = All()
	}
	return &Aggregator{
		sources:     srcs,
		concurrency: 3, // max concurrent fetches
	}
}

// SetConcurrency bounds the number of in-flight source fetches.
func (a *Aggregator) SetConcurrency(n int) {
	if n > 0 {
		a.concurrency = n
	}
}

// FetchAll queries every source, concatenates results in source order
// and deduplicates them (first occurrence wins, so earlier sources take
// priority). A failing source is logged and recorded in the returned
// error map without aborting the merge.
func (a *Aggregator) FetchAll(ctx context.Context, q Query) ([]card.Card, map[string]error) {
	results := make([][]card.Card, len(a.sources))
	errs := make(map[string]error)

	sem := make(chan struct{}, a.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				mu.Lock()
				errs[src.Name()] = ctx.Err()
				mu.Unlock()
				return
			default:
			}

			cards, err := src.Fetch(ctx, q)
			if err != nil {
				log.Warn().Str("source", src.Name()).Err(err).Msg("source fetch failed")
				mu.Lock()
				errs[src.Name()] = err
				mu.Unlock()
				return
			}
			results[i] = cards
		}(i, src)
	}

	wg.Wait()

	var merged []card.Card
	for _, cards := range results {
		for _, c := range cards {
			merged = append(merged, card.Normalize(c))
		}
	}

	return card.Deduplicate(merged), errs
}
