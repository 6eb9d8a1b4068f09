package card

import (
	"sort"
	"strings"
)

// Local sort tokens applied in-process. Anything else is treated as an
// API-level token that the source already honoured, so Sort passes the
// input through untouched.
const (
	SortNameAsc     = "name_asc"
	SortNameDesc    = "name_desc"
	SortCreatorAsc  = "creator_asc"
	SortCreatorDesc = "creator_desc"
	SortRelevance   = "relevance"
)

// APISortTokens are the source-side orderings recognised by the Chub
// API. They are forwarded verbatim and never applied locally.
var APISortTokens = []string{
	"recent", "trending", "rating", "stars", "downloads",
	"favorites", "newcomer", "activity", "default",
}

// IsLocalSort reports whether the token is applied in-process.
func IsLocalSort(token string) bool {
	switch token {
	case SortNameAsc, SortNameDesc, SortCreatorAsc, SortCreatorDesc, SortRelevance:
		return true
	}
	return false
}

// Sort orders cards by the given token. Local tokens stable-sort a copy
// and the input slice is never mutated; API-level tokens (and anything
// unrecognised) return the input unchanged.
func Sort(cards []Card, token string) []Card {
	if !IsLocalSort(token) {
		return cards
	}

	out := make([]Card, len(cards))
	copy(out, cards)

	switch token {
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return lessFold(out[i].Name, out[j].Name)
		})
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return lessFold(out[j].Name, out[i].Name)
		})
	case SortCreatorAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return lessFold(out[i].Creator, out[j].Creator)
		})
	case SortCreatorDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return lessFold(out[j].Creator, out[i].Creator)
		})
	case SortRelevance:
		// Highest fuzzy score first. Cards that never went through
		// Search all carry zero and keep their order.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Relevance > out[j].Relevance
		})
	}

	return out
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
