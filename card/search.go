package card

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// cardSource adapts a card slice for fuzzy matching over the combined
// name, creator and description text.
type cardSource []Card

func (s cardSource) String(i int) string {
	return s[i].Name + " " + s[i].Creator + " " + s[i].Description
}

func (s cardSource) Len() int { return len(s) }

// Search fuzzy-matches the query against each card's name, creator and
// description, returning matching cards ranked best-first with their
// Relevance score populated. An empty query returns the input unchanged.
func Search(cards []Card, query string) []Card {
	query = strings.TrimSpace(query)
	if query == "" {
		return cards
	}

	matches := fuzzy.FindFrom(query, cardSource(cards))
	out := make([]Card, 0, len(matches))
	for _, m := range matches {
		c := cards[m.Index]
		c.Relevance = m.Score
		out = append(out, c)
	}
	return out
}
