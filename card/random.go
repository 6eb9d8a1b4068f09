package card

import "math/rand"

// Random picks a uniformly random card from the candidate set.
// Returns nil when there are no candidates.
func Random(cards []Card) *Card {
	if len(cards) == 0 {
		return nil
	}
	c := cards[rand.Intn(len(cards))]
	return &c
}
