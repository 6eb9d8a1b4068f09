package card

import "testing"

func TestSearchRanksNameMatchFirst(t *testing.T) {
	cards := []Card{
		{Name: "Space Cat", Creator: "alice", Description: "a cat in space"},
		{Name: "Aqua Knight", Creator: "spacecat-fan", Description: "a sea knight"},
		{Name: "Gentle Healer", Creator: "carol", Description: "heals the party"},
	}

	out := Search(cards, "space cat")
	if len(out) == 0 {
		t.Fatal("expected matches")
	}
	if out[0].Name != "Space Cat" {
		t.Errorf("expected Space Cat first, got %q", out[0].Name)
	}
	if out[0].Relevance == 0 {
		t.Error("expected relevance score to be populated")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	cards := []Card{{Name: "b"}, {Name: "a"}}

	out := Search(cards, "   ")
	if len(out) != 2 || out[0].Name != "b" {
		t.Errorf("empty query should return input unchanged, got %v", names(out))
	}
}

func TestSearchNoMatch(t *testing.T) {
	cards := []Card{{Name: "Aqua Knight", Creator: "alice", Description: "a sea knight"}}

	out := Search(cards, "zzzzqqqq")
	if len(out) != 0 {
		t.Errorf("expected no matches, got %v", names(out))
	}
}

func TestSearchDoesNotMutate(t *testing.T) {
	cards := []Card{{Name: "Aqua Knight"}}
	Search(cards, "aqua")
	if cards[0].Relevance != 0 {
		t.Error("input card relevance was mutated")
	}
}
