package card

import "testing"

func TestSortNameAsc(t *testing.T) {
	cards := []Card{
		{Name: "zeta"},
		{Name: "Alpha"},
		{Name: "mid"},
	}

	out := Sort(cards, SortNameAsc)
	if out[0].Name != "Alpha" || out[1].Name != "mid" || out[2].Name != "zeta" {
		t.Errorf("wrong order: %v", names(out))
	}
	// Input must not be mutated.
	if cards[0].Name != "zeta" {
		t.Errorf("input slice was mutated: %v", names(cards))
	}
}

func TestSortNameDesc(t *testing.T) {
	out := Sort([]Card{{Name: "a"}, {Name: "c"}, {Name: "b"}}, SortNameDesc)
	if out[0].Name != "c" || out[2].Name != "a" {
		t.Errorf("wrong order: %v", names(out))
	}
}

func TestSortCreator(t *testing.T) {
	cards := []Card{
		{Name: "1", Creator: "zoe"},
		{Name: "2", Creator: "Amy"},
	}

	out := Sort(cards, SortCreatorAsc)
	if out[0].Creator != "Amy" {
		t.Errorf("creator_asc wrong order: %v", out)
	}
	out = Sort(cards, SortCreatorDesc)
	if out[0].Creator != "zoe" {
		t.Errorf("creator_desc wrong order: %v", out)
	}
}

func TestSortStable(t *testing.T) {
	// Equal names keep their relative order.
	cards := []Card{
		{Name: "same", Creator: "first"},
		{Name: "same", Creator: "second"},
		{Name: "same", Creator: "third"},
	}

	out := Sort(cards, SortNameAsc)
	if out[0].Creator != "first" || out[1].Creator != "second" || out[2].Creator != "third" {
		t.Errorf("sort not stable: %v", out)
	}
}

func TestSortAPITokenPassthrough(t *testing.T) {
	cards := []Card{{Name: "b"}, {Name: "a"}}

	for _, token := range APISortTokens {
		out := Sort(cards, token)
		if len(out) != 2 || out[0].Name != "b" || out[1].Name != "a" {
			t.Errorf("token %q should return input unchanged, got %v", token, names(out))
		}
	}

	// Unrecognised tokens behave like API tokens.
	out := Sort(cards, "whatever")
	if out[0].Name != "b" {
		t.Errorf("unknown token should return input unchanged, got %v", names(out))
	}
}

func TestSortRelevance(t *testing.T) {
	cards := []Card{
		{Name: "low", Relevance: 1},
		{Name: "high", Relevance: 50},
		{Name: "mid", Relevance: 10},
	}

	out := Sort(cards, SortRelevance)
	if out[0].Name != "high" || out[1].Name != "mid" || out[2].Name != "low" {
		t.Errorf("wrong relevance order: %v", names(out))
	}
}

func TestIsLocalSort(t *testing.T) {
	for _, token := range []string{SortNameAsc, SortNameDesc, SortCreatorAsc, SortCreatorDesc, SortRelevance} {
		if !IsLocalSort(token) {
			t.Errorf("%q should be local", token)
		}
	}
	for _, token := range APISortTokens {
		if IsLocalSort(token) {
			t.Errorf("%q should not be local", token)
		}
	}
}

func names(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}
