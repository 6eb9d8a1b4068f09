package card

import "testing"

func sampleCards() []Card {
	return []Card{
		{Name: "Aqua Knight", Creator: "alice", Tags: []string{"Fantasy", "Adventure"}, Description: "A sea knight"},
		{Name: "Dark Lord", Creator: "bob", Tags: []string{"fantasy", "villain"}, Description: "Evil incarnate", NSFW: true},
		{Name: "Space Cat", Creator: "alice", Tags: []string{"scifi"}, Description: "A cat in space"},
		{Name: "Gentle Healer", Creator: "carol", Tags: []string{"fantasy", "support"}, Description: "Heals the party"},
	}
}

func TestFilterTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want int
	}{
		{"no tags matches all", nil, 4},
		{"single tag", []string{"fantasy"}, 3},
		{"case insensitive", []string{"FANTASY"}, 3},
		{"all tags required", []string{"fantasy", "villain"}, 1},
		{"unknown tag", []string{"western"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleCards(), Criteria{Tags: tt.tags})
			if len(got) != tt.want {
				t.Errorf("expected %d cards, got %d", tt.want, len(got))
			}
		})
	}
}

func TestFilterCreator(t *testing.T) {
	got := Filter(sampleCards(), Criteria{Creator: "Alice"})
	if len(got) != 2 {
		t.Fatalf("expected 2 cards by alice, got %d", len(got))
	}
	for _, c := range got {
		if c.Creator != "alice" {
			t.Errorf("unexpected creator %q", c.Creator)
		}
	}
}

func TestFilterNSFWPolicy(t *testing.T) {
	cards := sampleCards()

	if got := Filter(cards, Criteria{NSFW: NSFWAllow}); len(got) != 4 {
		t.Errorf("allow: expected 4, got %d", len(got))
	}
	if got := Filter(cards, Criteria{NSFW: NSFWExclude}); len(got) != 3 {
		t.Errorf("exclude: expected 3, got %d", len(got))
	}
	got := Filter(cards, Criteria{NSFW: NSFWOnly})
	if len(got) != 1 || got[0].Name != "Dark Lord" {
		t.Errorf("only: expected just Dark Lord, got %v", got)
	}
}

func TestFilterBlocklist(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		want  int
	}{
		{"tag hit", []string{"villain"}, 3},
		{"name hit", []string{"cat"}, 3},
		{"description hit", []string{"heals"}, 3},
		{"multiple terms", []string{"villain", "scifi"}, 2},
		{"empty term ignored", []string{""}, 4},
		{"no hit", []string{"romance"}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleCards(), Criteria{Blocklist: tt.terms})
			if len(got) != tt.want {
				t.Errorf("expected %d cards, got %d", tt.want, len(got))
			}
		})
	}
}

func TestFilterCombined(t *testing.T) {
	got := Filter(sampleCards(), Criteria{
		Tags:      []string{"fantasy"},
		NSFW:      NSFWExclude,
		Blocklist: []string{"sea"},
	})
	if len(got) != 1 || got[0].Name != "Gentle Healer" {
		t.Errorf("expected just Gentle Healer, got %v", got)
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	cards := sampleCards()
	Filter(cards, Criteria{Tags: []string{"scifi"}})
	if len(cards) != 4 {
		t.Errorf("input slice was mutated, len=%d", len(cards))
	}
}

func TestParseNSFWPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    NSFWPolicy
		wantErr bool
	}{
		{"allow", NSFWAllow, false},
		{"", NSFWAllow, false},
		{"Exclude", NSFWExclude, false},
		{"ONLY", NSFWOnly, false},
		{"bogus", NSFWAllow, true},
	}

	for _, tt := range tests {
		got, err := ParseNSFWPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNSFWPolicy(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNSFWPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
