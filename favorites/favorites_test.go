package favorites

import (
	"path/filepath"
	"testing"

	"botbrowser/card"
)

func TestAddRemove(t *testing.T) {
	s := &Store{}
	c := card.Card{Name: "Aqua Knight", Creator: "alice", Service: "chub"}

	if !s.Add(c) {
		t.Error("first add should succeed")
	}
	if s.Add(card.Card{Name: "aqua knight", Creator: "ALICE"}) {
		t.Error("duplicate add should fail on normalized key")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 favorite, got %d", s.Len())
	}
	if !s.Has(c) {
		t.Error("Has should report the favourited card")
	}

	if !s.Remove(c.Key()) {
		t.Error("remove should succeed")
	}
	if s.Remove(c.Key()) {
		t.Error("second remove should fail")
	}
	if s.Has(c) {
		t.Error("card should be gone")
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	s.Add(card.Card{Name: "Aqua Knight", Creator: "alice"})
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s2, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if s2.Len() != 1 {
		t.Fatalf("expected 1 favorite after reload, got %d", s2.Len())
	}
	if s2.Favorites[0].Key != "aqua knight|alice" {
		t.Errorf("unexpected key %q", s2.Favorites[0].Key)
	}
}
