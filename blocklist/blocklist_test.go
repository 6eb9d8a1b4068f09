package blocklist

import (
	"path/filepath"
	"testing"

	"botbrowser/card"
)

func TestAddRemove(t *testing.T) {
	s := &Store{}

	if !s.Add("Villain") {
		t.Error("first add should succeed")
	}
	if s.Add("villain") {
		t.Error("duplicate add should fail (case-insensitive)")
	}
	if s.Add("   ") {
		t.Error("blank term should be rejected")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 term, got %d", s.Len())
	}
	if s.Terms[0] != "villain" {
		t.Errorf("term should be stored lowercased: %q", s.Terms[0])
	}

	if !s.Remove("VILLAIN") {
		t.Error("remove should succeed")
	}
	if s.Remove("villain") {
		t.Error("second remove should fail")
	}
	if s.Len() != 0 {
		t.Errorf("expected 0 terms, got %d", s.Len())
	}
}

func TestMatches(t *testing.T) {
	s := &Store{}
	s.Add("villain")

	c := card.Card{Name: "Dark Lord", Tags: []string{"fantasy", "Villain"}}
	if !s.Matches(c) {
		t.Error("tag hit should match")
	}

	c = card.Card{Name: "Gentle Healer", Description: "definitely not a villain"}
	if !s.Matches(c) {
		t.Error("description hit should match")
	}

	c = card.Card{Name: "Space Cat", Description: "a cat in space"}
	if s.Matches(c) {
		t.Error("unrelated card should not match")
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocklist.json")

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	s.Add("villain")
	s.Add("gore")
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s2, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if s2.Len() != 2 {
		t.Errorf("expected 2 terms after reload, got %d", s2.Len())
	}
}
