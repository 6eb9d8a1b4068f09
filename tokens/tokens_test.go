package tokens

import (
	"path/filepath"
	"testing"
)

func TestSetGetClear(t *testing.T) {
	s := &Store{Tokens: make(map[string]string)}

	if s.Get(ChubAPIToken) != "" {
		t.Error("expected empty token initially")
	}

	s.Set(ChubAPIToken, "secret")
	if s.Get(ChubAPIToken) != "secret" {
		t.Errorf("Get = %q", s.Get(ChubAPIToken))
	}

	if !s.Clear(ChubAPIToken) {
		t.Error("Clear should succeed")
	}
	if s.Clear(ChubAPIToken) {
		t.Error("second Clear should fail")
	}
	if s.Get(ChubAPIToken) != "" {
		t.Error("token should be gone")
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	s.Set(ChubAPIToken, "secret")
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s2, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if s2.Get(ChubAPIToken) != "secret" {
		t.Errorf("token lost on reload: %q", s2.Get(ChubAPIToken))
	}
}

func TestStorageKey(t *testing.T) {
	if ChubAPIToken != "botBrowser_chubApiToken" {
		t.Errorf("storage key changed: %q", ChubAPIToken)
	}
}
