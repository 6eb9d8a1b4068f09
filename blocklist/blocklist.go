// Package blocklist provides the persistent store of user-configured
// terms that suppress matching cards.
package blocklist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"botbrowser/card"
)

// Store manages the blocklist terms.
type Store struct {
	path  string
	Terms []string `json:"terms"`
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "botbrowser"), nil
}

// Load reads the blocklist from disk, returning an empty store if the
// file doesn't exist yet.
func Load() (*Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "blocklist.json"))
}

// LoadFrom loads the blocklist from a specific file path.
func LoadFrom(path string) (*Store, error) {
	store := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, store); err != nil {
		return nil, err
	}
	return store, nil
}

// Save writes the blocklist to disk.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Add appends a term, avoiding duplicates. Terms are stored lowercased.
func (s *Store) Add(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for _, t := range s.Terms {
		if t == term {
			return false
		}
	}
	s.Terms = append(s.Terms, term)
	return true
}

// Remove deletes a term.
func (s *Store) Remove(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	for i, t := range s.Terms {
		if t == term {
			s.Terms = append(s.Terms[:i], s.Terms[i+1:]...)
			return true
		}
	}
	return false
}

// Matches reports whether any blocklist term hits the card.
func (s *Store) Matches(c card.Card) bool {
	for _, term := range s.Terms {
		if card.Blocked(c, term) {
			return true
		}
	}
	return false
}

// Len returns the number of terms.
func (s *Store) Len() int {
	return len(s.Terms)
}
